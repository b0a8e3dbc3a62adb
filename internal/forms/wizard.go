package forms

// Wizard tracks a single applicant's position in a schema's steps. It is not
// safe for concurrent use; each form session owns its own wizard.
type Wizard struct {
	schema   *Schema
	position int
	ready    bool
}

func NewWizard(schema *Schema) *Wizard {
	return &Wizard{schema: schema, position: 1}
}

// Position is the 1-based current step.
func (w *Wizard) Position() int {
	return w.position
}

// Current returns the step at Position, or a zero Step when the schema has none.
func (w *Wizard) Current() Step {
	if w.position < 1 || w.position > len(w.schema.Steps) {
		return Step{}
	}
	return w.schema.Steps[w.position-1]
}

// Ready reports that Advance succeeded from the final step.
func (w *Wizard) Ready() bool {
	return w.ready
}

// Advance validates the current step and moves forward when it is clean. Leaving
// the final step marks the wizard ready to submit instead of moving.
func (w *Wizard) Advance(values map[string]any) (Result, bool) {
	result := ValidateStep(w.schema, w.position, values)
	if !result.Valid() {
		return result, false
	}
	if w.position >= w.schema.StepCount() {
		w.ready = true
		return result, true
	}
	w.position++
	return result, true
}

// Retreat moves one step back without validating. It is a no-op on the first step.
func (w *Wizard) Retreat() bool {
	if w.position <= 1 {
		return false
	}
	w.position--
	w.ready = false
	return true
}

// Reset discards progress.
func (w *Wizard) Reset() {
	w.position = 1
	w.ready = false
}

// ValidateStep runs the full validation and keeps only violations for step k's
// paths, inline rule targets included. Out of range steps and steps without
// fields always pass.
func ValidateStep(schema *Schema, step int, values map[string]any) Result {
	paths, err := schema.StepPaths(step)
	if err != nil || len(paths) == 0 {
		return Result{Violations: map[string]string{}}
	}
	return Validate(schema, values).Restrict(paths)
}
