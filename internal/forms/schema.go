// Package forms implements the declarative permit form model: field schemas with
// conditional rules, step-gated validation, and the attachment serializer that turns
// a client value tree into a transport-safe payload.
package forms

import (
	"fmt"
	"strings"
)

// FieldKind is the primitive type of a form field.
type FieldKind string

const (
	KindText       FieldKind = "text"
	KindChoice     FieldKind = "choice"
	KindDate       FieldKind = "date"
	KindBoolean    FieldKind = "boolean"
	KindBooleanSet FieldKind = "boolean_set"
	KindNumber     FieldKind = "number"
	KindAttachment FieldKind = "attachment"
)

// Format names a validator tag applied to text fields.
type Format string

const (
	FormatEmail Format = "email"
	FormatPhone Format = "phone"
)

// Field declares one value in the form tree. Path is dot separated and may point
// into a nested group ("documents.ownershipProof").
type Field struct {
	Path         string    `json:"path"`
	Label        string    `json:"label"`
	Kind         FieldKind `json:"kind"`
	Required     bool      `json:"required,omitempty"`
	Options      []string  `json:"options,omitempty"`
	MinSelected  int       `json:"minSelected,omitempty"`
	MinLength    int       `json:"minLength,omitempty"`
	MaxLength    int       `json:"maxLength,omitempty"`
	Pattern      string    `json:"pattern,omitempty"`
	Format       Format    `json:"format,omitempty"`
	Min          *float64  `json:"min,omitempty"`
	Max          *float64  `json:"max,omitempty"`
	MaxSize      int64     `json:"maxSize,omitempty"`
	AllowedTypes []string  `json:"allowedTypes,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// Constraint is what a rule imposes on its target once the condition holds.
type Constraint string

const (
	ConstraintRequired Constraint = "required"
)

// Condition matches when the value at Path equals Equals.
type Condition struct {
	Path   string `json:"path"`
	Equals any    `json:"equals"`
}

// Rule is a (conditionPath, conditionValue, targetPath, constraint) tuple.
// Inline rules are enforced when leaving the step that holds the condition field
// rather than the step that holds the target.
type Rule struct {
	When       Condition  `json:"when"`
	Target     string     `json:"target"`
	Constraint Constraint `json:"constraint"`
	Message    string     `json:"message,omitempty"`
	Inline     bool       `json:"inline,omitempty"`
}

// Step is a named, ordered subset of the schema's field paths.
type Step struct {
	Name   string   `json:"name"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// Schema is the full declarative definition of one permit type's form.
type Schema struct {
	Type   string  `json:"type"`
	Slug   string  `json:"slug"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
	Rules  []Rule  `json:"rules,omitempty"`
	Steps  []Step  `json:"steps"`
}

// Field returns the declaration for path, or nil.
func (s *Schema) Field(path string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Path == path {
			return &s.Fields[i]
		}
	}
	return nil
}

func (s *Schema) StepCount() int {
	return len(s.Steps)
}

// StepPaths returns the paths validated when leaving step (1-based): the step's own
// fields plus the targets of inline rules triggered from inside the step.
func (s *Schema) StepPaths(step int) ([]string, error) {
	if step < 1 || step > len(s.Steps) {
		return nil, fmt.Errorf("step %d out of range 1..%d", step, len(s.Steps))
	}
	own := s.Steps[step-1].Fields
	paths := append([]string(nil), own...)
	for _, rule := range s.Rules {
		if !rule.Inline || !coveredBy(rule.When.Path, own) || coveredBy(rule.Target, paths) {
			continue
		}
		paths = append(paths, rule.Target)
	}
	return paths, nil
}

// StepIndex resolves a step by 1-based number or by name.
func (s *Schema) StepIndex(ref string) (int, bool) {
	for i, step := range s.Steps {
		if strings.EqualFold(step.Name, ref) || fmt.Sprint(i+1) == ref {
			return i + 1, true
		}
	}
	return 0, false
}

// Check reports declaration mistakes: a schema without steps, duplicate or unknown
// paths, rules pointing nowhere, steps referencing undeclared fields and fields
// owned by no step.
func (s *Schema) Check() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%s: schema has no steps", s.Type)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Path == "" {
			return fmt.Errorf("%s: field with empty path", s.Type)
		}
		if seen[f.Path] {
			return fmt.Errorf("%s: duplicate field %q", s.Type, f.Path)
		}
		seen[f.Path] = true
		if f.Pattern != "" {
			if _, err := compilePattern(f.Pattern); err != nil {
				return fmt.Errorf("%s: field %q: %w", s.Type, f.Path, err)
			}
		}
	}

	owned := make(map[string]bool, len(s.Fields))
	for _, step := range s.Steps {
		for _, path := range step.Fields {
			if !seen[path] {
				return fmt.Errorf("%s: step %q references unknown field %q", s.Type, step.Name, path)
			}
			if owned[path] {
				return fmt.Errorf("%s: field %q belongs to more than one step", s.Type, path)
			}
			owned[path] = true
		}
	}
	for path := range seen {
		if !owned[path] {
			return fmt.Errorf("%s: field %q is not placed in any step", s.Type, path)
		}
	}

	for _, rule := range s.Rules {
		if !seen[rule.Target] {
			return fmt.Errorf("%s: rule targets unknown field %q", s.Type, rule.Target)
		}
		if !seen[rule.When.Path] && !seen[parentPath(rule.When.Path)] {
			return fmt.Errorf("%s: rule condition on unknown field %q", s.Type, rule.When.Path)
		}
		if rule.Constraint != ConstraintRequired {
			return fmt.Errorf("%s: unsupported constraint %q", s.Type, rule.Constraint)
		}
	}
	return nil
}

// coveredBy reports whether path equals one of roots or lies beneath it.
func coveredBy(path string, roots []string) bool {
	for _, root := range roots {
		if path == root || strings.HasPrefix(path, root+".") {
			return true
		}
	}
	return false
}

func parentPath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return ""
}
