package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func landSchema() *Schema {
	return &Schema{
		Type: "Test Permit",
		Slug: "test-permit",
		Fields: []Field{
			{Path: "name", Label: "Name", Kind: KindText, Required: true, MinLength: 2},
			{Path: "email", Label: "Email", Kind: KindText, Format: FormatEmail},
			{Path: "identification", Label: "Identification", Kind: KindBooleanSet, MinSelected: 1, Options: []string{"NationalID", "Passport", "Other"}},
			{Path: "identificationOther", Label: "Other identification", Kind: KindText},
			{Path: "tenure", Label: "Land tenure", Kind: KindChoice, Required: true, Options: []string{"Private", "Public"}},
			{Path: "documents.ownershipProof", Label: "Proof of ownership", Kind: KindAttachment, AllowedTypes: []string{".pdf"}, MaxSize: 1024},
			{Path: "accepted", Label: "Declaration", Kind: KindBoolean, Required: true},
			{Path: "date", Label: "Date", Kind: KindDate},
		},
		Rules: []Rule{
			{
				When:       Condition{Path: "tenure", Equals: "Private"},
				Target:     "documents.ownershipProof",
				Constraint: ConstraintRequired,
			},
			{
				When:       Condition{Path: "identification.Other", Equals: true},
				Target:     "identificationOther",
				Constraint: ConstraintRequired,
				Message:    "Please specify",
				Inline:     true,
			},
		},
		Steps: []Step{
			{Name: "who", Fields: []string{"name", "email", "identification"}},
			{Name: "land", Fields: []string{"tenure", "documents.ownershipProof", "identificationOther"}},
			{Name: "sign", Fields: []string{"accepted", "date"}},
			{Name: "review"},
		},
	}
}

func validLandValues() map[string]any {
	return map[string]any{
		"name":           "Ada Obi",
		"email":          "ada@example.com",
		"identification": map[string]bool{"Passport": true},
		"tenure":         "Private",
		"documents": map[string]any{
			"ownershipProof": &File{Name: "deed.pdf", Type: "application/pdf", Content: []byte("%PDF")},
		},
		"accepted": true,
		"date":     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSchemaCheck(t *testing.T) {
	require.NoError(t, landSchema().Check())

	s := landSchema()
	s.Steps[2].Fields = append(s.Steps[2].Fields, "name")
	assert.Error(t, s.Check())

	s = landSchema()
	s.Rules[0].Target = "missing"
	assert.Error(t, s.Check())

	s = &Schema{Type: "Empty Permit"}
	assert.EqualError(t, s.Check(), "Empty Permit: schema has no steps")
}

func TestValidate_Success(t *testing.T) {
	result := Validate(landSchema(), validLandValues())
	assert.True(t, result.Valid(), result.Violations)
}

func TestValidate_ConditionalRule(t *testing.T) {
	values := validLandValues()
	values["documents"] = map[string]any{}

	result := Validate(landSchema(), values)
	assert.False(t, result.Valid())
	assert.Equal(t, []string{"documents.ownershipProof"}, result.Paths())
	assert.Equal(t, "Proof of ownership must be attached", result.Violations["documents.ownershipProof"])

	values["tenure"] = "Public"
	assert.True(t, Validate(landSchema(), values).Valid())
}

func TestValidate_RuleSkippedWhenConditionInvalid(t *testing.T) {
	values := validLandValues()
	values["tenure"] = "Swamp"
	delete(values, "documents")

	result := Validate(landSchema(), values)
	assert.True(t, result.Has("tenure"))
	assert.False(t, result.Has("documents.ownershipProof"))
}

func TestValidate_BooleanSetAggregate(t *testing.T) {
	values := validLandValues()
	values["identification"] = map[string]bool{"Passport": false, "NationalID": false}

	result := Validate(landSchema(), values)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "Select at least one option for Identification", result.Violations["identification"])

	values["identification"] = []any{"NationalID"}
	assert.True(t, Validate(landSchema(), values).Valid())
}

func TestValidate_BooleanSetIgnoresUndeclaredKeys(t *testing.T) {
	for _, selected := range []any{
		map[string]bool{"Bogus": true},
		[]any{"Bogus"},
		[]string{"bogus", "passport"},
	} {
		values := validLandValues()
		values["identification"] = selected

		result := Validate(landSchema(), values)
		require.Len(t, result.Violations, 1, "%v", selected)
		assert.Equal(t, "Select at least one option for Identification", result.Violations["identification"])
	}

	values := validLandValues()
	values["identification"] = map[string]bool{"Bogus": true, "Passport": true}
	assert.True(t, Validate(landSchema(), values).Valid())
}

func TestValidate_OtherCheckboxRequiresText(t *testing.T) {
	values := validLandValues()
	values["identification"] = map[string]any{"Other": "on"}

	result := Validate(landSchema(), values)
	assert.Equal(t, "Please specify", result.Violations["identificationOther"])

	values["identificationOther"] = "Voter card"
	assert.True(t, Validate(landSchema(), values).Valid())
}

func TestValidate_IndependentConstraints(t *testing.T) {
	values := validLandValues()
	values["name"] = "A"
	values["email"] = "not-an-email"
	values["accepted"] = false
	values["date"] = "yesterday"
	values["unknown"] = 42

	result := Validate(landSchema(), values)
	assert.Equal(t, []string{"accepted", "date", "email", "name"}, result.Paths())
	assert.Equal(t, "Declaration must be accepted", result.Violations["accepted"])
}

func TestValidate_AttachmentLimits(t *testing.T) {
	values := validLandValues()
	values["documents"] = map[string]any{
		"ownershipProof": map[string]any{"name": "deed.exe", "size": 10},
	}
	result := Validate(landSchema(), values)
	assert.Contains(t, result.Violations["documents.ownershipProof"], "must be one of")

	values["documents"] = map[string]any{
		"ownershipProof": AttachmentMeta{Name: "deed.pdf", Size: 4096},
	}
	result = Validate(landSchema(), values)
	assert.Contains(t, result.Violations["documents.ownershipProof"], "maximum size")

	values["documents"] = map[string]any{
		"ownershipProof": map[string]any{"name": "deed.pdf", "size": float64(512)},
	}
	assert.True(t, Validate(landSchema(), values).Valid())
}

func TestLookup(t *testing.T) {
	tree := map[string]any{
		"a":   map[string]any{"b": "c"},
		"set": []string{"x"},
	}

	v, ok := Lookup(tree, "a.b")
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	v, ok = Lookup(tree, "set.x")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	_, ok = Lookup(tree, "a.missing")
	assert.False(t, ok)
}
