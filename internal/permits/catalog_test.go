package permits

import (
	"testing"
	"time"

	"github.com/javajoker/permit-portal/internal/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIndividualValues() forms.Values {
	return forms.Values{
		"applicant": map[string]any{
			"fullName":    "Amara Bello",
			"email":       "amara@example.com",
			"phone":       "+234 803 555 0101",
			"address":     "12 Marina Road, Lagos",
			"dateOfBirth": "1988-02-14",
		},
		"identification": map[string]bool{"NationalID": true},
		"land": map[string]any{
			"plotNumber": "LG-114/7",
			"location":   "Ikoyi",
			"area":       450,
			"tenure":     "Private",
		},
		"project": map[string]any{
			"description": "Two storey family residence",
			"floors":      2,
		},
		"documents": map[string]any{
			"ownershipProof":     &forms.File{Name: "deed.pdf", Type: "application/pdf", Content: []byte("%PDF-1.7")},
			"sitePlan":           &forms.File{Name: "site.png", Type: "image/png", Content: []byte("png")},
			"architecturalPlans": &forms.File{Name: "plans.pdf", Type: "application/pdf", Content: []byte("%PDF-1.7")},
		},
		"declaration": map[string]any{
			"accepted": true,
			"date":     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestCatalog_AllSchemasAreWellFormed(t *testing.T) {
	require.Len(t, All(), 4)
	for _, s := range All() {
		assert.NoError(t, s.Check(), s.Type)
		assert.NotEmpty(t, s.Slug)
		assert.Empty(t, s.Steps[len(s.Steps)-1].Fields, "last step of %s is the review step", s.Type)
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup(BuildingPermitIndividual)
	require.True(t, ok)
	assert.Equal(t, "building-permit-individual", s.Slug)

	s, ok = Lookup("MAST-INSTALLATION-PERMIT")
	require.True(t, ok)
	assert.Equal(t, MastInstallationPermit, s.Type)

	_, ok = Lookup("Fishing Licence")
	assert.False(t, ok)
}

func TestTypesSorted(t *testing.T) {
	assert.Equal(t, []string{
		BuildingPermitCompany,
		BuildingPermitIndividual,
		DINApplication,
		MastInstallationPermit,
	}, Types())
}

func TestSimplifyType(t *testing.T) {
	assert.Equal(t, "Building Permit", SimplifyType("Building Permit (Individual)"))
	assert.Equal(t, "Building Permit", SimplifyType("Building Permit (Company)"))
	assert.Equal(t, "DIN Application", SimplifyType("DIN Application"))
}

func TestBuildingPermitIndividual_Validation(t *testing.T) {
	schema, _ := Lookup(BuildingPermitIndividual)

	values := validIndividualValues()
	result := forms.Validate(schema, values)
	assert.True(t, result.Valid(), result.Violations)

	// serialized form validates the same way
	assert.True(t, forms.Validate(schema, forms.Serialize(values)).Valid())

	docs := values["documents"].(map[string]any)
	delete(docs, "ownershipProof")
	result = forms.Validate(schema, values)
	assert.Equal(t, []string{"documents.ownershipProof"}, result.Paths())

	values["land"].(map[string]any)["tenure"] = "Public"
	assert.True(t, forms.Validate(schema, values).Valid())

	values["land"].(map[string]any)["tenure"] = "Leasehold"
	result = forms.Validate(schema, values)
	assert.Equal(t, []string{"documents.leaseAgreement"}, result.Paths())
}

func TestBuildingPermitIndividual_WizardWalkthrough(t *testing.T) {
	schema, _ := Lookup(BuildingPermitIndividual)
	values := validIndividualValues()
	w := forms.NewWizard(schema)

	for !w.Ready() {
		result, ok := w.Advance(values)
		require.True(t, ok, "step %d: %v", w.Position(), result.Violations)
	}
	assert.Equal(t, schema.StepCount(), w.Position())
}

func TestMastPermit_OtherTechnologyInline(t *testing.T) {
	schema, _ := Lookup(MastInstallationPermit)
	site, ok := schema.StepIndex("site")
	require.True(t, ok)

	values := map[string]any{
		"mast": map[string]any{
			"technologies": map[string]bool{"Other": true},
		},
	}
	result := forms.ValidateStep(schema, site, values)
	assert.True(t, result.Has("mast.technologiesOther"))
	assert.False(t, result.Has("mast.technologies"))
}
