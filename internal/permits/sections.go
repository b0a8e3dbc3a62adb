package permits

import "github.com/javajoker/permit-portal/internal/forms"

func float(v float64) *float64 { return &v }

func applicantSection(prefix string) []forms.Field {
	return []forms.Field{
		{Path: prefix + ".fullName", Label: "Full name", Kind: forms.KindText, Required: true, MinLength: 2, MaxLength: 120},
		{Path: prefix + ".email", Label: "Email", Kind: forms.KindText, Required: true, Format: forms.FormatEmail},
		{Path: prefix + ".phone", Label: "Phone number", Kind: forms.KindText, Required: true, Format: forms.FormatPhone},
		{Path: prefix + ".address", Label: "Postal address", Kind: forms.KindText, Required: true, MaxLength: 250},
	}
}

func identificationSection() ([]forms.Field, []forms.Rule) {
	fields := []forms.Field{
		{
			Path:        "identification",
			Label:       "Identification documents",
			Kind:        forms.KindBooleanSet,
			Options:     []string{"NationalID", "Passport", "DriversLicense", "Other"},
			MinSelected: 1,
		},
		{Path: "identificationOther", Label: "Other identification", Kind: forms.KindText, MaxLength: 120},
	}
	rules := []forms.Rule{{
		When:       forms.Condition{Path: "identification.Other", Equals: true},
		Target:     "identificationOther",
		Constraint: forms.ConstraintRequired,
		Message:    "Please specify the other identification document",
		Inline:     true,
	}}
	return fields, rules
}

func landSection() ([]forms.Field, []forms.Rule) {
	fields := []forms.Field{
		{Path: "land.plotNumber", Label: "Plot number", Kind: forms.KindText, Required: true, Pattern: `^[A-Za-z0-9/\-]{2,30}$`},
		{Path: "land.location", Label: "Plot location", Kind: forms.KindText, Required: true},
		{Path: "land.area", Label: "Plot area (m²)", Kind: forms.KindNumber, Required: true, Min: float(1)},
		{
			Path:     "land.tenure",
			Label:    "Land tenure",
			Kind:     forms.KindChoice,
			Required: true,
			Options:  []string{"Private", "Leasehold", "Customary", "Public"},
		},
	}
	return fields, nil
}

func documentsSection(extra ...forms.Field) ([]forms.Field, []forms.Rule) {
	fields := []forms.Field{
		attachment("documents.ownershipProof", "Proof of ownership", false),
		attachment("documents.leaseAgreement", "Lease agreement", false),
		attachment("documents.sitePlan", "Site plan", true),
	}
	fields = append(fields, extra...)
	rules := []forms.Rule{
		{
			When:       forms.Condition{Path: "land.tenure", Equals: "Private"},
			Target:     "documents.ownershipProof",
			Constraint: forms.ConstraintRequired,
			Message:    "Proof of ownership is required for privately held land",
		},
		{
			When:       forms.Condition{Path: "land.tenure", Equals: "Leasehold"},
			Target:     "documents.leaseAgreement",
			Constraint: forms.ConstraintRequired,
			Message:    "A lease agreement is required for leasehold land",
		},
	}
	return fields, rules
}

func attachment(path, label string, required bool) forms.Field {
	return forms.Field{
		Path:         path,
		Label:        label,
		Kind:         forms.KindAttachment,
		Required:     required,
		MaxSize:      maxDocumentSize,
		AllowedTypes: documentTypes,
	}
}

func declarationSection() []forms.Field {
	return []forms.Field{
		{Path: "declaration.accepted", Label: "Declaration", Kind: forms.KindBoolean, Required: true},
		{Path: "declaration.date", Label: "Declaration date", Kind: forms.KindDate, Required: true},
	}
}

func paths(fields ...[]forms.Field) []string {
	var out []string
	for _, group := range fields {
		for _, f := range group {
			out = append(out, f.Path)
		}
	}
	return out
}

// reviewStep is the informational summary shown before submission.
var reviewStep = forms.Step{Name: "review", Title: "Review & submit"}
