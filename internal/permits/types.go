package permits

import "github.com/javajoker/permit-portal/internal/forms"

func buildingPermitIndividual() *forms.Schema {
	applicant := applicantSection("applicant")
	applicant = append(applicant, forms.Field{
		Path: "applicant.dateOfBirth", Label: "Date of birth", Kind: forms.KindDate, Required: true,
	})
	ident, identRules := identificationSection()
	land, landRules := landSection()
	project := []forms.Field{
		{Path: "project.description", Label: "Project description", Kind: forms.KindText, Required: true, MinLength: 10, MaxLength: 2000},
		{Path: "project.floors", Label: "Number of floors", Kind: forms.KindNumber, Required: true, Min: float(1), Max: float(60)},
		{Path: "project.estimatedCost", Label: "Estimated cost", Kind: forms.KindNumber, Min: float(0)},
	}
	docs, docRules := documentsSection(attachment("documents.architecturalPlans", "Architectural plans", true))
	decl := declarationSection()

	return &forms.Schema{
		Type:   BuildingPermitIndividual,
		Slug:   "building-permit-individual",
		Title:  "Building permit for individuals",
		Fields: concat(applicant, ident, land, project, docs, decl),
		Rules:  concatRules(identRules, landRules, docRules),
		Steps: []forms.Step{
			{Name: "applicant", Title: "Applicant details", Fields: paths(applicant, ident)},
			{Name: "land", Title: "Land & project", Fields: paths(land, project)},
			{Name: "documents", Title: "Supporting documents", Fields: paths(docs)},
			{Name: "declaration", Title: "Declaration", Fields: paths(decl)},
			reviewStep,
		},
	}
}

func buildingPermitCompany() *forms.Schema {
	company := []forms.Field{
		{Path: "company.name", Label: "Company name", Kind: forms.KindText, Required: true, MaxLength: 200},
		{Path: "company.registrationNumber", Label: "Registration number", Kind: forms.KindText, Required: true, Pattern: `^[A-Z0-9\-]{4,20}$`},
		{Path: "company.taxId", Label: "Tax identification number", Kind: forms.KindText, Required: true},
	}
	rep := applicantSection("representative")
	rep = append(rep, forms.Field{
		Path: "representative.position", Label: "Position in company", Kind: forms.KindText, Required: true,
	})
	land, landRules := landSection()
	project := []forms.Field{
		{Path: "project.description", Label: "Project description", Kind: forms.KindText, Required: true, MinLength: 10, MaxLength: 2000},
		{
			Path:     "project.use",
			Label:    "Intended use",
			Kind:     forms.KindChoice,
			Required: true,
			Options:  []string{"Commercial", "Industrial", "Residential", "Mixed", "Other"},
		},
		{Path: "project.useOther", Label: "Other intended use", Kind: forms.KindText, MaxLength: 120},
		{Path: "project.floors", Label: "Number of floors", Kind: forms.KindNumber, Required: true, Min: float(1), Max: float(120)},
	}
	useRule := forms.Rule{
		When:       forms.Condition{Path: "project.use", Equals: "Other"},
		Target:     "project.useOther",
		Constraint: forms.ConstraintRequired,
		Message:    "Please specify the intended use",
		Inline:     true,
	}
	docs, docRules := documentsSection(
		attachment("documents.incorporationCertificate", "Certificate of incorporation", true),
		attachment("documents.architecturalPlans", "Architectural plans", true),
	)
	decl := declarationSection()

	return &forms.Schema{
		Type:   BuildingPermitCompany,
		Slug:   "building-permit-company",
		Title:  "Building permit for companies",
		Fields: concat(company, rep, land, project, docs, decl),
		Rules:  concatRules(landRules, []forms.Rule{useRule}, docRules),
		Steps: []forms.Step{
			{Name: "company", Title: "Company details", Fields: paths(company, rep)},
			{Name: "land", Title: "Land & project", Fields: paths(land, project)},
			{Name: "documents", Title: "Supporting documents", Fields: paths(docs)},
			{Name: "declaration", Title: "Declaration", Fields: paths(decl)},
			reviewStep,
		},
	}
}

func mastInstallationPermit() *forms.Schema {
	operator := applicantSection("operator")
	operator = append(operator, forms.Field{
		Path: "operator.licenseNumber", Label: "Operator licence number", Kind: forms.KindText, Required: true,
	})
	land, landRules := landSection()
	mast := []forms.Field{
		{Path: "mast.height", Label: "Mast height (m)", Kind: forms.KindNumber, Required: true, Min: float(1), Max: float(150)},
		{
			Path:     "mast.structure",
			Label:    "Structure type",
			Kind:     forms.KindChoice,
			Required: true,
			Options:  []string{"Monopole", "Lattice", "Guyed", "Rooftop"},
		},
		{
			Path:        "mast.technologies",
			Label:       "Technologies",
			Kind:        forms.KindBooleanSet,
			Options:     []string{"2G", "3G", "4G", "5G", "Microwave", "Other"},
			MinSelected: 1,
		},
		{Path: "mast.technologiesOther", Label: "Other technology", Kind: forms.KindText, MaxLength: 120},
		{Path: "mast.sharedInfrastructure", Label: "Shared infrastructure", Kind: forms.KindBoolean},
	}
	techRule := forms.Rule{
		When:       forms.Condition{Path: "mast.technologies.Other", Equals: true},
		Target:     "mast.technologiesOther",
		Constraint: forms.ConstraintRequired,
		Message:    "Please specify the other technology",
		Inline:     true,
	}
	docs, docRules := documentsSection(
		attachment("documents.environmentalAssessment", "Environmental impact assessment", true),
		attachment("documents.aviationClearance", "Aviation clearance", false),
	)
	aviationRule := forms.Rule{
		When:       forms.Condition{Path: "mast.structure", Equals: "Guyed"},
		Target:     "documents.aviationClearance",
		Constraint: forms.ConstraintRequired,
		Message:    "Aviation clearance is required for guyed masts",
	}
	decl := declarationSection()

	return &forms.Schema{
		Type:   MastInstallationPermit,
		Slug:   "mast-installation-permit",
		Title:  "Telecommunication mast installation permit",
		Fields: concat(operator, land, mast, docs, decl),
		Rules:  concatRules(landRules, []forms.Rule{techRule}, docRules, []forms.Rule{aviationRule}),
		Steps: []forms.Step{
			{Name: "operator", Title: "Operator details", Fields: paths(operator)},
			{Name: "site", Title: "Site & mast", Fields: paths(land, mast)},
			{Name: "documents", Title: "Supporting documents", Fields: paths(docs)},
			{Name: "declaration", Title: "Declaration", Fields: paths(decl)},
			reviewStep,
		},
	}
}

func dinApplication() *forms.Schema {
	applicant := applicantSection("applicant")
	ident, identRules := identificationSection()
	property := []forms.Field{
		{Path: "property.plotNumber", Label: "Plot number", Kind: forms.KindText, Required: true, Pattern: `^[A-Za-z0-9/\-]{2,30}$`},
		{Path: "property.street", Label: "Street", Kind: forms.KindText, Required: true},
		{Path: "property.district", Label: "District", Kind: forms.KindText, Required: true},
		{
			Path:     "property.use",
			Label:    "Property use",
			Kind:     forms.KindChoice,
			Required: true,
			Options:  []string{"Residential", "Commercial", "Institutional"},
		},
	}
	docs := []forms.Field{
		attachment("documents.sitePlan", "Site plan", true),
		attachment("documents.locationSketch", "Location sketch", false),
	}
	decl := declarationSection()

	return &forms.Schema{
		Type:   DINApplication,
		Slug:   "din-application",
		Title:  "Digital identification number (DIN) application",
		Fields: concat(applicant, ident, property, docs, decl),
		Rules:  identRules,
		Steps: []forms.Step{
			{Name: "applicant", Title: "Applicant details", Fields: paths(applicant, ident)},
			{Name: "property", Title: "Property", Fields: paths(property)},
			{Name: "documents", Title: "Documents", Fields: paths(docs)},
			{Name: "declaration", Title: "Declaration", Fields: paths(decl)},
			reviewStep,
		},
	}
}

func concat(groups ...[]forms.Field) []forms.Field {
	var out []forms.Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func concatRules(groups ...[]forms.Rule) []forms.Rule {
	var out []forms.Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
