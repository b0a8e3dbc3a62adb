// Package permits holds the declarative schema of every permit type the portal accepts.
package permits

import (
	"fmt"
	"sort"
	"strings"

	"github.com/javajoker/permit-portal/internal/forms"
)

const (
	BuildingPermitIndividual = "Building Permit (Individual)"
	BuildingPermitCompany    = "Building Permit (Company)"
	MastInstallationPermit   = "Mast Installation Permit"
	DINApplication           = "DIN Application"
)

const maxDocumentSize = 10 * 1024 * 1024

var documentTypes = []string{".pdf", ".jpg", ".jpeg", ".png"}

type catalog struct {
	byType map[string]*forms.Schema
	bySlug map[string]*forms.Schema
	order  []string
}

var registry = mustBuild(
	buildingPermitIndividual(),
	buildingPermitCompany(),
	mastInstallationPermit(),
	dinApplication(),
)

func mustBuild(schemas ...*forms.Schema) *catalog {
	c := &catalog{
		byType: make(map[string]*forms.Schema, len(schemas)),
		bySlug: make(map[string]*forms.Schema, len(schemas)),
	}
	for _, s := range schemas {
		if err := s.Check(); err != nil {
			panic(fmt.Sprintf("permits: invalid schema: %v", err))
		}
		c.byType[s.Type] = s
		c.bySlug[s.Slug] = s
		c.order = append(c.order, s.Type)
	}
	return c
}

// Lookup finds a schema by its type name or URL slug.
func Lookup(typeOrSlug string) (*forms.Schema, bool) {
	key := strings.TrimSpace(typeOrSlug)
	if s, ok := registry.byType[key]; ok {
		return s, true
	}
	s, ok := registry.bySlug[strings.ToLower(key)]
	return s, ok
}

// All returns every schema in catalog order.
func All() []*forms.Schema {
	out := make([]*forms.Schema, 0, len(registry.order))
	for _, t := range registry.order {
		out = append(out, registry.byType[t])
	}
	return out
}

// Types returns the permit type names, sorted.
func Types() []string {
	types := append([]string(nil), registry.order...)
	sort.Strings(types)
	return types
}

// SimplifyType drops any parenthetical qualifier: "Building Permit (Individual)" -> "Building Permit".
func SimplifyType(permitType string) string {
	if i := strings.Index(permitType, "("); i >= 0 {
		permitType = permitType[:i]
	}
	return strings.TrimSpace(permitType)
}
