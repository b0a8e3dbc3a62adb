// internal/handlers/permits.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-portal/internal/forms"
	"github.com/javajoker/permit-portal/internal/i18n"
	"github.com/javajoker/permit-portal/internal/permits"
	"github.com/javajoker/permit-portal/internal/utils"
)

// PermitHandler serves the declarative form catalog to the client wizard.
type PermitHandler struct{}

func NewPermitHandler() *PermitHandler {
	return &PermitHandler{}
}

type permitSummary struct {
	Type  string `json:"type"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Steps int    `json:"steps"`
}

// GET /permits
func (h *PermitHandler) ListPermits(c *gin.Context) {
	schemas := permits.All()
	list := make([]permitSummary, 0, len(schemas))
	for _, s := range schemas {
		list = append(list, permitSummary{Type: s.Type, Slug: s.Slug, Title: s.Title, Steps: s.StepCount()})
	}
	utils.SuccessResponse(c, gin.H{"permits": list})
}

// GET /permits/:slug/schema
func (h *PermitHandler) GetSchema(c *gin.Context) {
	schema, ok := permits.Lookup(c.Param("slug"))
	if !ok {
		utils.NotFoundResponse(c, "permit")
		return
	}
	utils.SuccessResponse(c, gin.H{"schema": schema})
}

type stepValidationRequest struct {
	Values map[string]any `json:"values"`
}

// POST /permits/:slug/steps/:step/validate
func (h *PermitHandler) ValidateStep(c *gin.Context) {
	schema, ok := permits.Lookup(c.Param("slug"))
	if !ok {
		utils.NotFoundResponse(c, "permit")
		return
	}

	step, ok := schema.StepIndex(c.Param("step"))
	if !ok {
		utils.NotFoundResponse(c, "permit")
		return
	}

	var req stepValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	result := forms.ValidateStep(schema, step, req.Values)
	if !result.Valid() {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "STEP_INVALID",
			translate(c, i18n.KeyPermitStepInvalid, "Please correct the highlighted fields"), result.Violations)
		return
	}

	next := step + 1
	if next > schema.StepCount() {
		next = 0
	}
	utils.SuccessResponse(c, gin.H{
		"step":    step,
		"next":    next,
		"ready":   next == 0,
		"message": translate(c, i18n.KeyPermitStepPassed, "Step complete"),
	})
}
