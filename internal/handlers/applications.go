// internal/handlers/applications.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/forms"
	"github.com/javajoker/permit-portal/internal/i18n"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/permits"
	"github.com/javajoker/permit-portal/internal/services"
	"github.com/javajoker/permit-portal/internal/utils"
)

const unprocessableSubmission = "could not process submission"

// Envelope fields of the multipart upload that are not part of the form tree.
var uploadEnvelopeFields = []string{"type", "applicantName", "userId"}

type ApplicationHandler struct {
	submissionService *services.SubmissionService
	applicantService  *services.ApplicantService
	maxUploadBytes    int64
}

func NewApplicationHandler(submissionService *services.SubmissionService, applicantService *services.ApplicantService, maxUploadMB int) *ApplicationHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 32
	}
	return &ApplicationHandler{
		submissionService: submissionService,
		applicantService:  applicantService,
		maxUploadBytes:    int64(maxUploadMB) << 20,
	}
}

// SubmitResponse is the discriminated result of the submission endpoint.
type SubmitResponse struct {
	Success       bool              `json:"success"`
	ApplicationID string            `json:"applicationId,omitempty"`
	Error         string            `json:"error,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// POST /applications
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, SubmitResponse{
			Error: translate(c, i18n.KeyValidationInvalid, "Invalid request body", "request body"),
		})
		return
	}
	h.submit(c, &req)
}

// POST /applications/upload
func (h *ApplicationHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, SubmitResponse{
			Error: translate(c, i18n.KeyApplicationUploadInvalid, "The uploaded form could not be read"),
		})
		return
	}

	req := services.SubmitRequest{
		Type:          c.PostForm("type"),
		ApplicantName: c.PostForm("applicantName"),
		UserID:        c.PostForm("userId"),
	}

	schema, ok := permits.Lookup(req.Type)
	if !ok {
		h.writeSubmitError(c, &services.EnvelopeError{
			Fields: map[string]string{"type": fmt.Sprintf("%q is not a known permit type", req.Type)},
			Err:    errs.ErrUnknownPermitType,
		})
		return
	}

	values := forms.ValuesFromMultipart(schema, c.Request.MultipartForm, uploadEnvelopeFields...)
	if result := forms.Validate(schema, values); !result.Valid() {
		c.JSON(http.StatusUnprocessableEntity, SubmitResponse{
			Error:  translate(c, i18n.KeyPermitStepInvalid, "Please correct the highlighted fields"),
			Fields: result.Violations,
		})
		return
	}

	payload, err := forms.Encode(forms.Serialize(values))
	if err != nil {
		c.JSON(http.StatusBadRequest, SubmitResponse{Error: unprocessableSubmission})
		return
	}
	req.Data = payload

	h.submit(c, &req)
}

func (h *ApplicationHandler) submit(c *gin.Context, req *services.SubmitRequest) {
	var actor *models.Actor
	if a, ok := utils.GetActorFromContext(c); ok {
		actor = &a
	}

	id, err := h.submissionService.Submit(c.Request.Context(), req, actor)
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{Success: true, ApplicationID: id})
}

func (h *ApplicationHandler) writeSubmitError(c *gin.Context, err error) {
	var envelopeErr *services.EnvelopeError
	var persistenceErr *services.PersistenceError

	switch {
	case errors.As(err, &envelopeErr):
		c.JSON(http.StatusBadRequest, SubmitResponse{
			Error:  translate(c, i18n.KeyValidationInvalid, "Invalid submission", "submission"),
			Fields: envelopeErr.Fields,
		})
	case services.IsMalformedPayload(err):
		c.JSON(http.StatusBadRequest, SubmitResponse{
			Error: translate(c, i18n.KeyApplicationUnprocessable, unprocessableSubmission),
		})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, SubmitResponse{
			Error: translate(c, i18n.KeyApplicationForbidden, "You may only submit applications for yourself"),
		})
	case errors.As(err, &persistenceErr):
		c.JSON(http.StatusInternalServerError, SubmitResponse{Error: persistenceErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, SubmitResponse{Error: err.Error()})
	}
}

// GET /applications/mine
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	var filter services.ApplicantFilter
	if status := c.Query("status"); status != "" {
		parsed, ok := models.ParseApplicationStatus(status)
		if !ok {
			utils.BadRequestResponse(c, translate(c, i18n.KeyValidationInvalid, "Invalid status", "status"), nil)
			return
		}
		filter.Status = &parsed
	}

	apps, err := h.applicantService.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.Paginate(apps, params))
}

// GET /applications/mine/summary
func (h *ApplicationHandler) Summary(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	summary, err := h.applicantService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"summary": summary})
}

// GET /applications/mine/:id
func (h *ApplicationHandler) GetMine(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	app, err := h.applicantService.GetMine(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"application": app})
}
