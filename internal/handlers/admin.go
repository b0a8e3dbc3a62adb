// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-portal/internal/i18n"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/services"
	"github.com/javajoker/permit-portal/internal/utils"
)

type AdminHandler struct {
	reviewService *services.ReviewService
}

func NewAdminHandler(reviewService *services.ReviewService) *AdminHandler {
	return &AdminHandler{
		reviewService: reviewService,
	}
}

// GET /admin/applications
func (h *AdminHandler) ListApplications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := services.ReviewFilter{
		PaginationParams: params,
		Type:             c.Query("type"),
	}

	if status := c.Query("status"); status != "" {
		parsed, ok := models.ParseApplicationStatus(status)
		if !ok {
			utils.BadRequestResponse(c, translate(c, i18n.KeyValidationInvalid, "Invalid status", "status"), nil)
			return
		}
		filter.Status = &parsed
	}

	apps, err := h.reviewService.ListApplications(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.Paginate(apps, params))
}

// GET /admin/applications/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.reviewService.GetStats(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/applications/:id
func (h *AdminHandler) GetApplication(c *gin.Context) {
	app, err := h.reviewService.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"application": app})
}

// PUT /admin/applications/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	adminID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	change, err := h.reviewService.UpdateStatus(c.Request.Context(), c.Param("id"), models.ApplicationStatus(req.Status), adminID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"application": change.Application,
		"from":        change.From,
		"to":          change.To,
		"message": translate(c, i18n.KeyApplicationStatusUpdated,
			"Application "+change.Application.ID+" has been "+string(change.To),
			change.Application.ID, change.To),
	})
}

// GET /admin/applications/:id/history
func (h *AdminHandler) History(c *gin.Context) {
	logs, err := h.reviewService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"history": logs})
}

// GET /admin/notifications
func (h *AdminHandler) Notifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.reviewService.ListNotifications(c.Request.Context(), unreadOnly, limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"notifications": notifications})
}
