// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/i18n"
	"github.com/javajoker/permit-portal/internal/services"
	"github.com/javajoker/permit-portal/internal/utils"
)

// translate falls back to a fixed message when no locale carries the key.
func translate(c *gin.Context, key, fallback string, args ...interface{}) string {
	if msg := i18n.T(utils.GetLangFromContext(c), key, args...); msg != key {
		return msg
	}
	return fallback
}

// respondError maps service errors onto the shared response envelope.
func respondError(c *gin.Context, err error) {
	var envelopeErr *services.EnvelopeError

	switch {
	case errors.As(err, &envelopeErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR",
			translate(c, i18n.KeyValidationInvalid, "Invalid request", "request"), envelopeErr.Fields)
	case errors.Is(err, errs.ErrNotFound):
		utils.NotFoundResponse(c, "application")
	case errors.Is(err, errs.ErrForbidden):
		utils.ForbiddenResponse(c, translate(c, i18n.KeyApplicationForbidden, "Forbidden"))
	case errors.Is(err, errs.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
