// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired      = "auth.required"
	KeyAuthInvalidToken  = "auth.invalid_token"
	KeyAuthTokenExpired  = "auth.token_expired"
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// Permits
	KeyPermitNotFound    = "permit.not_found"
	KeyPermitStepInvalid = "permit.step_invalid"
	KeyPermitStepPassed  = "permit.step_passed"

	// Applications
	KeyApplicationSubmitted      = "application.submitted"
	KeyApplicationNotFound       = "application.not_found"
	KeyApplicationForbidden      = "application.forbidden"
	KeyApplicationUnprocessable  = "application.unprocessable"
	KeyApplicationUploadInvalid  = "application.upload_invalid"
	KeyApplicationStatusUpdated  = "application.status_updated"
	KeyApplicationTransitionDeny = "application.transition_denied"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"
)
