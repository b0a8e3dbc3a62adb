// Package errs contains sentinel errors shared by the repository, service and handler layers.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist (or is not visible to the actor).
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the actor may not act on behalf of another identity.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition indicates a status change the lifecycle does not define.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMalformedPayload indicates the encoded submission data could not be decoded.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnknownPermitType indicates a permit type missing from the catalog.
	ErrUnknownPermitType = errors.New("unknown permit type")
)
