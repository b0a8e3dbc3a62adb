package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/services"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"envelope", &services.EnvelopeError{Fields: map[string]string{"status": "bad"}}, http.StatusBadRequest},
		{"not found", fmt.Errorf("lookup: %w", errs.ErrNotFound), http.StatusNotFound},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden},
		{"transition", fmt.Errorf("%w: Approved -> Rejected", errs.ErrInvalidTransition), http.StatusConflict},
		{"opaque", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestWriteSubmitError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &ApplicationHandler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.writeSubmitError(c, fmt.Errorf("%w: unexpected end of JSON input", errs.ErrMalformedPayload))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"could not process submission"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	h.writeSubmitError(c, &services.PersistenceError{Err: errors.New("document store unavailable")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"document store unavailable"}`, w.Body.String())
}
