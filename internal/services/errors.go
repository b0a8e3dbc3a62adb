// internal/services/errors.go
package services

import (
	"fmt"
	"sort"
	"strings"
)

// EnvelopeError reports field-level problems with a submission envelope or an
// administrative request. Callers can fix and resubmit.
type EnvelopeError struct {
	Fields map[string]string
	Err    error
}

func (e *EnvelopeError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid envelope: " + strings.Join(parts, "; ")
}

func (e *EnvelopeError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps an opaque store failure. Its message is the store's message.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
