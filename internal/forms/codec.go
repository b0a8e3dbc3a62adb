package forms

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/javajoker/permit-portal/internal/errs"
)

// Encode renders a transport tree as the string carried in the submission envelope.
func Encode(values TransportValues) (string, error) {
	if values == nil {
		values = TransportValues{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode form data: %w", err)
	}
	return string(raw), nil
}

// Decode parses an encoded transport tree. Anything other than a JSON object is malformed.
func Decode(encoded string) (map[string]any, error) {
	trimmed := bytes.TrimSpace([]byte(encoded))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", errs.ErrMalformedPayload)
	}
	var tree map[string]any
	if err := json.Unmarshal(trimmed, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedPayload, err)
	}
	return tree, nil
}
