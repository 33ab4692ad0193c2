package record

import (
	"encoding/json"
	"fmt"
)

// MissingFieldError reports a required field absent from an analyzer result.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// Unmarshal decodes a JSON object into dst after checking that every field
// in required is present. A field explicitly set to null counts as present.
func Unmarshal(raw []byte, dst any, required ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("record: expected JSON object: %w", err)
	}
	for _, f := range required {
		if _, ok := obj[f]; !ok {
			return &MissingFieldError{Field: f}
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("record: decode: %w", err)
	}
	return nil
}
