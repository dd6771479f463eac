package record

import (
	"errors"
	"fmt"
)

// ErrMalformedJSON indicates a line that does not decode to a JSON object.
var ErrMalformedJSON = errors.New("malformed JSON record")

// ErrMissingField indicates a required field that is absent or has the wrong type.
var ErrMissingField = errors.New("required field missing")

// ErrMalformedDate indicates a review timestamp that is present but cannot be parsed.
var ErrMalformedDate = errors.New("malformed review date")

// FieldError names the required field that could not be extracted.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("required field %q is missing or malformed", e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
