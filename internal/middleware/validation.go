package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// DecodeBody decodes a JSON request body into v. An empty body is
// accepted as the zero value so that field validation can produce the
// per-field messages instead of a generic decode error.
func DecodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ValidateRequest validates a request struct against its validate tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// FirstValidationMessage resolves the first failing field to its
// localized message. Fields validate in declaration order, which
// mirrors the sequential checks the API contract promises. Lookup is
// by "Field.tag" first, then by bare field name.
func FirstValidationMessage(err error, messages map[string]string) (string, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "", false
	}

	first := validationErrors[0]
	if msg, ok := messages[first.StructField()+"."+first.Tag()]; ok {
		return msg, true
	}
	if msg, ok := messages[first.StructField()]; ok {
		return msg, true
	}
	return "", false
}
