package emissions

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports malformed or missing input, caught before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError reports a missing credential or endpoint.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// TransportError reports a request that never reached, or never returned from, the server.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string { return e.Message }

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports a server that answered with a failure status or an empty body.
type UpstreamError struct {
	Message    string
	StatusCode int
}

func (e *UpstreamError) Error() string { return e.Message }

// ErrorKind names the taxonomy bucket of err, or "internal" for anything else.
func ErrorKind(err error) string {
	var (
		ve *ValidationError
		ce *ConfigurationError
		te *TransportError
		ue *UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &ce):
		return "configuration"
	case errors.As(err, &te):
		return "transport"
	case errors.As(err, &ue):
		return "upstream"
	default:
		return "internal"
	}
}

// FieldRule maps a failed struct field (and optionally a specific tag) to a user message.
// An empty Tag matches any tag on the field.
type FieldRule struct {
	Field   string
	Tag     string
	Message string
}

// ValidationFromFieldErrors converts a validator error into a ValidationError.
// Rules are checked in order, so the first matching rule decides the message.
func ValidationFromFieldErrors(err error, rules []FieldRule) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: err.Error()}
	}
	for _, rule := range rules {
		for _, fe := range fieldErrs {
			if fe.StructField() != rule.Field {
				continue
			}
			if rule.Tag == "" || rule.Tag == fe.Tag() {
				return &ValidationError{Message: rule.Message}
			}
		}
	}
	return &ValidationError{Message: fieldErrs[0].Error()}
}
