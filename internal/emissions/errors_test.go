package emissions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "validation", ErrorKind(&ValidationError{Message: "x"}))
	assert.Equal(t, "configuration", ErrorKind(&ConfigurationError{Message: "x"}))
	assert.Equal(t, "transport", ErrorKind(fmt.Errorf("wrapped: %w", &TransportError{Message: "x"})))
	assert.Equal(t, "upstream", ErrorKind(&UpstreamError{Message: "x", StatusCode: 500}))
	assert.Equal(t, "internal", ErrorKind(errors.New("boom")))
}

func TestTransportErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Message: "Failed to reach emissions service", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to reach emissions service", err.Error())
}

func TestValidationFromFieldErrors(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
		Date string `validate:"required,datetime=2006-01-02"`
	}
	rules := []FieldRule{
		{Field: "Name", Message: "Name is required"},
		{Field: "Date", Tag: "required", Message: "Date is required"},
		{Field: "Date", Tag: "datetime", Message: "Date is malformed"},
	}
	v := validator.New()

	err := ValidationFromFieldErrors(v.Struct(form{}), rules)
	assert.Equal(t, &ValidationError{Message: "Name is required"}, err)

	err = ValidationFromFieldErrors(v.Struct(form{Name: "a", Date: "tomorrow"}), rules)
	assert.Equal(t, &ValidationError{Message: "Date is malformed"}, err)

	assert.NoError(t, ValidationFromFieldErrors(v.Struct(form{Name: "a", Date: "2025-01-01"}), rules))
}
