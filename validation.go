// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// recordValidator returns the shared validator with the "eui" and "finite"
// tags registered
func recordValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("eui", func(fl validator.FieldLevel) bool {
			return IsValidEUI(fl.Field().String())
		})
		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
		structValidator = v
	})
	return structValidator
}

// ValidationError describes a single invalid field of a record
type ValidationError struct {
	// Field is the Go field name that failed validation
	Field string

	// Tag is the failed validation rule, e.g. "ip" or "oneof"
	Tag string

	// Message describes why the validation failed
	Message string
}

// ValidationErrors is returned by create and update operations when a record
// is rejected before it is sent
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "invalid record: " + strings.Join(parts, "; ")
}

// Validate checks a record (Application, Gateway or Device) against its
// field constraints. Returns ValidationErrors on failure.
func Validate(record any) error {
	err := recordValidator().Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	result := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return result
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "eui":
		return fmt.Sprintf("%q is not a valid EUI", fe.Value())
	case "finite":
		return "must be a finite number"
	case "ip":
		return fmt.Sprintf("%q is not a valid IP address", fe.Value())
	case "hexadecimal":
		return "must be hexadecimal"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
