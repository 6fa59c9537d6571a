// Package validation implements the field-rule engine used by every catalog
// write. Rules accumulate violations instead of failing fast, so a single
// Validate call reports all of them.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/delcom/catalog/internal/apperr"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator checks rules against one request's field values.
type Validator struct {
	data map[string]string
	errs []FieldError
}

// New creates a Validator over the given field values.
func New(data map[string]string) *Validator {
	return &Validator{data: data}
}

// AddError records a violation for field.
func (v *Validator) AddError(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// Required fails when the field is missing or blank.
func (v *Validator) Required(field, message string) {
	value, ok := v.data[field]
	if !ok || strings.TrimSpace(value) == "" {
		v.AddError(field, orDefault(message, fmt.Sprintf("%s is required", field)))
	}
}

// MinLength fails when a present field is shorter than min runes.
func (v *Validator) MinLength(field string, min int, message string) {
	value, ok := v.data[field]
	if ok && utf8.RuneCountInString(value) < min {
		v.AddError(field, orDefault(message, fmt.Sprintf("%s must be at least %d characters", field, min)))
	}
}

// MaxLength fails when a present field is longer than max runes.
func (v *Validator) MaxLength(field string, max int, message string) {
	value, ok := v.data[field]
	if ok && utf8.RuneCountInString(value) > max {
		v.AddError(field, orDefault(message, fmt.Sprintf("%s must be at most %d characters", field, max)))
	}
}

// Email fails when a present field is not an email address.
func (v *Validator) Email(field, message string) {
	value, ok := v.data[field]
	if ok && !emailRegex.MatchString(value) {
		v.AddError(field, orDefault(message, fmt.Sprintf("%s must be a valid email", field)))
	}
}

// Errors returns the violations recorded so far.
func (v *Validator) Errors() []FieldError {
	return v.errs
}

// Validate returns nil when no rule failed, otherwise a single
// ValidationFailed error carrying every violation in Join format.
func (v *Validator) Validate() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Validation(Join(v.errs))
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
