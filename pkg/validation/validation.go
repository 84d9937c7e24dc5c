// Package validation validates inbound request payloads, including the
// UK postcode formats used by mandate geography.
package validation

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/go-playground/validator/v10"
)

var (
	// Outward code, e.g. "SW1A" or "M1"
	postcodeAreaPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{0,2}[A-Z]?$`)
	// Full postcode, e.g. "SW1A 1AA"
	fullPostcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`)
)

// Validator wraps go-playground validation with the custom rules the
// API needs
type Validator struct {
	validate *validator.Validate
}

// New creates a request validator
func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("uk_postcode_area", func(fl validator.FieldLevel) bool {
		return IsPostcodeArea(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("uk_postcode", func(fl validator.FieldLevel) bool {
		return IsFullPostcode(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	return &Validator{validate: v}, nil
}

// Struct validates a request payload, converting field failures into a
// single bad request error with per-field metadata.
func (v *Validator) Struct(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	fields := map[string]any{}
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return httperror.NewHTTPError(http.StatusBadRequest, "request validation failed").
		AddMetaValue("kind", "validation_error").
		AddMetaValue("fields", fields)
}

// IsPostcodeArea reports whether s is a valid UK outward code
func IsPostcodeArea(s string) bool {
	return postcodeAreaPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// IsFullPostcode reports whether s is a valid full UK postcode
func IsFullPostcode(s string) bool {
	return fullPostcodePattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// ValidPostcodeAreas checks every entry of a mandate postcode list,
// returning the first invalid entry
func ValidPostcodeAreas(areas []string) (string, bool) {
	for _, area := range areas {
		if !IsPostcodeArea(area) {
			return area, false
		}
	}
	return "", true
}
