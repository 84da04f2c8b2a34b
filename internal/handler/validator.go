package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// TagNotFuture rejects YYYY-MM-DD dates after today in the furthest-ahead timezone
const TagNotFuture = "notfuture"

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator builds the shared validator. Safe to call more than once.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their json names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// Registration only fails on an empty tag or nil func
		_ = v.RegisterValidation(TagNotFuture, notFuture)

		validate = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// notFuture leaves malformed dates to the datetime tag
func notFuture(fl validator.FieldLevel) bool {
	day, err := time.Parse(time.DateOnly, fl.Field().String())
	if err != nil {
		return true
	}
	// UTC+14 is the first zone to reach a new calendar day
	latest := time.Now().UTC().Add(14 * time.Hour)
	return !day.After(latest)
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag, e.g. a path parameter
func (v *Validator) ValidateVar(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// FormatValidationError maps validation failures to json field names and readable messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "uuid":
			errs[field] = "Must be a UUID"
		case "datetime":
			errs[field] = fmt.Sprintf("Must be a date in %s format", e.Param())
		case TagNotFuture:
			errs[field] = "Must not be in the future"
		case "oneof":
			errs[field] = "Must be one of: " + e.Param()
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
