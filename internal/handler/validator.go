package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("tasktype", validateTaskType)
	_ = v.RegisterValidation("season", validateSeason)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "tasktype":
			errs[field] = "Invalid task type"
		case "season":
			errs[field] = "Invalid season"
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "latitude":
			errs[field] = "Invalid latitude"
		case "longitude":
			errs[field] = "Invalid longitude"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateTaskType(fl validator.FieldLevel) bool {
	t := fl.Field().String()
	if t == "" {
		return true
	}
	return domain.ValidTaskType(domain.TaskType(t))
}

func validateSeason(fl validator.FieldLevel) bool {
	s := domain.Season(strings.ToLower(fl.Field().String()))
	if s == "" {
		return true
	}
	return s == domain.SeasonRainy || s == domain.SeasonDry
}
