package validator

import (
	"sync"

	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	mu       sync.Mutex
)

func NewValidator() *validator.Validate {
	mu.Lock()
	defer mu.Unlock()
	if validate == nil {
		validate = validator.New()
	}
	return validate
}

func GetValidator() *validator.Validate {
	return NewValidator()
}

// ValidateRequest runs struct tag validation and converts failures into a
// validation error carrying one detail entry per offending field.
func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fieldErr := range validateErrs {
				details[fieldErr.Namespace()] = fieldErr.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
