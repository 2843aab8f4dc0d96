package client

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// ValidateDraft applies the local draft rules and returns a *ValidationError
// for the first violation.
func ValidateDraft(d models.Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: messageFor(fe)}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must not be negative"
	case "finite":
		return "must be a finite number"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	return nil
}
