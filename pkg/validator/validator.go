package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errs = append(errs, &element)
		}
	}
	return errs
}

// Describe formats the first validation failure for an error message.
func Describe(errs []*ErrorResponse) string {
	if len(errs) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
}
