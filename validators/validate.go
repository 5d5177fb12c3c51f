package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared struct validator instance
var Validate = validator.New()

// CheckStruct runs tag validation and returns a field->message map, nil when
// everything passes
func CheckStruct(s interface{}) map[string]string {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors[strings.ToLower(fieldErr.Field())] = "Failed on '" + fieldErr.Tag() + "' validation!"
	}
	return errors
}
