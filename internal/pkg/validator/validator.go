package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Reportable content type validation
	validate.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
		ct := fl.Field().String()
		validTypes := []string{"post", "comment", "user"}
		for _, t := range validTypes {
			if ct == t {
				return true
			}
		}
		return false
	})

	// Profile visibility validation
	validate.RegisterValidation("profile_visibility", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		validValues := []string{"everyone", "university", "nobody"}
		for _, val := range validValues {
			if v == val {
				return true
			}
		}
		return false
	})

	// Engagement audience validation (who can react / comment)
	validate.RegisterValidation("engagement_audience", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		validValues := []string{"everyone", "university"}
		for _, val := range validValues {
			if v == val {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "oneof":
			errors[field] = "Must be one of: " + err.Param()
		case "content_type":
			errors[field] = "Invalid content type. Must be: post, comment, or user"
		case "profile_visibility":
			errors[field] = "Invalid visibility. Must be: everyone, university, or nobody"
		case "engagement_audience":
			errors[field] = "Invalid audience. Must be: everyone or university"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
