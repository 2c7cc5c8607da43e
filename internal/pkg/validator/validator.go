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
	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"GUEST", "HOST", "ADMIN"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Property type validation
	validate.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
		propertyType := fl.Field().String()
		validTypes := []string{"apartment", "house", "villa", "cabin", "studio", ""}
		for _, t := range validTypes {
			if propertyType == t {
				return true
			}
		}
		return false
	})

	// Calendar date validation (YYYY-MM-DD)
	validate.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		if len(value) != 10 {
			return false
		}
		for i, c := range value {
			if i == 4 || i == 7 {
				if c != '-' {
					return false
				}
				continue
			}
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
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
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "role":
			errors[field] = "Invalid role. Must be: GUEST, HOST, or ADMIN"
		case "property_type":
			errors[field] = "Invalid property type. Must be: apartment, house, villa, cabin, or studio"
		case "calendar_date":
			errors[field] = "Invalid date. Expected format: YYYY-MM-DD"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
