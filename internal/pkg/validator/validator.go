package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
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

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Minute-granular wall-clock time, "HH:MM"
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := timegrid.Parse(fl.Field().String())
		return err == nil
	})

	// Weekday index, 0 (Sunday) through 6 (Saturday)
	validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		d := fl.Field().Int()
		return d >= 0 && d <= 6
	})

	// Staff role validation
	validate.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"stylist", "colorist", "assistant", "manager", ""}
		for _, r := range validRoles {
			if role == r {
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
		case "hhmm":
			errors[field] = "Invalid time. Use minute-granular HH:MM"
		case "weekday":
			errors[field] = "Invalid weekday. Must be 0 (Sunday) through 6 (Saturday)"
		case "staffrole":
			errors[field] = "Invalid role. Must be: stylist, colorist, assistant, or manager"
		case "dive":
			errors[field] = "Invalid value"
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
