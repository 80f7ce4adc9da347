package middlewares

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// FieldError is one entry of the structured list returned on validation
// failures.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// ValidateStruct runs the validate tags of a request struct and returns
// the failing fields, or nil when everything passes.
func ValidateStruct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "request", Tag: "invalid"}}
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return fields
}
