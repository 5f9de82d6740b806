package serverutils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs the request DTO's validate tags. Returns the first
// violation as a plain error suitable for the response envelope.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
