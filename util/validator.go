package util

import (
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("rating", validateRating)
}

// validateRating accepts exactly the integers 1 and -1. The field
// arrives as a json.Number, so quoted and fractional inputs already
// failed decoding or fail the integer parse here.
func validateRating(fl validator.FieldLevel) bool {
	num, ok := fl.Field().Interface().(json.Number)
	if !ok {
		return false
	}
	v, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return false
	}
	return v == 1 || v == -1
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
