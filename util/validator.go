package util

import (
	"github.com/bwise1/court_cases/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("role", validateRole)
	validate.RegisterValidation("verdict", validateVerdict)
}

func validateRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).Valid()
}

func validateVerdict(fl validator.FieldLevel) bool {
	return model.Verdict(fl.Field().String()).Valid()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
