package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/vibeflo/vibeflo/models"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return models.BadRequest("invalid value for field %q", errs[0].Field())
		}

		return models.BadRequest("invalid request body")
	}

	return nil
}
