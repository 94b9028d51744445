package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the clinic's enumerated-field validators
// into gin's binding engine so requests with an unknown slot, specialty or
// doctor are rejected at bind time.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return IsValidSlot(fl.Field().String())
	})
	v.RegisterValidation("specialty", func(fl validator.FieldLevel) bool {
		return IsValidSpecialty(fl.Field().String())
	})
	v.RegisterValidation("doctor", func(fl validator.FieldLevel) bool {
		return IsValidDoctor(fl.Field().String())
	})
}
