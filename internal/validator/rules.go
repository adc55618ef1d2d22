package validator

import (
	"log"

	"jobvibes_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the model-enum validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-gender", validateGender)
	mustRegister("is-job-type", validateJobType)
	mustRegister("is-rating", validateRating)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is left to 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleCandidate, models.UserRoleEmployer:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Gender(value) {
	case models.GenderMale, models.GenderFemale, models.GenderOther, models.GenderPreferNotToSay:
		return true
	default:
		return false
	}
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobType(value) {
	case models.JobTypeFreelance, models.JobTypeFullTime, models.JobTypePartTime:
		return true
	default:
		return false
	}
}

func validateRating(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	return value >= 1 && value <= 5
}
