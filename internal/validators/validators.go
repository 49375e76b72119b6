package validators

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Register adds the marketplace tags to gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("phone", ValidatePhone); err != nil {
		return err
	}
	return v.RegisterValidation("gender", ValidateGender)
}

// ValidatePhone accepts an empty value; pair with required when mandatory.
func ValidatePhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || phonePattern.MatchString(s)
}

func ValidateGender(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, g := range identity.Genders {
		if g == s {
			return true
		}
	}
	return false
}
