package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var msisdnPattern = regexp.MustCompile(`^(0|\+254|254)[0-9]{9}$`)

// RegisterCustomValidators installs the request-binding validators the
// API uses on top of the defaults. "msisdn" accepts Kenyan subscriber
// numbers in local or international form.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
		return msisdnPattern.MatchString(fl.Field().String())
	})
}
