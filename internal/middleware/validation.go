package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// RPPS numbers are 11 digits.
	rppsRe = regexp.MustCompile(`^[0-9]{11}$`)
	// 24h clock, HH:MM.
	clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// RegisterValidators installs domain validation tags on gin's binding engine
// and makes validation errors report json field names. Call once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	if err := v.RegisterValidation("rpps", func(fl validator.FieldLevel) bool {
		return rppsRe.MatchString(strings.TrimSpace(fl.Field().String()))
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}
