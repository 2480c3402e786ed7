package services

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Logger is the logging port every service receives from main
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages line up with the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
