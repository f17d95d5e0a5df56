package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// newValidator returns a validator that reports fields by their label tag
// and knows the passphrase check.
func newValidator() (*validator.Validator, error) {
	v := validator.NewValidator()

	if err := v.RegisterValidationAndTranslation(
		"passphrase",
		validatePassphrase,
		"{0} not found in environment or .env file",
	); err != nil {
		return nil, fmt.Errorf("registering passphrase validation: %w", err)
	}

	v.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v, nil
}

// validatePassphrase accepts any non-empty passphrase; strength is not checked.
func validatePassphrase(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String && fl.Field().String() != ""
}
