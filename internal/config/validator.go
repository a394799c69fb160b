package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("namespace", isNamespace); err != nil {
		return nil, nil, fmt.Errorf("failed to register namespace validation: %w", err)
	}
	if err := validate.RegisterTranslation("namespace", trans, func(ut ut.Translator) error {
		return ut.Add("namespace", "{0} must contain only letters, digits, '_' and '-'", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("namespace", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register namespace translation: %w", err)
	}

	return validate, trans, nil
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// isNamespace accepts names usable as a file name in the state directory.
func isNamespace(fl validator.FieldLevel) bool {
	return namespacePattern.MatchString(fl.Field().String())
}
