package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/impulso-stone/mentores-api/pkg/phone"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags and reports fields by
// their JSON name. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("br_phone", validateBRPhone) //nolint:errcheck // tag name is static
	})
}

func validateBRPhone(fl validator.FieldLevel) bool {
	_, err := phone.Validate(fl.Field().String())
	return err == nil
}

// ParseValidationErrors converts binding errors to a field -> message map
func ParseValidationErrors(err error) map[string]string {
	fields := map[string]string{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["body"] = "JSON inválido"
		return fields
	}

	for _, fe := range validationErrors {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = getErrorMessage(fe)
		}
	}
	return fields
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		return "deve ter pelo menos " + fe.Param() + " caracteres"
	case "max":
		return "deve ter no máximo " + fe.Param() + " caracteres"
	case "br_phone":
		return "telefone deve ter entre 10 e 15 dígitos"
	default:
		return "valor inválido"
	}
}
