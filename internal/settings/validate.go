package settings

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const absoluteURLTag = "absurl"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their document keys so errors read "auth0.clientId".
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(absoluteURLTag, isAbsoluteURL); err != nil {
		panic(err)
	}
	return v
}

// isAbsoluteURL accepts URLs carrying both a scheme and a host name.
func isAbsoluteURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Hostname() != ""
}

// validateDocument checks doc and returns the first violation as a *ConfigurationError.
func validateDocument(env Environment, doc profile) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigurationError{Environment: env, Field: "document", Reason: "failed validation", Err: err}
	}

	fe := fieldErrs[0]
	return &ConfigurationError{
		Environment: env,
		Field:       documentPath(fe.Namespace()),
		Reason:      reasonFor(fe),
	}
}

// documentPath drops the leading struct name from a validator namespace.
func documentPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case absoluteURLTag:
		return "must be an absolute URL"
	case "hostname_rfc1123":
		return "must be a hostname"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}
