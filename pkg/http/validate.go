package http

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Messages maps a validator tag to a format taking the field label and the
// tag parameter, in that order. The "" entry is the fallback.
type Messages map[string]string

// EnglishMessages are used for API responses.
var EnglishMessages = Messages{
	"required": "%s is required",
	"datetime": "%s must match the format %s",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"len":      "%s must have length %s",
	"oneof":    "%s must be one of: %s",
	"gte":      "%s must be greater than or equal to %s",
	"gt":       "%s must be greater than %s",
	"lt":       "%s must be less than %s",
	"lte":      "%s must be less than or equal to %s",
	"":         "%s failed validation: %s",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their wire name so clients can map errors back
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// ReadAndValidateRequest binds, defaults and validates the request body.
// It returns nil when req is valid.
func ReadAndValidateRequest(c echo.Context, req interface{}) []ValidationError {
	if err := c.Bind(req); err != nil {
		return toValidationErrors(err)
	}
	if err := defaults.Set(req); err != nil {
		return toValidationErrors(err)
	}
	return ValidateStruct(c.Request().Context(), req)
}

// ValidateStruct validates an already populated struct.
func ValidateStruct(ctx context.Context, req interface{}) []ValidationError {
	if err := validate.StructCtx(ctx, req); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

// Localize renders errs with msgs, replacing field names found in labels.
// The first error per field wins.
func Localize(errs []ValidationError, msgs Messages, labels map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := out[e.Field]; ok {
			continue
		}
		if e.tag == "" {
			out[e.Field] = e.Message
			continue
		}
		label := e.Field
		if l, ok := labels[e.Field]; ok {
			label = l
		}
		out[e.Field] = msgs.format(e.tag, label, e.param)
	}
	return out
}

func (m Messages) format(tag, field, param string) string {
	f, ok := m[tag]
	if !ok {
		f, param = m[""], tag
	}
	if f == "" {
		f = EnglishMessages[""]
	}
	if strings.Count(f, "%s") < 2 {
		return fmt.Sprintf(f, field)
	}
	return fmt.Sprintf(f, field, param)
}

func toValidationErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		errs := make([]ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Code:    "ERR_" + strings.ToUpper(fe.Tag()),
				Field:   fe.Field(),
				Message: EnglishMessages.format(fe.Tag(), fe.Field(), fe.Param()),
				Params:  errorParams(fe),
				tag:     fe.Tag(),
				param:   fe.Param(),
			})
		}
		return errs
	}

	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprintf("%v", he.Message)
	}
	return []ValidationError{{Code: "ERR_UNKNOWN", Message: msg}}
}

func errorParams(fe validator.FieldError) map[string]interface{} {
	switch fe.Tag() {
	case "min", "gte", "gt":
		return map[string]interface{}{"min": fe.Param()}
	case "max", "lte", "lt":
		return map[string]interface{}{"max": fe.Param()}
	case "len":
		return map[string]interface{}{"length": fe.Param()}
	case "datetime":
		return map[string]interface{}{"layout": fe.Param()}
	case "oneof":
		return map[string]interface{}{"options": strings.Split(fe.Param(), " ")}
	}
	return nil
}
