// Package validation wraps a process-wide validator instance consuming the
// validate struct tags on models and request payloads. Checks are pure;
// nothing is persisted before a payload passes.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report wire field names, not Go struct field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Error is a validation failure naming the offending fields.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "invalid value for field(s): " + strings.Join(e.Fields, ", ")
}

// Struct validates v against its validate tags. It returns *Error for
// constraint violations and the raw error for anything else.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &Error{Fields: fields}
	}
	return err
}
