package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingField is returned when a payload lacks a field that is read.
var ErrMissingField = errors.New("missing field")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report JSON names so errors match the payload
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CheckFields verifies that the decoded payload p carries the given fields,
// named by their Go field names. Without field names every tagged field is
// checked.
func CheckFields(p any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = validate.Struct(p)
	} else {
		err = validate.StructPartial(p, fields...)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w %q", ErrMissingField, verrs[0].Field())
	}
	return err
}
