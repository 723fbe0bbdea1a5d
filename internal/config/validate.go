package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Use a single instance of Validate, it caches struct info
var validate = validator.New()

// runOptions is the subset of a run's settings that is checked before any
// request is sent.
type runOptions struct {
	URL       string `validate:"required,url"`
	Key       string `validate:"required"`
	Tenant    string `validate:"required_if=Key smcb-status"`
	ICCSNSmcB string `validate:"required_if=Key smcb-status"`
	Output    string `validate:"oneof=json prometheus"`
}

var flagNames = map[string]string{
	"URL":       "--url",
	"Key":       "-k",
	"Tenant":    "--tenant",
	"ICCSNSmcB": "--iccsn-smcb",
	"Output":    "--output",
}

// Validate checks that cfg carries what the query selected by key needs.
func Validate(cfg *Config, key string) error {
	err := validate.Struct(runOptions{
		URL:       cfg.URL,
		Key:       key,
		Tenant:    cfg.Tenant,
		ICCSNSmcB: cfg.ICCSNSmcB,
		Output:    cfg.Output,
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	name := flagNames[fe.Field()]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "required_if":
		return fmt.Errorf("%s is required for key %s", name, key)
	case "url":
		return fmt.Errorf("%s must be a valid URL, got %q", name, fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s, got %q", name, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("invalid %s: %s", name, fe.Tag())
	}
}
