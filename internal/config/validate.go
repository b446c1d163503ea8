package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// configValidate is the validator instance for configuration values.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("hookname", validateHookName)
}

var hookNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// validateHookName accepts JavaScript identifiers.
func validateHookName(fl validator.FieldLevel) bool {
	return hookNamePattern.MatchString(fl.Field().String())
}

// ValidationError reports every invalid field of a configuration.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is one invalid field.
type FieldError struct {
	// Namespace is the field path, e.g. Config.Hooks[0].Name.
	Namespace string
	Tag       string
	Value     any
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: failed %q (value %v)", f.Namespace, f.Tag, f.Value)
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Validate checks the struct tags of c.
func (c *Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{Namespace: fe.Namespace(), Tag: fe.Tag(), Value: fe.Value()}
	}
	return &ValidationError{Fields: fields}
}
