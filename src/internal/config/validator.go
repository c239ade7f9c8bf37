package config

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/turris-cz/turrishw/src/internal/errors"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	sections := []struct {
		name  string
		value any
	}{
		{"general", &c.General},
		{"output", &c.Output},
		{"api", &c.API},
	}
	for _, section := range sections {
		if err := validate.Struct(section.value); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, section.name)...)
		}
	}

	if c.Output.Format == FormatText && c.Output.TextTemplate == "" {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "output.text_template",
			Message:   "is required for the text format",
		})
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("invalid configuration", validationErrors)
	}

	return nil
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if stderrors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			// e.Field() returns the TOML tag name because we registered TagNameFunc
			if e.Field() != "" {
				fieldPath = fieldPrefix + "." + e.Field()
			}

			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
