package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations maps a JSON field name to every rule it broke.
type Violations map[string][]string

// Add records a message against a field.
func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Valid reports whether no rule was broken.
func (v Violations) Valid() bool {
	return len(v) == 0
}

// defaultMessages maps validation tags to friendly messages.
var defaultMessages = map[string]string{
	"required": "The field '%s' is required.",
	"notblank": "The field '%s' must not be empty.",
	"min":      "The field '%s' must be at least %s characters long.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"gt":       "The field '%s' must be greater than %s.",
	"lt":       "The field '%s' must be less than %s.",
	"oneof":    "The field '%s' must be one of %s.",
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(messages map[string]string, jsonTag string, e validator.FieldError) string {
	if msg, exists := messages[e.Tag()]; exists {
		switch strings.Count(msg, "%s") {
		case 1:
			return fmt.Sprintf(msg, jsonTag)
		case 2:
			return fmt.Sprintf(msg, jsonTag, e.Param())
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", jsonTag, e.Tag())
}

// jsonName resolves the JSON name of a struct field.
func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// notBlank fails on strings that are empty once surrounding whitespace is removed.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return !field.IsZero()
}

// StructValidator applies the `validate` struct tags of any DTO.
type StructValidator struct {
	validate *validator.Validate
	messages map[string]string
}

// NewStructValidator creates a validator with the built-in rule set plus notblank.
func NewStructValidator() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("notblank", notBlank)
	messages := make(map[string]string, len(defaultMessages))
	for tag, msg := range defaultMessages {
		messages[tag] = msg
	}
	return &StructValidator{validate: v, messages: messages}
}

// RegisterRule adds a custom tag with its message template. The template
// takes the field name and, optionally, the tag parameter. Rules must be
// registered before the validator serves requests.
func (s *StructValidator) RegisterRule(tag, message string, fn validator.Func) error {
	if err := s.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("validator: register rule %q: %w", tag, err)
	}
	if message != "" {
		s.messages[tag] = message
	}
	return nil
}

// Validate checks a struct (or pointer to struct) and returns its violations.
func (s *StructValidator) Validate(v any) Violations {
	out := Violations{}

	err := s.validate.Struct(v)
	if err == nil {
		return out
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		out.Add("", err.Error())
		return out
	}

	for _, e := range validationErrs {
		out.Add(e.Field(), parseMessage(s.messages, e.Field(), e))
	}
	return out
}
