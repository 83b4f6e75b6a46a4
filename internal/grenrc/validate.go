package grenrc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one invalid field of a Config.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every problem found in a Config.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// IsValidationError returns true if err is or wraps a validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks c against the schema. It returns nil or ValidationErrors
// listing every problem found.
func Validate(c *Config) error {
	var errs ValidationErrors

	errs = append(errs, validateStruct(c)...)
	errs = append(errs, validateTemplate(&c.Template)...)
	errs = append(errs, validateGroups(c.GroupBy)...)
	errs = append(errs, validateIgnored(c)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateStruct(c *Config) ValidationErrors {
	err := structValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Message: err.Error()}}
	}

	var errs ValidationErrors
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Config."),
			Message: formatFieldError(fe),
		})
	}
	return errs
}

// formatFieldError formats a validation error for a specific field.
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		allowed := strings.Fields(fe.Param())
		if fe.Field() == "dataSource" {
			allowed = ValidDataSources()
		}
		return fmt.Sprintf("must be one of [%s], got %q", strings.Join(allowed, ", "), fe.Value())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

func validateTemplate(t *Template) ValidationErrors {
	var errs ValidationErrors

	if t.Commit != "" {
		if _, err := LookupCommitFormatter(t.Commit); err != nil {
			errs = append(errs, &ValidationError{Field: "template.commit", Message: err.Error()})
		}
	}

	for _, slot := range slotPlaceholders {
		value := slot.value(*t)
		if value == "" {
			continue
		}
		used := Placeholders(value)
		for _, name := range used {
			if !contains(slot.allowed, name) {
				errs = append(errs, &ValidationError{
					Field:   slot.field,
					Message: fmt.Sprintf("unknown placeholder {{%s}} (allowed: %v)", name, slot.allowed),
				})
			}
		}
		for _, name := range slot.required {
			if !contains(used, name) {
				errs = append(errs, &ValidationError{
					Field:   slot.field,
					Message: fmt.Sprintf("must contain {{%s}}", name),
				})
			}
		}
	}

	return errs
}

func validateGroups(groups GroupBy) ValidationErrors {
	var errs ValidationErrors
	seenNames := make(map[string]bool)
	owner := make(map[string]string)

	for i, group := range groups {
		field := fmt.Sprintf("groupBy[%d]", i)
		if strings.TrimSpace(group.Name) == "" {
			errs = append(errs, &ValidationError{Field: field, Message: "group name cannot be empty"})
		} else {
			field = fmt.Sprintf("groupBy.%s", group.Name)
			if seenNames[group.Name] {
				errs = append(errs, &ValidationError{Field: field, Message: "duplicate group name"})
			}
			seenNames[group.Name] = true
		}

		if len(group.Labels) == 0 {
			errs = append(errs, &ValidationError{Field: field, Message: "at least one label is required"})
		}

		for j, label := range group.Labels {
			if strings.TrimSpace(label) == "" {
				errs = append(errs, &ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, j),
					Message: "label cannot be empty",
				})
				continue
			}
			prev, taken := owner[label]
			switch {
			case taken && prev == group.Name:
				errs = append(errs, &ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, j),
					Message: fmt.Sprintf("label %q is listed twice", label),
				})
			case taken:
				errs = append(errs, &ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, j),
					Message: fmt.Sprintf("label %q already routes to group %q", label, prev),
				})
			default:
				owner[label] = group.Name
			}
		}
	}

	return errs
}

func validateIgnored(c *Config) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)
	owner := c.LabelIndex()

	for i, label := range c.IgnoreIssuesWith {
		field := fmt.Sprintf("ignoreIssuesWith[%d]", i)
		switch {
		case strings.TrimSpace(label) == "":
			errs = append(errs, &ValidationError{Field: field, Message: "label cannot be empty"})
		case seen[label]:
			errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf("label %q is listed twice", label)})
		case owner[label] != "":
			errs = append(errs, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("label %q is ignored, so group %q can never receive it", label, owner[label]),
			})
		}
		seen[label] = true
	}

	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
