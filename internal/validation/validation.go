// Package validation provides declarative per-endpoint rule sets.
// A rule set maps raw JSON input to field-keyed error messages,
// decoupled from the HTTP transport.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Errors collects validation messages keyed by field name.
type Errors map[string][]string

// Add appends a message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field has errors.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Check evaluates a single rule against a raw field value.
// present is false when the field was absent from the input.
// Returns an empty string when the rule passes.
type Check func(value any, present bool) string

// Field binds a field name to its ordered checks.
type Field struct {
	Name   string
	Checks []Check
}

// RuleSet is a named collection of per-field rules for one endpoint.
type RuleSet struct {
	Fields []Field
}

// Validate evaluates all rules against the raw input mapping.
// The returned Errors is empty when the input is valid.
func (rs RuleSet) Validate(input map[string]any) Errors {
	errs := Errors{}
	for _, f := range rs.Fields {
		value, present := input[f.Name]
		for _, check := range f.Checks {
			if msg := check(value, present); msg != "" {
				errs.Add(f.Name, msg)
			}
		}
	}
	return errs
}

// label humanizes a field name for messages: "has_completed" -> "has completed".
func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// emailPattern is a permissive syntax check, matching the original
// contract rather than full RFC 5322.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isMissing reports whether a value counts as absent: not present,
// null, or an empty string.
func isMissing(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// Required fails when the field is absent, null, or an empty string.
func Required(field string) Check {
	return func(value any, present bool) string {
		if isMissing(value, present) {
			return fmt.Sprintf("The %s field is required.", label(field))
		}
		return ""
	}
}

// Email fails when a present value is not a syntactically valid address.
func Email(field string) Check {
	return func(value any, present bool) string {
		if isMissing(value, present) {
			return ""
		}
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(s) {
			return fmt.Sprintf("The %s field must be a valid email address.", label(field))
		}
		return ""
	}
}

// MaxLen fails when a present string value exceeds max characters.
func MaxLen(field string, max int) Check {
	return func(value any, present bool) string {
		if isMissing(value, present) {
			return ""
		}
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) > max {
			return fmt.Sprintf("The %s field must not be greater than %d characters.", label(field), max)
		}
		return ""
	}
}

// Boolean fails when a present value is not a JSON boolean.
func Boolean(field string) Check {
	return func(value any, present bool) string {
		if isMissing(value, present) {
			return ""
		}
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("The %s field must be true or false.", label(field))
		}
		return ""
	}
}

// Taken returns the uniqueness violation message for a field.
// Uniqueness is checked against the store by the service layer, which
// appends this message to the same error bag.
func Taken(field string) string {
	return fmt.Sprintf("The %s has already been taken.", label(field))
}

// String extracts a trimmed string value from raw input.
func String(input map[string]any, field string) string {
	if s, ok := input[field].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Bool extracts a boolean value from raw input.
func Bool(input map[string]any, field string) bool {
	if b, ok := input[field].(bool); ok {
		return b
	}
	return false
}

// Strings extracts a []string value from a raw JSON array.
// Non-string elements are skipped.
func Strings(input map[string]any, field string) []string {
	raw, ok := input[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
