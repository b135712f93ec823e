// Package form implements the schema-driven validation engine shared by
// every content-submission surface. A Schema declares per-field rules; a
// single Validate pass checks every field (no short-circuit) so callers can
// display all errors at once, and yields trimmed, typed values on success.
package form

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind describes how a field value is typed and coerced.
type Kind int

// Field kinds.
const (
	Text Kind = iota
	Email
	Number
	Integer
	Select
	Bool
)

// emailPattern is a pragmatic email shape check, not an RFC validator.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule declares the validation constraints for one field.
type Rule struct {
	Label     string   // human-readable name used in error messages
	Kind      Kind     // value type; zero value is Text
	Required  bool     // non-empty after trimming
	MinLength int      // minimum length for Text fields
	Min       float64  // minimum value for Number/Integer fields
	HasMin    bool     // whether Min applies
	Options   []string // allowed values for Select fields
}

// Schema maps field names to their rules.
type Schema map[string]Rule

// Errors maps field names to human-readable validation messages.
type Errors map[string]string

// Values holds the trimmed, typed values of a draft that passed validation.
type Values map[string]any

// String returns the string value of a field, or "" if absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Float returns the numeric value of a field, or 0 if absent.
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Int returns the integer value of a field, or 0 if absent.
func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

// Bool returns the boolean value of a field, or false if absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Validate checks every field of the schema against the raw input. It never
// short-circuits: all fields are validated so the caller can render every
// error in one pass. On success the returned Values contain trimmed strings
// and coerced numbers; on failure Values is nil and Errors is non-empty.
func (s Schema) Validate(input map[string]any) (Values, Errors) {
	errs := make(Errors)
	values := make(Values, len(s))

	for name, rule := range s {
		raw, present := input[name]
		switch rule.Kind {
		case Text, Email, Select:
			str, ok := coerceString(raw, present)
			if !ok {
				errs[name] = fmt.Sprintf("%s must be text", rule.label(name))
				continue
			}
			str = strings.TrimSpace(str)
			if msg := rule.checkString(name, str); msg != "" {
				errs[name] = msg
				continue
			}
			values[name] = str

		case Number, Integer:
			f, ok := coerceNumber(raw, present)
			if !ok {
				if rule.Required || present {
					errs[name] = fmt.Sprintf("%s must be a number", rule.label(name))
				}
				continue
			}
			if rule.Kind == Integer && f != math.Trunc(f) {
				errs[name] = fmt.Sprintf("%s must be a whole number", rule.label(name))
				continue
			}
			if rule.HasMin && f < rule.Min {
				errs[name] = fmt.Sprintf("%s must be greater than or equal to %g", rule.label(name), rule.Min)
				continue
			}
			if rule.Kind == Integer {
				values[name] = int(f)
			} else {
				values[name] = f
			}

		case Bool:
			values[name] = coerceBool(raw)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// checkString validates a trimmed string against the rule.
func (r Rule) checkString(name, s string) string {
	if s == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.label(name))
		}
		return ""
	}
	if r.MinLength > 0 && len(s) < r.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", r.label(name), r.MinLength)
	}
	if r.Kind == Email && !emailPattern.MatchString(s) {
		return "Please enter a valid email address"
	}
	if r.Kind == Select && len(r.Options) > 0 && !contains(r.Options, s) {
		return fmt.Sprintf("%s must be one of the listed options", r.label(name))
	}
	return ""
}

func (r Rule) label(name string) string {
	if r.Label != "" {
		return r.Label
	}
	return name
}

func coerceString(raw any, present bool) (string, bool) {
	if !present || raw == nil {
		return "", true
	}
	s, ok := raw.(string)
	return s, ok
}

func coerceNumber(raw any, present bool) (float64, bool) {
	if !present || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "on" || v == "1"
	default:
		return false
	}
}

func contains(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}
