package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Record is a loosely typed view of a form or payload keyed by field name.
type Record map[string]any

// FieldError describes a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule binds a predicate to the message reported when it fails.
// Validate receives the whole record so rules may consult sibling fields.
type Rule struct {
	Validate func(value any, record Record) bool
	Message  string
}

// FieldRules is the ordered rule list for one field.
type FieldRules struct {
	Field string
	Rules []Rule
}

// Schema lists field rules in evaluation order.
type Schema []FieldRules

// Fields returns the field names covered by the schema.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for _, fr := range s {
		names = append(names, fr.Field)
	}
	return names
}

// ValidateField runs every rule against value and returns the message of each failing rule in order.
func ValidateField(value any, rules []Rule, record Record) []string {
	var messages []string
	for _, rule := range rules {
		if !rule.Validate(value, record) {
			messages = append(messages, rule.Message)
		}
	}
	return messages
}

// ValidateForm runs the schema over record. Fields without rules are skipped and
// fields missing from the schema never produce errors.
func ValidateForm(record Record, schema Schema) []FieldError {
	errs := make([]FieldError, 0)
	for _, fr := range schema {
		if len(fr.Rules) == 0 {
			continue
		}
		for _, msg := range ValidateField(record[fr.Field], fr.Rules, record) {
			errs = append(errs, FieldError{Field: fr.Field, Message: msg})
		}
	}
	return errs
}

// ValidatePresent behaves like ValidateForm but only checks the fields present in record.
func ValidatePresent(record Record, schema Schema) []FieldError {
	partial := make(Schema, 0, len(schema))
	for _, fr := range schema {
		if _, ok := record[fr.Field]; ok {
			partial = append(partial, fr)
		}
	}
	return ValidateForm(record, partial)
}

// Required fails on nil, blank strings and NaN.
func Required(message string) Rule {
	if message == "" {
		message = "This field is required"
	}
	return Rule{Validate: func(value any, _ Record) bool { return IsRequired(value) }, Message: message}
}

// Email checks the email shape of string values.
func Email(message string) Rule {
	if message == "" {
		message = "Please enter a valid email address"
	}
	return stringRule(IsValidEmail, message)
}

// PhoneNumber checks for a 10-digit phone number.
func PhoneNumber(message string) Rule {
	if message == "" {
		message = "Please enter a valid 10-digit phone number"
	}
	return stringRule(IsValidPhoneNumber, message)
}

// GPA checks the 0.0-4.0 range.
func GPA(message string) Rule {
	if message == "" {
		message = "GPA must be between 0.0 and 4.0"
	}
	return numberRule(IsValidGPA, message)
}

// GraduationYear checks the year window around the year reported by now.
func GraduationYear(message string, now Clock) Rule {
	if message == "" {
		message = "Please enter a valid graduation year"
	}
	if now == nil {
		now = SystemClock
	}
	return numberRule(func(v float64) bool {
		return IsValidGraduationYearAt(int(v), now())
	}, message)
}

// MinLength checks the string length lower bound.
func MinLength(min int, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("Must be at least %d characters long", min)
	}
	return stringRule(HasMinLength(min), message)
}

// MaxLength checks the string length upper bound.
func MaxLength(max int, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("Must be no more than %d characters long", max)
	}
	return stringRule(HasMaxLength(max), message)
}

// NumberRange checks an inclusive numeric range.
func NumberRange(min, max float64, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("Must be between %s and %s", formatBound(min), formatBound(max))
	}
	return numberRule(IsNumberInRange(min, max), message)
}

// Pattern checks string values against re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return stringRule(MatchesPattern(re), message)
}

// Custom wraps an arbitrary predicate.
func Custom(validate func(value any, record Record) bool, message string) Rule {
	return Rule{Validate: validate, Message: message}
}

func stringRule(pred func(string) bool, message string) Rule {
	return Rule{
		Validate: func(value any, _ Record) bool {
			s, ok := asString(value)
			return ok && pred(s)
		},
		Message: message,
	}
}

func numberRule(pred func(float64) bool, message string) Rule {
	return Rule{
		Validate: func(value any, _ Record) bool {
			f, ok := asFloat(value)
			return ok && pred(f)
		},
		Message: message,
	}
}

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

func asFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case *float64:
		if v == nil {
			return 0, false
		}
		f = *v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case *int:
		if v == nil {
			return 0, false
		}
		f = float64(*v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
