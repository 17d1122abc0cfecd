package validation

import (
	"strings"
	"time"
)

// Clock reports the current time; schemas take one so year windows can be pinned in tests.
type Clock func() time.Time

// SystemClock is the wall clock.
var SystemClock Clock = time.Now

// Student field names as they appear on the wire.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhoneNumber    = "phoneNumber"
	FieldGPA            = "gpa"
	FieldGraduationYear = "graduationYear"
	FieldCity           = "city"
	FieldState          = "state"
	FieldLatitude       = "latitude"
	FieldLongitude      = "longitude"
)

// Messages reported by the student schema.
const (
	MsgName           = "Name must be at least 2 characters long"
	MsgEmail          = "Please provide a valid email address"
	MsgPhoneNumber    = "Please provide a valid 10-digit phone number"
	MsgGPA            = "GPA must be between 0.0 and 4.0"
	MsgGraduationYear = "Please provide a valid graduation year"
	MsgLatitude       = "Latitude must be between -90 and 90"
	MsgLongitude      = "Longitude must be between -180 and 180"
)

// StudentSchema returns the server-side student schema: one rule per field, so at most
// one error per field. A GPA of 0 counts as provided. Latitude and longitude are only
// range-checked when provided and non-zero, so 0 is indistinguishable from "absent".
func StudentSchema(now Clock) Schema {
	nameMin := HasMinLength(2)
	return Schema{
		{Field: FieldName, Rules: []Rule{Custom(func(value any, _ Record) bool {
			s, ok := asString(value)
			return ok && IsRequired(s) && nameMin(strings.TrimSpace(s))
		}, MsgName)}},
		{Field: FieldEmail, Rules: []Rule{requiredString(IsValidEmail, MsgEmail)}},
		{Field: FieldPhoneNumber, Rules: []Rule{requiredString(IsValidPhoneNumber, MsgPhoneNumber)}},
		{Field: FieldGPA, Rules: []Rule{GPA(MsgGPA)}},
		{Field: FieldGraduationYear, Rules: []Rule{GraduationYear(MsgGraduationYear, now)}},
		{Field: FieldLatitude, Rules: []Rule{optionalCoordinate(IsValidLatitude, MsgLatitude)}},
		{Field: FieldLongitude, Rules: []Rule{optionalCoordinate(IsValidLongitude, MsgLongitude)}},
	}
}

// ValidateStudent validates a complete student payload against the wall clock.
// It returns an empty slice when the payload is valid.
func ValidateStudent(record Record) []FieldError {
	return ValidateForm(record, StudentSchema(SystemClock))
}

// ValidateStudentAt is ValidateStudent with a pinned clock.
func ValidateStudentAt(record Record, now Clock) []FieldError {
	return ValidateForm(record, StudentSchema(now))
}

// ValidateStudentPatch validates only the fields supplied in a partial update.
func ValidateStudentPatch(record Record, now Clock) []FieldError {
	return ValidatePresent(record, StudentSchema(now))
}

func requiredString(pred func(string) bool, message string) Rule {
	return Custom(func(value any, _ Record) bool {
		s, ok := asString(value)
		return ok && IsRequired(s) && pred(s)
	}, message)
}

func optionalCoordinate(pred func(float64) bool, message string) Rule {
	return Custom(func(value any, _ Record) bool {
		if value == nil {
			return true
		}
		if p, ok := value.(*float64); ok && p == nil {
			return true
		}
		f, ok := asFloat(value)
		if !ok {
			return false
		}
		if f == 0 {
			return true
		}
		return pred(f)
	}, message)
}
