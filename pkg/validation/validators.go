package validation

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/noah-isme/student-records-api/pkg/formatter"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharsPattern = regexp.MustCompile(`^[\d\s\-()]+$`)
)

// graduationYearWindow is the number of years accepted on either side of the current year.
const graduationYearWindow = 10

// IsValidEmail reports whether email has a local@domain.tld shape without whitespace.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhoneNumber accepts 1234567890, 123-456-7890, (123) 456-7890 and similar.
func IsValidPhoneNumber(phone string) bool {
	return phoneCharsPattern.MatchString(phone) && len(formatter.Digits(phone)) == 10
}

// IsValidGPA reports whether gpa lies on the 0.0-4.0 scale.
func IsValidGPA(gpa float64) bool {
	return gpa >= 0 && gpa <= 4.0
}

// IsValidGraduationYear checks year against the wall-clock year at call time.
func IsValidGraduationYear(year int) bool {
	return IsValidGraduationYearAt(year, time.Now())
}

// IsValidGraduationYearAt checks year against the year of now.
func IsValidGraduationYearAt(year int, now time.Time) bool {
	current := now.Year()
	return year >= current-graduationYearWindow && year <= current+graduationYearWindow
}

// IsValidLatitude reports whether lat is within [-90, 90].
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lng is within [-180, 180].
func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

// IsRequired reports whether value carries something. Zero numbers count as present; NaN does not.
func IsRequired(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case *string:
		return v != nil && strings.TrimSpace(*v) != ""
	case float64:
		return !math.IsNaN(v)
	case *float64:
		return v != nil && !math.IsNaN(*v)
	case *int:
		return v != nil
	default:
		return true
	}
}

// HasMinLength returns a predicate checking the length of a string.
func HasMinLength(min int) func(string) bool {
	return func(value string) bool {
		return len([]rune(value)) >= min
	}
}

// HasMaxLength returns a predicate checking the length of a string.
func HasMaxLength(max int) func(string) bool {
	return func(value string) bool {
		return len([]rune(value)) <= max
	}
}

// IsNumberInRange returns an inclusive range predicate.
func IsNumberInRange(min, max float64) func(float64) bool {
	return func(value float64) bool {
		return value >= min && value <= max
	}
}

// MatchesPattern returns a predicate matching value against re.
func MatchesPattern(re *regexp.Regexp) func(string) bool {
	return func(value string) bool {
		return re.MatchString(value)
	}
}
