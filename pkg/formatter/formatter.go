// Package formatter converts between raw input text and typed field values.
package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Type names a registered formatter.
type Type string

const (
	TypeText    Type = "text"
	TypeNumber  Type = "number"
	TypeDecimal Type = "decimal"
	TypeInteger Type = "integer"
	TypePhone   Type = "phone"
	TypeEmail   Type = "email"
)

// Formatter turns raw text into a typed value and back.
// Numeric formatters use NaN to represent a cleared input.
type Formatter interface {
	Format(raw string, current any) any
	Display(value any) string
}

// Func adapts a pair of functions to Formatter.
type Func struct {
	FormatFn  func(raw string, current any) any
	DisplayFn func(value any) string
}

func (f Func) Format(raw string, current any) any { return f.FormatFn(raw, current) }
func (f Func) Display(value any) string          { return f.DisplayFn(value) }

var (
	Text Formatter = Func{
		FormatFn:  func(raw string, _ any) any { return raw },
		DisplayFn: displayString,
	}

	Number Formatter = Func{
		FormatFn: func(raw string, _ any) any {
			return parseNumber(raw, func(f float64) float64 { return f })
		},
		DisplayFn: displayNumber,
	}

	Decimal Formatter = Func{
		FormatFn: func(raw string, _ any) any {
			return parseNumber(raw, roundTo2)
		},
		DisplayFn: displayNumber,
	}

	Integer Formatter = Func{
		FormatFn: func(raw string, _ any) any {
			if raw == "" {
				return math.NaN()
			}
			n, ok := leadingInt(raw)
			if !ok {
				return float64(0)
			}
			return float64(n)
		},
		DisplayFn: func(value any) string {
			f, ok := toFloat(value)
			if !ok || math.IsNaN(f) {
				return ""
			}
			return strconv.FormatFloat(math.Floor(f), 'f', -1, 64)
		},
	}

	Phone Formatter = Func{
		FormatFn: func(raw string, _ any) any {
			return Digits(raw)
		},
		DisplayFn: func(value any) string {
			return DisplayPhone(displayString(value))
		},
	}

	Email Formatter = Func{
		FormatFn: func(raw string, _ any) any {
			return NormalizeEmail(raw)
		},
		DisplayFn: displayString,
	}
)

var registry = map[Type]Formatter{
	TypeText:    Text,
	TypeNumber:  Number,
	TypeDecimal: Decimal,
	TypeInteger: Integer,
	TypePhone:   Phone,
	TypeEmail:   Email,
}

// Get returns the formatter registered for t, falling back to Text.
func Get(t Type) Formatter {
	if f, ok := registry[t]; ok {
		return f
	}
	return Text
}

// Format runs the formatter registered for t.
func Format(raw string, t Type, current any) any {
	return Get(t).Format(raw, current)
}

// Display runs the display side of the formatter registered for t.
func Display(value any, t Type) string {
	return Get(t).Display(value)
}

// FromInputType maps an HTML input type to its default formatter.
func FromInputType(inputType string) Type {
	switch inputType {
	case "email":
		return TypeEmail
	case "tel":
		return TypePhone
	case "number":
		return TypeNumber
	default:
		return TypeText
	}
}

// FloatValue returns the float held by a numeric formatter result. ok is false for NaN.
func FloatValue(v any) (float64, bool) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Digits strips everything except 0-9.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayPhone formats digits progressively while they are being typed:
// up to 3 digits raw, up to 6 as "(XXX) XXX", beyond that "(XXX) XXX-XXXX".
func DisplayPhone(value string) string {
	if value == "" {
		return ""
	}
	d := Digits(value)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return fmt.Sprintf("(%s) %s", d[:3], d[3:])
	default:
		end := len(d)
		if end > 10 {
			end = 10
		}
		return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:end])
	}
}

// FormatPhoneNumber returns the canonical "(XXX) XXX-XXXX" form when phone holds exactly
// ten digits and phone unchanged otherwise.
func FormatPhoneNumber(phone string) string {
	d := Digits(phone)
	if len(d) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func parseNumber(raw string, transform func(float64) float64) any {
	if raw == "" {
		return math.NaN()
	}
	f, ok := leadingFloat(raw)
	if !ok {
		return float64(0)
	}
	return transform(f)
}

func roundTo2(f float64) float64 {
	return math.Round(f*100) / 100
}

// leadingFloat parses the longest numeric prefix of s, after leading whitespace.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for end := len(s); end > 0; end-- {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			if math.IsNaN(f) {
				return 0, false
			}
			return f, true
		}
	}
	return 0, false
}

// leadingInt parses the longest integer prefix of s, after leading whitespace.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func displayString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func displayNumber(value any) string {
	f, ok := toFloat(value)
	if !ok || math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
