package formatter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func isNaN(v any) bool {
	f, ok := v.(float64)
	return ok && math.IsNaN(f)
}

func TestNumberFormatter(t *testing.T) {
	assert.True(t, isNaN(Format("", TypeNumber, nil)))
	assert.Equal(t, 3.75, Format("3.75", TypeNumber, nil))
	assert.Equal(t, 12.5, Format(" 12.5abc", TypeNumber, nil))
	assert.Equal(t, float64(0), Format("abc", TypeNumber, nil))
	assert.Equal(t, "3.75", Display(3.75, TypeNumber))
	assert.Equal(t, "", Display(math.NaN(), TypeNumber))
	assert.Equal(t, "", Display(nil, TypeNumber))
}

func TestDecimalFormatterRoundsToTwoPlaces(t *testing.T) {
	assert.Equal(t, 3.46, Format("3.456", TypeDecimal, nil))
	assert.Equal(t, 2.0, Format("2", TypeDecimal, nil))
	assert.True(t, isNaN(Format("", TypeDecimal, nil)))
}

func TestIntegerFormatter(t *testing.T) {
	assert.Equal(t, float64(2025), Format("2025", TypeInteger, nil))
	assert.Equal(t, float64(2025), Format("2025.9", TypeInteger, nil))
	assert.Equal(t, float64(-4), Format("-4x", TypeInteger, nil))
	assert.Equal(t, float64(0), Format("year", TypeInteger, nil))
	assert.True(t, isNaN(Format("", TypeInteger, nil)))
	assert.Equal(t, "7", Display(7.9, TypeInteger))
}

func TestPhoneFormatter(t *testing.T) {
	assert.Equal(t, "5551234567", Format("(555) 123-4567", TypePhone, nil))
	assert.Equal(t, "", Display("", TypePhone))
	assert.Equal(t, "555", Display("555", TypePhone))
	assert.Equal(t, "(555) 12", Display("55512", TypePhone))
	assert.Equal(t, "(555) 123-4", Display("5551234", TypePhone))
	assert.Equal(t, "(555) 123-4567", Display("555123456789", TypePhone))
}

func TestEmailAndTextFormatters(t *testing.T) {
	assert.Equal(t, "ada@example.com", Format("  Ada@Example.COM ", TypeEmail, nil))
	assert.Equal(t, "  keep  ", Format("  keep  ", TypeText, nil))
	assert.Equal(t, "42", Display(42, TypeText))
	assert.Equal(t, "", Display(nil, TypeText))
}

func TestGetFallsBackToText(t *testing.T) {
	assert.Equal(t, "  raw ", Get(Type("unknown")).Format("  raw ", nil))
	assert.Equal(t, "raw", Format("raw", Type("unknown"), nil))
}

func TestFromInputType(t *testing.T) {
	assert.Equal(t, TypeEmail, FromInputType("email"))
	assert.Equal(t, TypePhone, FromInputType("tel"))
	assert.Equal(t, TypeNumber, FromInputType("number"))
	assert.Equal(t, TypeText, FromInputType("date"))
}

func TestFloatValue(t *testing.T) {
	f, ok := FloatValue(3.5)
	assert.True(t, ok)
	assert.Equal(t, 3.5, f)

	_, ok = FloatValue(math.NaN())
	assert.False(t, ok)
	_, ok = FloatValue("3.5")
	assert.False(t, ok)
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "(555) 123-4567", FormatPhoneNumber("555-123-4567"))
	assert.Equal(t, "(555) 123-4567", FormatPhoneNumber("(555) 123-4567"))
	assert.Equal(t, "12345", FormatPhoneNumber("12345"))
}

func TestDigitsAndNormalizeEmail(t *testing.T) {
	assert.Equal(t, "5551234567", Digits("(555) 123-4567"))
	assert.Equal(t, "", Digits("abc"))
	assert.Equal(t, "ada@example.com", NormalizeEmail(" ADA@example.com\n"))
}
