package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Custom struct tags understood by Validator.
const (
	TagEmail          = "student_email"
	TagPhone          = "student_phone"
	TagGPA            = "student_gpa"
	TagGraduationYear = "graduation_year"
	TagMinTrimmed     = "min_trimmed"
	TagLatitude       = "latitude_range"
	TagLongitude      = "longitude_range"
)

// Validator wraps a go-playground validator configured with the student tags,
// JSON field names and English messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator builds a Validator whose graduation_year tag is evaluated against now.
func NewValidator(now Clock) (*Validator, error) {
	if now == nil {
		now = SystemClock
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("register translations: %w", err)
	}

	custom := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{TagEmail, func(fl validator.FieldLevel) bool { return IsValidEmail(fl.Field().String()) }, MsgEmail},
		{TagPhone, func(fl validator.FieldLevel) bool { return IsValidPhoneNumber(fl.Field().String()) }, MsgPhoneNumber},
		{TagGPA, func(fl validator.FieldLevel) bool { return IsValidGPA(fl.Field().Float()) }, MsgGPA},
		{TagGraduationYear, func(fl validator.FieldLevel) bool {
			return IsValidGraduationYearAt(int(fl.Field().Int()), now())
		}, MsgGraduationYear},
		{TagMinTrimmed, minTrimmed, MsgName},
		{TagLatitude, func(fl validator.FieldLevel) bool { return IsValidLatitude(fl.Field().Float()) }, MsgLatitude},
		{TagLongitude, func(fl validator.FieldLevel) bool { return IsValidLongitude(fl.Field().Float()) }, MsgLongitude},
	}
	for _, c := range custom {
		if err := v.RegisterValidation(c.tag, c.fn); err != nil {
			return nil, fmt.Errorf("register %s: %w", c.tag, err)
		}
		if err := registerMessage(v, trans, c.tag, c.message); err != nil {
			return nil, fmt.Errorf("register %s message: %w", c.tag, err)
		}
	}

	return &Validator{validate: v, trans: trans}, nil
}

// MustNewValidator panics when the validator cannot be configured.
func MustNewValidator(now Clock) *Validator {
	v, err := NewValidator(now)
	if err != nil {
		panic(err)
	}
	return v
}

// Engine exposes the underlying go-playground validator.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns the translated field errors. A non-validation
// failure (for example a nil or non-struct value) is returned as err.
func (v *Validator) Struct(s any) ([]FieldError, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.translate(ve), nil
	}
	return nil, err
}

// StructPartial validates only the named struct fields of s.
func (v *Validator) StructPartial(s any, fields ...string) ([]FieldError, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	err := v.validate.StructPartial(s, fields...)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.translate(ve), nil
	}
	return nil, err
}

// TranslateErrors converts go-playground validation errors into field errors.
func (v *Validator) TranslateErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.translate(ve)
	}
	return []FieldError{{Field: "detail", Message: err.Error()}}
}

func (v *Validator) translate(ve validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: fe.Translate(v.trans)})
	}
	return out
}

func minTrimmed(fl validator.FieldLevel) bool {
	min := 0
	if _, err := fmt.Sscanf(fl.Param(), "%d", &min); err != nil {
		return false
	}
	return HasMinLength(min)(strings.TrimSpace(fl.Field().String()))
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, message string) error {
	return v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, message, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}
