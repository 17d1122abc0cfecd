package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pinnedClock() time.Time {
	return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func validRecord() Record {
	return Record{
		FieldName:           "Ada Lovelace",
		FieldEmail:          "ada@example.com",
		FieldPhoneNumber:    "(555) 123-4567",
		FieldGPA:            3.8,
		FieldGraduationYear: 2026,
	}
}

func TestValidateStudentAtAcceptsValidRecord(t *testing.T) {
	assert.Empty(t, ValidateStudentAt(validRecord(), pinnedClock))
}

func TestValidateStudentAtReportsEachFieldOnce(t *testing.T) {
	record := Record{
		FieldName:           " A ",
		FieldEmail:          "not-an-email",
		FieldPhoneNumber:    "12345",
		FieldGPA:            5.0,
		FieldGraduationYear: 1990,
		FieldLatitude:       91.0,
		FieldLongitude:      -181.0,
	}

	errs := ValidateStudentAt(record, pinnedClock)

	assert.Equal(t, []FieldError{
		{Field: FieldName, Message: MsgName},
		{Field: FieldEmail, Message: MsgEmail},
		{Field: FieldPhoneNumber, Message: MsgPhoneNumber},
		{Field: FieldGPA, Message: MsgGPA},
		{Field: FieldGraduationYear, Message: MsgGraduationYear},
		{Field: FieldLatitude, Message: MsgLatitude},
		{Field: FieldLongitude, Message: MsgLongitude},
	}, errs)
}

func TestValidateStudentAtMissingFields(t *testing.T) {
	errs := ValidateStudentAt(Record{}, pinnedClock)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{FieldName, FieldEmail, FieldPhoneNumber, FieldGPA, FieldGraduationYear}, fields)
}

func TestValidateStudentAtZeroGPAAndCoordinates(t *testing.T) {
	record := validRecord()
	record[FieldGPA] = 0.0
	record[FieldLatitude] = 0.0
	record[FieldLongitude] = 0.0

	assert.Empty(t, ValidateStudentAt(record, pinnedClock))
}

func TestValidateStudentAtUsesClockYear(t *testing.T) {
	record := validRecord()
	record[FieldGraduationYear] = 2035
	assert.Empty(t, ValidateStudentAt(record, pinnedClock))

	later := func() time.Time { return time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC) }
	record[FieldGraduationYear] = 2019
	assert.Equal(t, []FieldError{{Field: FieldGraduationYear, Message: MsgGraduationYear}}, ValidateStudentAt(record, later))
}

func TestValidateStudentPatchChecksSuppliedFieldsOnly(t *testing.T) {
	assert.Empty(t, ValidateStudentPatch(Record{FieldCity: "Boston"}, pinnedClock))
	assert.Equal(t,
		[]FieldError{{Field: FieldEmail, Message: MsgEmail}},
		ValidateStudentPatch(Record{FieldEmail: "nope", FieldCity: "Boston"}, pinnedClock))
}
