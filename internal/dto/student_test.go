package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-records-api/pkg/validation"
)

func TestStudentInputRecordOnlyHoldsSuppliedFields(t *testing.T) {
	var in StudentInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ada","gpa":0,"city":""}`), &in))

	record := in.Record()

	assert.Equal(t, validation.Record{
		validation.FieldName: "Ada",
		validation.FieldGPA:  0.0,
		validation.FieldCity: "",
	}, record)
}

func TestStudentInputPatch(t *testing.T) {
	var in StudentInput
	require.NoError(t, json.Unmarshal([]byte(`{"email":"ada@example.com","latitude":42.1}`), &in))

	patch := in.Patch()

	require.NotNil(t, patch.Email)
	assert.Equal(t, "ada@example.com", *patch.Email)
	require.NotNil(t, patch.Latitude)
	assert.Nil(t, patch.Name)
	assert.False(t, patch.Empty())
	assert.True(t, StudentInput{}.Patch().Empty())
}

func TestStudentInputStudentDropsZeroCoordinates(t *testing.T) {
	var in StudentInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ada","graduationYear":2026,"gpa":3.5,"city":"","state":"MA","latitude":0,"longitude":-71.06}`), &in))

	s := in.Student()

	assert.Equal(t, "Ada", s.Name)
	assert.Equal(t, 2026, s.GraduationYear)
	assert.Equal(t, 3.5, s.GPA)
	assert.Nil(t, s.City)
	require.NotNil(t, s.State)
	assert.Equal(t, "MA", *s.State)
	assert.Nil(t, s.Latitude)
	require.NotNil(t, s.Longitude)
	assert.Equal(t, -71.06, *s.Longitude)
}
