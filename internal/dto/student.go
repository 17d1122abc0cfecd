package dto

import (
	"github.com/noah-isme/student-records-api/internal/models"
	"github.com/noah-isme/student-records-api/pkg/validation"
)

// StudentInput is the request body for creating or updating a student.
// Pointer fields distinguish "absent" from zero values such as a GPA of 0.
type StudentInput struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	GraduationYear *int     `json:"graduationYear"`
	PhoneNumber    *string  `json:"phoneNumber"`
	GPA            *float64 `json:"gpa"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// Record exposes the supplied fields to the validation schema.
func (in StudentInput) Record() validation.Record {
	r := validation.Record{}
	if in.Name != nil {
		r[validation.FieldName] = *in.Name
	}
	if in.Email != nil {
		r[validation.FieldEmail] = *in.Email
	}
	if in.GraduationYear != nil {
		r[validation.FieldGraduationYear] = *in.GraduationYear
	}
	if in.PhoneNumber != nil {
		r[validation.FieldPhoneNumber] = *in.PhoneNumber
	}
	if in.GPA != nil {
		r[validation.FieldGPA] = *in.GPA
	}
	if in.City != nil {
		r[validation.FieldCity] = *in.City
	}
	if in.State != nil {
		r[validation.FieldState] = *in.State
	}
	if in.Latitude != nil {
		r[validation.FieldLatitude] = *in.Latitude
	}
	if in.Longitude != nil {
		r[validation.FieldLongitude] = *in.Longitude
	}
	return r
}

// Patch converts the input into a partial update.
func (in StudentInput) Patch() models.StudentPatch {
	return models.StudentPatch{
		Name:           in.Name,
		Email:          in.Email,
		GraduationYear: in.GraduationYear,
		PhoneNumber:    in.PhoneNumber,
		GPA:            in.GPA,
		City:           in.City,
		State:          in.State,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	}
}

// Student builds a new domain record from a validated input. Zero coordinates are
// stored as absent, matching how they are validated.
func (in StudentInput) Student() models.Student {
	var s models.Student
	in.Patch().Apply(&s)
	if s.Latitude != nil && *s.Latitude == 0 {
		s.Latitude = nil
	}
	if s.Longitude != nil && *s.Longitude == 0 {
		s.Longitude = nil
	}
	return s
}
