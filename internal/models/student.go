package models

import "time"

// Student represents a student record.
type Student struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name" validate:"required,min_trimmed=2"`
	Email          string    `db:"email" json:"email" validate:"required,student_email"`
	GraduationYear int       `db:"graduation_year" json:"graduationYear" validate:"graduation_year"`
	PhoneNumber    string    `db:"phone_number" json:"phoneNumber" validate:"required,student_phone"`
	GPA            float64   `db:"gpa" json:"gpa" validate:"student_gpa"`
	City           *string   `db:"city" json:"city,omitempty"`
	State          *string   `db:"state" json:"state,omitempty"`
	Latitude       *float64  `db:"latitude" json:"latitude,omitempty" validate:"omitempty,latitude_range"`
	Longitude      *float64  `db:"longitude" json:"longitude,omitempty" validate:"omitempty,longitude_range"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentFilter encapsulates the optional list filters. Nil pointers and empty strings mean "not set".
type StudentFilter struct {
	Search         string
	GraduationYear *int
	MinGPA         *float64
	MaxGPA         *float64
	City           string
	State          string
}

// StudentPatch carries the columns changed by an update. Nil fields are left untouched.
type StudentPatch struct {
	Name           *string
	Email          *string
	GraduationYear *int
	PhoneNumber    *string
	GPA            *float64
	City           *string
	State          *string
	Latitude       *float64
	Longitude      *float64
}

// Empty reports whether the patch changes nothing.
func (p StudentPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.GraduationYear == nil && p.PhoneNumber == nil &&
		p.GPA == nil && p.City == nil && p.State == nil && p.Latitude == nil && p.Longitude == nil
}

// Apply copies the supplied fields onto s.
func (p StudentPatch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.GraduationYear != nil {
		s.GraduationYear = *p.GraduationYear
	}
	if p.PhoneNumber != nil {
		s.PhoneNumber = *p.PhoneNumber
	}
	if p.GPA != nil {
		s.GPA = *p.GPA
	}
	if p.City != nil {
		s.City = nullIfEmpty(*p.City)
	}
	if p.State != nil {
		s.State = nullIfEmpty(*p.State)
	}
	if p.Latitude != nil {
		s.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		s.Longitude = p.Longitude
	}
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
