package models

// YearCount is the number of students graduating in Year.
type YearCount struct {
	Year  int `db:"graduation_year" json:"year"`
	Count int `db:"count" json:"count"`
}

// StateCount is the number of students living in State.
type StateCount struct {
	State string `db:"state" json:"state"`
	Count int    `db:"count" json:"count"`
}

// CityCount is the number of students living in City.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// GPADistribution buckets students by GPA band.
type GPADistribution struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	Satisfactory     int `json:"satisfactory"`
	NeedsImprovement int `json:"needsImprovement"`
}

// StudentStatistics summarises an in-memory student collection.
// The GPA aggregates ignore students with a GPA of exactly 0.
type StudentStatistics struct {
	TotalStudents              int             `json:"totalStudents"`
	AverageGPA                 float64         `json:"averageGPA"`
	HighestGPA                 float64         `json:"highestGPA"`
	LowestGPA                  float64         `json:"lowestGPA"`
	GraduationYearDistribution []YearCount     `json:"graduationYearDistribution"`
	TopStates                  []StateCount    `json:"topStates"`
	TopCities                  []CityCount     `json:"topCities"`
	RecentAdditions            int             `json:"recentAdditions"`
	GPADistribution            GPADistribution `json:"gpaDistribution"`
	UpcomingGraduations        int             `json:"upcomingGraduations"`
}

// StorageStatistics holds aggregates computed by the database over every row, GPA 0 included.
type StorageStatistics struct {
	TotalStudents   int          `db:"total_students" json:"totalStudents"`
	AverageGPA      float64      `db:"average_gpa" json:"averageGpa"`
	HighestGPA      float64      `db:"highest_gpa" json:"highestGpa"`
	LowestGPA       float64      `db:"lowest_gpa" json:"lowestGpa"`
	StudentsByYear  []YearCount  `db:"-" json:"studentsByYear"`
	StudentsByState []StateCount `db:"-" json:"studentsByState"`
}

// StatisticsReport is returned by the statistics endpoint.
type StatisticsReport struct {
	Summary StudentStatistics `json:"summary"`
	Storage StorageStatistics `json:"storage"`
}
