package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/noah-isme/student-records-api/internal/models"
)

// ErrDuplicateEmail is returned when a write violates the unique email constraint.
var ErrDuplicateEmail = errors.New("duplicate student email")

const studentColumns = `id, name, email, graduation_year, phone_number, gpa, city, state, latitude, longitude, created_at, updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters ordered by name.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, "(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(city) LIKE ?)")
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.GraduationYear != nil && *filter.GraduationYear != 0 {
		conditions = append(conditions, "graduation_year = ?")
		args = append(args, *filter.GraduationYear)
	}
	if filter.MinGPA != nil {
		conditions = append(conditions, "gpa >= ?")
		args = append(args, *filter.MinGPA)
	}
	if filter.MaxGPA != nil {
		conditions = append(conditions, "gpa <= ?")
		args = append(args, *filter.MaxGPA)
	}
	if filter.City != "" {
		conditions = append(conditions, "city = ?")
		args = append(args, filter.City)
	}
	if filter.State != "" {
		conditions = append(conditions, "state = ?")
		args = append(args, filter.State)
	}

	query := fmt.Sprintf("SELECT %s FROM students WHERE %s ORDER BY name ASC", studentColumns, strings.Join(conditions, " AND "))

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID. sql.ErrNoRows is returned when it does not exist.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM students WHERE id = ?", studentColumns))
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEmail checks if a student with the given email exists, optionally excluding an ID.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM students WHERE LOWER(email) = LOWER(?)"
	args := []interface{}{email}
	if excludeID > 0 {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(query+" LIMIT 1"), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// Create inserts a new student record and fills in its ID and timestamps.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (name, email, graduation_year, phone_number, gpa, city, state, latitude, longitude, created_at, updated_at)
        VALUES (:name, :email, :graduation_year, :phone_number, :gpa, :city, :state, :latitude, :longitude, :created_at, :updated_at)
        RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, student)
	if err != nil {
		return translateWriteError("create student", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return translateWriteError("create student", err)
		}
		return fmt.Errorf("create student: no id returned")
	}
	if err := rows.Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update writes the supplied columns of patch and returns the stored record.
// sql.ErrNoRows is returned when the student does not exist.
func (r *StudentRepository) Update(ctx context.Context, id int64, patch models.StudentPatch) (*models.Student, error) {
	sets := []string{}
	args := []interface{}{}
	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.GraduationYear != nil {
		set("graduation_year", *patch.GraduationYear)
	}
	if patch.PhoneNumber != nil {
		set("phone_number", *patch.PhoneNumber)
	}
	if patch.GPA != nil {
		set("gpa", *patch.GPA)
	}
	if patch.City != nil {
		set("city", nullString(*patch.City))
	}
	if patch.State != nil {
		set("state", nullString(*patch.State))
	}
	if patch.Latitude != nil {
		set("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		set("longitude", *patch.Longitude)
	}
	set("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE students SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, translateWriteError("update student", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, id)
}

// Delete removes a student and reports whether a row was deleted.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM students WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	return affected > 0, nil
}

// Statistics computes aggregates over every stored row.
func (r *StudentRepository) Statistics(ctx context.Context) (*models.StorageStatistics, error) {
	const aggregates = `SELECT COUNT(*) AS total_students,
        COALESCE(AVG(gpa), 0) AS average_gpa,
        COALESCE(MAX(gpa), 0) AS highest_gpa,
        COALESCE(MIN(gpa), 0) AS lowest_gpa
        FROM students`
	var stats models.StorageStatistics
	if err := r.db.GetContext(ctx, &stats, aggregates); err != nil {
		return nil, fmt.Errorf("student aggregates: %w", err)
	}

	stats.StudentsByYear = []models.YearCount{}
	const byYear = `SELECT graduation_year, COUNT(*) AS count FROM students GROUP BY graduation_year ORDER BY graduation_year DESC`
	if err := r.db.SelectContext(ctx, &stats.StudentsByYear, byYear); err != nil {
		return nil, fmt.Errorf("students by year: %w", err)
	}

	stats.StudentsByState = []models.StateCount{}
	const byState = `SELECT state, COUNT(*) AS count FROM students WHERE state IS NOT NULL GROUP BY state ORDER BY count DESC`
	if err := r.db.SelectContext(ctx, &stats.StudentsByState, byState); err != nil {
		return nil, fmt.Errorf("students by state: %w", err)
	}
	return &stats, nil
}

// Ping verifies the database connection.
func (r *StudentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func translateWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
