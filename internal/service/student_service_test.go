package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records-api/internal/dto"
	"github.com/noah-isme/student-records-api/internal/models"
	"github.com/noah-isme/student-records-api/internal/repository"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
	"github.com/noah-isme/student-records-api/pkg/validation"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type mockStudentRepo struct {
	students   map[int64]models.Student
	nextID     int64
	lastFilter models.StudentFilter
	lastPatch  models.StudentPatch
	storage    models.StorageStatistics
	createErr  error
	err        error
	listCalls  int
}

func newMockStudentRepo(students ...models.Student) *mockStudentRepo {
	m := &mockStudentRepo{students: map[int64]models.Student{}, nextID: 1}
	for _, s := range students {
		m.students[s.ID] = s
		if s.ID >= m.nextID {
			m.nextID = s.ID + 1
		}
	}
	return m
}

func (m *mockStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.listCalls++
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Student, 0, len(m.students))
	for id := int64(1); id < m.nextID; id++ {
		if s, ok := m.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(_ context.Context, id int64) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockStudentRepo) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for id, s := range m.students {
		if strings.EqualFold(s.Email, email) && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Create(_ context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	student.ID = m.nextID
	m.nextID++
	student.CreatedAt = fixedNow
	student.UpdatedAt = fixedNow
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(_ context.Context, id int64, patch models.StudentPatch) (*models.Student, error) {
	m.lastPatch = patch
	s, ok := m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	patch.Apply(&s)
	s.UpdatedAt = s.UpdatedAt.Add(time.Minute)
	m.students[id] = s
	return &s, nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.students[id]; !ok {
		return false, nil
	}
	delete(m.students, id)
	return true, nil
}

func (m *mockStudentRepo) Statistics(_ context.Context) (*models.StorageStatistics, error) {
	stats := m.storage
	stats.TotalStudents = len(m.students)
	return &stats, nil
}

func ptr[T any](v T) *T { return &v }

func validInput() dto.StudentInput {
	return dto.StudentInput{
		Name:           ptr("Ada Lovelace"),
		Email:          ptr("Ada@Example.com"),
		GraduationYear: ptr(2026),
		PhoneNumber:    ptr("555-123-4567"),
		GPA:            ptr(3.9),
		City:           ptr("Boston"),
		State:          ptr("MA"),
	}
}

func existingStudent() models.Student {
	return models.Student{
		ID:             1,
		Name:           "Grace Hopper",
		Email:          "grace@example.com",
		GraduationYear: 2025,
		PhoneNumber:    "(555) 000-1111",
		GPA:            3.2,
		City:           ptr("New York"),
		State:          ptr("NY"),
		CreatedAt:      fixedNow.AddDate(0, -2, 0),
		UpdatedAt:      fixedNow.AddDate(0, -2, 0),
	}
}

func newTestStudentService(repo *mockStudentRepo, cache *CacheService) *StudentService {
	return NewStudentService(repo, validation.MustNewValidator(fixedClock), cache, NewMetricsService(), StudentServiceConfig{Clock: fixedClock}, zap.NewNop())
}

func requireAppError(t *testing.T, err error, sentinel *appErrors.Error) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, sentinel), "expected %s, got %v", sentinel.Code, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	return appErr
}

func TestStudentServiceCreateNormalises(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newTestStudentService(repo, nil)

	student, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, "ada@example.com", student.Email)
	assert.Equal(t, "(555) 123-4567", student.PhoneNumber)
	assert.Equal(t, "ada@example.com", repo.students[1].Email)
	assert.Nil(t, student.Latitude)
}

func TestStudentServiceCreateStoresZeroCoordinatesAsAbsent(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newTestStudentService(repo, nil)

	in := validInput()
	in.Latitude = ptr(0.0)
	in.Longitude = ptr(-71.06)
	student, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Nil(t, student.Latitude)
	require.NotNil(t, student.Longitude)
	assert.Equal(t, -71.06, *student.Longitude)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newTestStudentService(repo, nil)

	in := validInput()
	in.GPA = ptr(5.0)
	in.Latitude = ptr(95.0)

	_, err := svc.Create(context.Background(), in)
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	assert.Equal(t, []validation.FieldError{
		{Field: "gpa", Message: validation.MsgGPA},
		{Field: "latitude", Message: validation.MsgLatitude},
	}, appErr.Fields)
	assert.Empty(t, repo.students)
}

func TestStudentServiceCreateRequiresFields(t *testing.T) {
	svc := newTestStudentService(newMockStudentRepo(), nil)

	_, err := svc.Create(context.Background(), dto.StudentInput{})
	appErr := requireAppError(t, err, appErrors.ErrValidation)

	fields := map[string]string{}
	for _, f := range appErr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, validation.MsgName, fields["name"])
	assert.Equal(t, validation.MsgEmail, fields["email"])
	assert.Equal(t, validation.MsgPhoneNumber, fields["phoneNumber"])
	assert.Equal(t, validation.MsgGPA, fields["gpa"])
	assert.Equal(t, validation.MsgGraduationYear, fields["graduationYear"])
	assert.NotContains(t, fields, "latitude")
}

func TestStudentServiceCreateAcceptsZeroGPA(t *testing.T) {
	svc := newTestStudentService(newMockStudentRepo(), nil)

	in := validInput()
	in.GPA = ptr(0.0)
	student, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Zero(t, student.GPA)
}

func TestStudentServiceCreateConflict(t *testing.T) {
	existing := existingStudent()
	existing.Email = "ada@example.com"
	repo := newMockStudentRepo(existing)
	svc := newTestStudentService(repo, nil)

	_, err := svc.Create(context.Background(), validInput())
	appErr := requireAppError(t, err, appErrors.ErrConflict)
	assert.Equal(t, "A student with this email already exists", appErr.Message)
	assert.Len(t, repo.students, 1)
}

func TestStudentServiceCreateConflictFromConstraint(t *testing.T) {
	repo := newMockStudentRepo()
	repo.createErr = errors.Join(errors.New("create student"), repository.ErrDuplicateEmail)
	svc := newTestStudentService(repo, nil)

	_, err := svc.Create(context.Background(), validInput())
	requireAppError(t, err, appErrors.ErrConflict)
}

func TestStudentServiceGet(t *testing.T) {
	svc := newTestStudentService(newMockStudentRepo(existingStudent()), nil)

	student, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", student.Name)

	_, err = svc.Get(context.Background(), 999)
	appErr := requireAppError(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Student not found", appErr.Message)
}

func TestStudentServiceGetInternalError(t *testing.T) {
	repo := newMockStudentRepo()
	repo.err = errors.New("connection reset")
	svc := newTestStudentService(repo, nil)

	_, err := svc.Get(context.Background(), 1)
	requireAppError(t, err, appErrors.ErrInternal)
}

func TestStudentServiceUpdatePartial(t *testing.T) {
	repo := newMockStudentRepo(existingStudent())
	svc := newTestStudentService(repo, nil)

	updated, err := svc.Update(context.Background(), 1, dto.StudentInput{GPA: ptr(3.7), PhoneNumber: ptr("5551234567")})
	require.NoError(t, err)

	assert.Equal(t, 3.7, updated.GPA)
	assert.Equal(t, "(555) 123-4567", updated.PhoneNumber)
	assert.Equal(t, "Grace Hopper", updated.Name)
	assert.Equal(t, "grace@example.com", updated.Email)
	assert.Nil(t, repo.lastPatch.Name)
	assert.True(t, updated.UpdatedAt.After(existingStudent().UpdatedAt))
}

func TestStudentServiceUpdateOwnEmailIsNotConflict(t *testing.T) {
	repo := newMockStudentRepo(existingStudent())
	svc := newTestStudentService(repo, nil)

	updated, err := svc.Update(context.Background(), 1, dto.StudentInput{Email: ptr("GRACE@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", updated.Email)
}

func TestStudentServiceUpdateConflict(t *testing.T) {
	other := existingStudent()
	other.ID = 2
	other.Email = "taken@example.com"
	repo := newMockStudentRepo(existingStudent(), other)
	svc := newTestStudentService(repo, nil)

	_, err := svc.Update(context.Background(), 1, dto.StudentInput{Email: ptr("Taken@Example.com")})
	requireAppError(t, err, appErrors.ErrConflict)
	assert.Equal(t, "grace@example.com", repo.students[1].Email)
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	svc := newTestStudentService(newMockStudentRepo(), nil)

	_, err := svc.Update(context.Background(), 42, dto.StudentInput{Name: ptr("Someone")})
	requireAppError(t, err, appErrors.ErrNotFound)
}

func TestStudentServiceUpdateValidatesSuppliedFields(t *testing.T) {
	repo := newMockStudentRepo(existingStudent())
	svc := newTestStudentService(repo, nil)

	_, err := svc.Update(context.Background(), 1, dto.StudentInput{Name: ptr(" A "), GraduationYear: ptr(1990)})
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	assert.Equal(t, []validation.FieldError{
		{Field: "name", Message: validation.MsgName},
		{Field: "graduationYear", Message: validation.MsgGraduationYear},
	}, appErr.Fields)
	assert.Equal(t, "Grace Hopper", repo.students[1].Name)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := newMockStudentRepo(existingStudent())
	svc := newTestStudentService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.students)

	err := svc.Delete(context.Background(), 1)
	requireAppError(t, err, appErrors.ErrNotFound)
}

func TestStudentServiceList(t *testing.T) {
	repo := newMockStudentRepo(existingStudent())
	svc := newTestStudentService(repo, nil)

	filter := models.StudentFilter{Search: "grace", MinGPA: ptr(3.0)}
	students, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, filter, repo.lastFilter)
}

func TestStudentServiceStatisticsCachedUntilWrite(t *testing.T) {
	repo := newMockStudentRepo(existingStudent())
	repo.storage = models.StorageStatistics{AverageGPA: 3.2, HighestGPA: 3.2, LowestGPA: 3.2}
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := newTestStudentService(repo, cache)
	ctx := context.Background()

	report, hit, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, report.Summary.TotalStudents)
	assert.Equal(t, 1, report.Summary.UpcomingGraduations)
	assert.Equal(t, 1, report.Storage.TotalStudents)

	report, hit, err = svc.Statistics(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, report.Summary.TotalStudents)
	assert.Equal(t, 1, repo.listCalls)

	_, err = svc.Create(ctx, validInput())
	require.NoError(t, err)

	report, hit, err = svc.Statistics(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, report.Summary.TotalStudents)
	assert.Equal(t, 1, report.Summary.RecentAdditions)
}

func TestStudentServiceExportCSV(t *testing.T) {
	s := existingStudent()
	s.Latitude = ptr(40.7128)
	s.Longitude = ptr(0.0)
	svc := newTestStudentService(newMockStudentRepo(s), nil)

	file, err := svc.Export(context.Background(), models.ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "students.csv", file.Filename)
	assert.Equal(t,
		"ID,Name,Email,Phone,GPA,Graduation Year,City,State,Latitude,Longitude\n"+
			`1,"Grace Hopper","grace@example.com","(555) 000-1111",3.2,2025,"New York","NY",40.7128,`+"\n",
		string(file.Body))
}

func TestStudentServiceExportJSON(t *testing.T) {
	svc := newTestStudentService(newMockStudentRepo(existingStudent()), nil)

	file, err := svc.Export(context.Background(), models.ParseExportFormat("xml"))
	require.NoError(t, err)
	assert.Equal(t, models.ExportFormatJSON, file.Format)
	assert.Equal(t, "students.json", file.Filename)

	var decoded []models.Student
	require.NoError(t, json.Unmarshal(file.Body, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "grace@example.com", decoded[0].Email)
	assert.Contains(t, string(file.Body), "\n  {")
}

func TestStudentServiceExportPDF(t *testing.T) {
	svc := newTestStudentService(newMockStudentRepo(existingStudent()), nil)

	file, err := svc.Export(context.Background(), models.ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Body), "%PDF"))
}
