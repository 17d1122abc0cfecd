package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records-api/internal/dto"
	"github.com/noah-isme/student-records-api/internal/models"
	"github.com/noah-isme/student-records-api/internal/repository"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
	"github.com/noah-isme/student-records-api/pkg/export"
	"github.com/noah-isme/student-records-api/pkg/formatter"
	"github.com/noah-isme/student-records-api/pkg/validation"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id int64, patch models.StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Statistics(ctx context.Context) (*models.StorageStatistics, error)
}

// Student write operations as reported to metrics.
const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

var exportHeaders = []string{"ID", "Name", "Email", "Phone", "GPA", "Graduation Year", "City", "State", "Latitude", "Longitude"}

var exportQuoted = map[string]bool{"Name": true, "Email": true, "Phone": true, "City": true, "State": true}

// StudentServiceConfig tunes optional behaviour of the student service.
type StudentServiceConfig struct {
	StatisticsTTL time.Duration
	Clock         validation.Clock
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validation.Validator
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       StudentServiceConfig
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	json      *export.JSONExporter
}

// NewStudentService constructs the student service. cache and metrics may be nil.
func NewStudentService(repo studentRepository, validate *validation.Validator, cache *CacheService, metrics *MetricsService, cfg StudentServiceConfig, logger *zap.Logger) *StudentService {
	if cfg.Clock == nil {
		cfg.Clock = validation.SystemClock
	}
	if validate == nil {
		validate = validation.MustNewValidator(cfg.Clock)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:      repo,
		validator: validate,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		json:      export.NewJSONExporter(),
	}
}

// List returns students matching filter ordered by name.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	defer s.observe("students.list")()
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	defer s.observe("students.get")()
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, internalError(err, "failed to load student")
	}
	return student, nil
}

// Create validates and stores a new student.
func (s *StudentService) Create(ctx context.Context, in dto.StudentInput) (*models.Student, error) {
	if fields := validation.ValidateStudentAt(in.Record(), s.cfg.Clock); len(fields) > 0 {
		return nil, s.rejected(fields)
	}

	student := in.Student()
	student.Email = formatter.NormalizeEmail(student.Email)
	student.PhoneNumber = formatter.FormatPhoneNumber(student.PhoneNumber)

	fields, err := s.validator.Struct(student)
	if err != nil {
		return nil, internalError(err, "failed to validate student")
	}
	if len(fields) > 0 {
		return nil, s.rejected(fields)
	}

	exists, err := s.emailTaken(ctx, student.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErrors.ErrConflict
	}

	done := s.observe("students.create")
	err = s.repo.Create(ctx, &student)
	done()
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, appErrors.ErrConflict
		}
		return nil, internalError(err, "failed to create student")
	}

	s.afterWrite(ctx, opCreate, student.ID)
	return &student, nil
}

// Update applies the supplied fields of in to the student identified by id.
func (s *StudentService) Update(ctx context.Context, id int64, in dto.StudentInput) (*models.Student, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields := validation.ValidateStudentPatch(in.Record(), s.cfg.Clock); len(fields) > 0 {
		return nil, s.rejected(fields)
	}

	patch := in.Patch()
	if patch.Email != nil {
		email := formatter.NormalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if patch.PhoneNumber != nil {
		phone := formatter.FormatPhoneNumber(*patch.PhoneNumber)
		patch.PhoneNumber = &phone
	}

	merged := *existing
	patch.Apply(&merged)
	fields, err := s.validator.StructPartial(merged, suppliedStructFields(patch)...)
	if err != nil {
		return nil, internalError(err, "failed to validate student")
	}
	if len(fields) > 0 {
		return nil, s.rejected(fields)
	}

	if patch.Email != nil && *patch.Email != existing.Email {
		exists, err := s.emailTaken(ctx, *patch.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, appErrors.ErrConflict
		}
	}

	done := s.observe("students.update")
	updated, err := s.repo.Update(ctx, id, patch)
	done()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.ErrNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, appErrors.ErrConflict
		}
		return nil, internalError(err, "failed to update student")
	}

	s.afterWrite(ctx, opUpdate, id)
	return updated, nil
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	done := s.observe("students.delete")
	deleted, err := s.repo.Delete(ctx, id)
	done()
	if err != nil {
		return internalError(err, "failed to delete student")
	}
	if !deleted {
		return appErrors.ErrNotFound
	}
	s.afterWrite(ctx, opDelete, id)
	return nil
}

// Statistics summarises every stored student. The boolean reports whether the
// report was served from cache.
func (s *StudentService) Statistics(ctx context.Context) (*models.StatisticsReport, bool, error) {
	var cached models.StatisticsReport
	if s.cache.Get(ctx, CacheKeyStudentStatistics, &cached) {
		return &cached, true, nil
	}

	students, err := s.List(ctx, models.StudentFilter{})
	if err != nil {
		return nil, false, err
	}

	done := s.observe("students.statistics")
	storage, err := s.repo.Statistics(ctx)
	done()
	if err != nil {
		return nil, false, internalError(err, "failed to compute statistics")
	}

	report := &models.StatisticsReport{
		Summary: ComputeStudentStatistics(students, s.cfg.Clock()),
		Storage: *storage,
	}
	s.cache.Set(ctx, CacheKeyStudentStatistics, report, s.cfg.StatisticsTTL)
	return report, false, nil
}

// Export renders every student in the requested format.
func (s *StudentService) Export(ctx context.Context, format models.ExportFormat) (*models.ExportFile, error) {
	students, err := s.List(ctx, models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case models.ExportFormatCSV:
		body, err = s.csv.Render(studentDataset(students))
	case models.ExportFormatPDF:
		body, err = s.pdf.Render(studentDataset(students), "Students")
	default:
		format = models.ExportFormatJSON
		body, err = s.json.Render(students)
	}
	if err != nil {
		return nil, internalError(err, "failed to export students")
	}

	s.metrics.RecordExport(string(format))
	return &models.ExportFile{
		Format:      format,
		ContentType: format.ContentType(),
		Filename:    format.Filename(),
		Body:        body,
	}, nil
}

func (s *StudentService) emailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	defer s.observe("students.exists_by_email")()
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return false, internalError(err, "failed to check email")
	}
	return exists, nil
}

func (s *StudentService) rejected(fields []validation.FieldError) error {
	for _, f := range fields {
		s.metrics.RecordValidationFailure(f.Field)
	}
	return appErrors.Validation(fields)
}

func (s *StudentService) afterWrite(ctx context.Context, operation string, id int64) {
	s.cache.Invalidate(ctx, CachePatternStudents)
	s.metrics.RecordStudentWrite(operation)
	s.logger.Info("student write", zap.String("operation", operation), zap.Int64("student_id", id))
}

func (s *StudentService) observe(label string) func() {
	start := time.Now()
	return func() {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// suppliedStructFields names the models.Student fields touched by patch.
func suppliedStructFields(p models.StudentPatch) []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "Name")
	}
	if p.Email != nil {
		fields = append(fields, "Email")
	}
	if p.GraduationYear != nil {
		fields = append(fields, "GraduationYear")
	}
	if p.PhoneNumber != nil {
		fields = append(fields, "PhoneNumber")
	}
	if p.GPA != nil {
		fields = append(fields, "GPA")
	}
	if p.Latitude != nil && *p.Latitude != 0 {
		fields = append(fields, "Latitude")
	}
	if p.Longitude != nil && *p.Longitude != 0 {
		fields = append(fields, "Longitude")
	}
	return fields
}

func studentDataset(students []models.Student) export.Dataset {
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, map[string]string{
			"ID":              strconv.FormatInt(st.ID, 10),
			"Name":            st.Name,
			"Email":           st.Email,
			"Phone":           st.PhoneNumber,
			"GPA":             strconv.FormatFloat(st.GPA, 'f', -1, 64),
			"Graduation Year": strconv.Itoa(st.GraduationYear),
			"City":            stringValue(st.City),
			"State":           stringValue(st.State),
			"Latitude":        coordinate(st.Latitude),
			"Longitude":       coordinate(st.Longitude),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows, Quoted: exportQuoted}
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// coordinate renders a coordinate for export; absent and zero values are blank.
func coordinate(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
