package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records-api/internal/dto"
	"github.com/noah-isme/student-records-api/internal/middleware"
	"github.com/noah-isme/student-records-api/internal/models"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
	"github.com/noah-isme/student-records-api/pkg/formatter"
	"github.com/noah-isme/student-records-api/pkg/response"
)

const msgStudentDeleted = "Student deleted successfully"

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, in dto.StudentInput) (*models.Student, error)
	Update(ctx context.Context, id int64, in dto.StudentInput) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*models.StatisticsReport, bool, error)
	Export(ctx context.Context, format models.ExportFormat) (*models.ExportFile, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Case-insensitive match on name, email or city"
// @Param graduationYear query int false "Exact graduation year"
// @Param minGpa query number false "Minimum GPA (inclusive)"
// @Param maxGpa query number false "Maximum GPA (inclusive)"
// @Param city query string false "Exact city"
// @Param state query string false "Exact state"
// @Success 200 {object} response.Envelope{data=[]models.Student}
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	var filter models.StudentFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if year, ok := queryNumber(c, "graduationYear", formatter.TypeInteger); ok && year != 0 {
		v := int(year)
		filter.GraduationYear = &v
	}
	if minGPA, ok := queryNumber(c, "minGpa", formatter.TypeNumber); ok {
		filter.MinGPA = &minGPA
	}
	if maxGPA, ok := queryNumber(c, "maxGpa", formatter.TypeNumber); ok {
		filter.MaxGPA = &maxGPA
	}
	filter.City = c.Query("city")
	filter.State = c.Query("state")

	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Statistics godoc
// @Summary Student statistics
// @Description Summary aggregates (GPA figures ignore a GPA of 0) alongside database-level aggregates.
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope{data=models.StatisticsReport}
// @Router /students/statistics [get]
func (h *StudentHandler) Statistics(c *gin.Context) {
	start := time.Now()
	report, cacheHit, err := h.students.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetProcessingTime(c, start)
	response.JSON(c, http.StatusOK, report, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export students
// @Description Downloads every student. Unknown formats fall back to JSON.
// @Tags Students
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv, json or pdf" Enums(csv, json, pdf)
// @Success 200 {file} file
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	file, err := h.students.Export(c.Request.Context(), models.ParseExportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope{data=models.Student}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := studentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentInput true "Student payload"
// @Success 201 {object} response.Envelope{data=models.Student}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var in dto.StudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, appErrors.ErrBadRequest.Message))
		return
	}
	student, err := h.students.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Description Only the supplied fields are changed.
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.StudentInput true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Student}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := studentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.StudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, appErrors.ErrBadRequest.Message))
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := studentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": msgStudentDeleted})
}

// NotFound answers requests that match no route.
func NotFound(c *gin.Context) {
	response.Error(c, appErrors.ErrRouteMissing)
}
