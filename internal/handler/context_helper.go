package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
	"github.com/noah-isme/student-records-api/pkg/formatter"
)

// studentID parses the :id path parameter. Only positive integers are accepted.
func studentID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.ErrInvalidID
	}
	return id, nil
}

// queryNumber reads a numeric query parameter through the formatter registry.
// Missing or empty parameters report false.
func queryNumber(c *gin.Context, key string, t formatter.Type) (float64, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return 0, false
	}
	return formatter.FloatValue(formatter.Format(strings.TrimSpace(raw), t, nil))
}
