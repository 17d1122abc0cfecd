package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records-api/internal/models"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
	"github.com/noah-isme/student-records-api/pkg/response"
)

// ContextWriterKey is the gin context key storing validated writer claims.
const ContextWriterKey = "writer"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*models.WriterClaims, error)
}

// JWT protects routes by requiring a valid students:write bearer token.
func JWT(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextWriterKey, claims)
		c.Next()
	}
}

// WriterFromContext returns the claims stored by JWT, if any.
func WriterFromContext(c *gin.Context) *models.WriterClaims {
	value, exists := c.Get(ContextWriterKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.WriterClaims)
	if !ok {
		return nil
	}
	return claims
}
