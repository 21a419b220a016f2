package middleware

import (
	"net/http"

	"heat-optimizer/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorHandler middleware converts panics into the error envelope
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		if msg, ok := recovered.(string); ok {
			c.JSON(http.StatusInternalServerError, models.NewError("INTERNAL_ERROR", msg))
		} else {
			c.JSON(http.StatusInternalServerError, models.NewError("INTERNAL_ERROR", "An unexpected error occurred"))
		}
		c.Abort()
	})
}
