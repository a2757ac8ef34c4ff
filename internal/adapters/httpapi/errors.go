package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railops/rakeplanner/internal/domain/shared"
)

// writeError maps domain errors onto HTTP statuses: unknown ids are 404,
// bad input is 400, rejected transitions are 409, everything else is 500
func writeError(c *gin.Context, err error) {
	var (
		notFound     *shared.NotFoundError
		validation   *shared.ValidationError
		config       *shared.ConfigError
		precondition *shared.PreconditionError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation), errors.As(err, &config):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &precondition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
