package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"files-manager/internal/domain/entities"
)

// tokenHeader carries the session token on authenticated requests.
const tokenHeader = "x-token"

// respondError translates service errors into HTTP responses. Validation
// messages reach the client verbatim; auth failures and lookups get one
// generic body each; anything else is a 500 with the detail only in the
// server log.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if ve, ok := entities.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
		return
	}

	switch {
	case errors.Is(err, entities.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, entities.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exist"})
	case errors.Is(err, entities.ErrFileNotFound), errors.Is(err, entities.ErrBlobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, entities.ErrFolderHasNoData):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A folder doesn't have content"})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
