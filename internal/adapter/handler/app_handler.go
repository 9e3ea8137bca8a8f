package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"files-manager/internal/usecase"
)

// AppHandler serves the unauthenticated operational endpoints.
type AppHandler struct {
	app    *usecase.AppUseCase
	logger *slog.Logger
}

// NewAppHandler creates a new app handler.
func NewAppHandler(app *usecase.AppUseCase, logger *slog.Logger) *AppHandler {
	return &AppHandler{app: app, logger: logger}
}

// RegisterRoutes registers the status and stats routes.
func (h *AppHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/status", h.GetStatus)
	router.GET("/stats", h.GetStats)
}

// GetStatus reports liveness of the session store and record store.
func (h *AppHandler) GetStatus(c *gin.Context) {
	redisAlive, dbAlive := h.app.Status(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"redis": redisAlive, "db": dbAlive})
}

// GetStats reports total user and file counts.
func (h *AppHandler) GetStats(c *gin.Context) {
	users, files, err := h.app.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "files": files})
}
