package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"files-manager/internal/domain/entities"
	"files-manager/internal/usecase"
)

// FilesHandler serves the file upload, listing, visibility and download
// endpoints.
type FilesHandler struct {
	auth   *usecase.AuthUseCase
	files  *usecase.FilesUseCase
	logger *slog.Logger
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(auth *usecase.AuthUseCase, files *usecase.FilesUseCase, logger *slog.Logger) *FilesHandler {
	return &FilesHandler{auth: auth, files: files, logger: logger}
}

// RegisterRoutes registers the file routes. The data route stays outside
// the auth middleware: public files are downloadable without a token.
func (h *FilesHandler) RegisterRoutes(router *gin.Engine) {
	authed := router.Group("/")
	authed.Use(h.authMiddleware())

	authed.POST("/files", h.PostUpload)
	authed.GET("/files", h.GetIndex)
	authed.GET("/files/:id", h.GetShow)
	authed.PUT("/files/:id/publish", h.PutPublish)
	authed.PUT("/files/:id/unpublish", h.PutUnpublish)

	router.GET("/files/:id/data", h.GetData)
}

// authMiddleware resolves the x-token header into a user ID and aborts
// with 401 when it cannot.
func (h *FilesHandler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := h.auth.ResolveSession(c.Request.Context(), c.GetHeader(tokenHeader))
		if err != nil {
			respondError(c, h.logger, err)
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// PostUpload creates a file, folder or image.
func (h *FilesHandler) PostUpload(c *gin.Context) {
	var req uploadRequest
	_ = c.ShouldBindJSON(&req)

	file, err := h.files.Upload(c.Request.Context(), c.GetString("userID"), usecase.UploadInput{
		Name:     req.Name,
		Type:     entities.FileType(req.Type),
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, file.Projection())
}

// GetShow returns the metadata projection for one file.
func (h *FilesHandler) GetShow(c *gin.Context) {
	file, err := h.files.GetMetadata(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, file.Projection())
}

// GetIndex lists one page of the caller's files under a parent.
func (h *FilesHandler) GetIndex(c *gin.Context) {
	page := 0
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n >= 0 {
			page = n
		}
	}

	files, err := h.files.List(c.Request.Context(), c.GetString("userID"), c.Query("parentId"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	projections := make([]entities.FileProjection, 0, len(files))
	for _, file := range files {
		projections = append(projections, file.Projection())
	}

	c.JSON(http.StatusOK, projections)
}

// PutPublish makes a file public.
func (h *FilesHandler) PutPublish(c *gin.Context) {
	h.setVisibility(c, true)
}

// PutUnpublish makes a file private again.
func (h *FilesHandler) PutUnpublish(c *gin.Context) {
	h.setVisibility(c, false)
}

func (h *FilesHandler) setVisibility(c *gin.Context, isPublic bool) {
	file, err := h.files.SetVisibility(c.Request.Context(), c.GetString("userID"), c.Param("id"), isPublic)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, file.Projection())
}

// GetData streams a file's content, or a thumbnail rendition when a size
// query parameter is present. The token is optional here; without one only
// public files resolve.
func (h *FilesHandler) GetData(c *gin.Context) {
	width, ok := parseSize(c.Query("size"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size"})
		return
	}

	// A bad token is treated like no token: the file just has to be
	// public.
	userID := ""
	if token := c.GetHeader(tokenHeader); token != "" {
		if id, err := h.auth.ResolveSession(c.Request.Context(), token); err == nil {
			userID = id
		}
	}

	content, contentType, err := h.files.Download(c.Request.Context(), userID, c.Param("id"), width)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer content.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, content); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "failed to stream file content",
			"fileId", c.Param("id"), "error", err)
	}
}

func parseSize(size string) (uint, bool) {
	switch size {
	case "":
		return 0, true
	case "500", "250", "100":
		n, _ := strconv.Atoi(size)
		return uint(n), true
	}
	return 0, false
}
