package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"files-manager/internal/usecase"
)

// AuthHandler serves registration, login, logout and the current-user
// endpoint.
type AuthHandler struct {
	auth   *usecase.AuthUseCase
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// RegisterRoutes registers the auth routes.
func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/users", h.PostNew)
	router.GET("/connect", h.GetConnect)
	router.GET("/disconnect", h.GetDisconnect)
	router.GET("/users/me", h.GetMe)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostNew registers a new user.
func (h *AuthHandler) PostNew(c *gin.Context) {
	var req registerRequest
	// A malformed body just means the fields are missing.
	_ = c.ShouldBindJSON(&req)

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

// GetConnect exchanges basic-auth credentials for a session token.
func (h *AuthHandler) GetConnect(c *gin.Context) {
	token, err := h.auth.Login(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetDisconnect destroys the session for the presented token.
func (h *AuthHandler) GetDisconnect(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetHeader(tokenHeader)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMe returns the authenticated user's id and email.
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), c.GetHeader(tokenHeader))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
}
