package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"files-manager/internal/domain/entities"
	"files-manager/internal/domain/repository"
)

const (
	sessionTTL       = 24 * time.Hour
	sessionKeyPrefix = "auth_"
)

// AuthUseCase handles registration, login, logout and session resolution.
type AuthUseCase struct {
	sessions repository.Sessions
	records  repository.Records
	queue    repository.TaskQueue
	logger   *slog.Logger
}

// NewAuthUseCase creates a new auth use case.
func NewAuthUseCase(sessions repository.Sessions, records repository.Records, queue repository.TaskQueue, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{
		sessions: sessions,
		records:  records,
		queue:    queue,
		logger:   logger,
	}
}

// Register creates a new user with a one-way password hash and schedules
// the welcome job. The welcome enqueue is best-effort and never fails the
// registration.
func (a *AuthUseCase) Register(ctx context.Context, email, password string) (*entities.User, error) {
	if email == "" {
		return nil, entities.NewValidationError("Missing email")
	}
	if password == "" {
		return nil, entities.NewValidationError("Missing password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.records.CreateUser(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}

	if err := a.queue.EnqueueWelcome(ctx, user.ID); err != nil {
		a.logger.WarnContext(ctx, "failed to enqueue welcome task", "userId", user.ID, "error", err)
	}

	return user, nil
}

// Login authenticates a basic-auth header and returns a fresh session
// token. A missing or malformed header, an unknown email and a wrong
// password all fail identically with entities.ErrUnauthorized, so the
// response never leaks which case occurred.
func (a *AuthUseCase) Login(ctx context.Context, authorizationHeader string) (string, error) {
	email, password, ok := parseBasicAuth(authorizationHeader)
	if !ok {
		return "", entities.ErrUnauthorized
	}

	user, err := a.records.FindUserByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		return "", entities.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entities.ErrUnauthorized
	}

	token := uuid.New().String()
	if err := a.sessions.Set(ctx, sessionKey(token), user.ID, sessionTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Logout deletes the session for the token. Unknown and absent tokens are
// rejected with entities.ErrUnauthorized.
func (a *AuthUseCase) Logout(ctx context.Context, token string) error {
	if _, err := a.ResolveSession(ctx, token); err != nil {
		return err
	}
	return a.sessions.Del(ctx, sessionKey(token))
}

// ResolveSession maps a token to its user ID. Missing and expired tokens
// both come back as entities.ErrUnauthorized.
func (a *AuthUseCase) ResolveSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", entities.ErrUnauthorized
	}

	userID, err := a.sessions.Get(ctx, sessionKey(token))
	if errors.Is(err, entities.ErrSessionNotFound) {
		return "", entities.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}

	return userID, nil
}

// CurrentUser resolves the token and loads the user record. A session
// whose user has since vanished is treated as unauthorized, never as a
// server error.
func (a *AuthUseCase) CurrentUser(ctx context.Context, token string) (*entities.User, error) {
	userID, err := a.ResolveSession(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := a.records.FindUserByID(ctx, userID)
	if errors.Is(err, entities.ErrUserNotFound) {
		return nil, entities.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// parseBasicAuth decodes an "Authorization: Basic <b64(email:password)>"
// header value.
func parseBasicAuth(header string) (email, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	email, password, ok = strings.Cut(string(decoded), ":")
	if !ok || email == "" {
		return "", "", false
	}

	return email, password, true
}
