package repository

import (
	"context"

	"files-manager/internal/domain/entities"
)

// PageSize is the fixed number of file records per listing page.
const PageSize = 20

// Records defines the interface for durable user and file metadata.
type Records interface {
	// CreateUser inserts a new user and returns it. Fails with
	// entities.ErrEmailTaken if the email already has an account.
	CreateUser(ctx context.Context, email, passwordHash string) (*entities.User, error)

	// FindUserByEmail looks a user up by exact email match.
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)

	// FindUserByID looks a user up by identifier.
	FindUserByID(ctx context.Context, id string) (*entities.User, error)

	// InsertFile stores a new file record.
	InsertFile(ctx context.Context, file *entities.File) error

	// FindFileByID looks a file record up by identifier.
	FindFileByID(ctx context.Context, id string) (*entities.File, error)

	// FindFilesByParent returns one page of the user's files under
	// parentID, in stable insertion order. page is zero-based; pages
	// past the end yield an empty slice, not an error.
	FindFilesByParent(ctx context.Context, userID, parentID string, page int) ([]*entities.File, error)

	// UpdateFileVisibility replaces the stored record's visibility flag,
	// keyed by (id, ownerID). Fails with entities.ErrFileNotFound if no
	// such record exists for that owner.
	UpdateFileVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*entities.File, error)

	// CountUsers returns the total number of registered users.
	CountUsers(ctx context.Context) (int64, error)

	// CountFiles returns the total number of file records.
	CountFiles(ctx context.Context) (int64, error)

	// Ping reports connection liveness for status reporting.
	Ping(ctx context.Context) error
}
