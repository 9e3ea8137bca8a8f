package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"files-manager/internal/domain/entities"
	domain "files-manager/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS files (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	is_public INTEGER NOT NULL DEFAULT 0,
	parent_id TEXT NOT NULL DEFAULT '0',
	local_path TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_files_owner_parent ON files(user_id, parent_id);
`

// OpenDatabase opens the SQLite database at dbPath, configures the
// connection pool and ensures the schema exists.
func OpenDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// SQLiteRecords implements the record store on SQLite.
type SQLiteRecords struct {
	db *sql.DB
}

// NewSQLiteRecords creates a record store around an open database handle.
func NewSQLiteRecords(db *sql.DB) domain.Records {
	return &SQLiteRecords{db: db}
}

// CreateUser inserts a new user. The duplicate check runs before the
// insert; a race between the two loses to the UNIQUE constraint, which is
// reported as entities.ErrEmailTaken as well.
func (s *SQLiteRecords) CreateUser(ctx context.Context, email, passwordHash string) (*entities.User, error) {
	if _, err := s.FindUserByEmail(ctx, email); err == nil {
		return nil, entities.ErrEmailTaken
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// FindUserByEmail looks a user up by exact, case-sensitive email match.
func (s *SQLiteRecords) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

// FindUserByID looks a user up by identifier.
func (s *SQLiteRecords) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// InsertFile stores a new file record.
func (s *SQLiteRecords) InsertFile(ctx context.Context, file *entities.File) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO files (id, user_id, name, type, is_public, parent_id, local_path, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		file.ID, file.UserID, file.Name, string(file.Type), file.IsPublic, file.ParentID, file.LocalPath, file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

// FindFileByID looks a file record up by identifier.
func (s *SQLiteRecords) FindFileByID(ctx context.Context, id string) (*entities.File, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, type, is_public, parent_id, local_path, created_at FROM files WHERE id = ?", id)
	return scanFile(row)
}

// FindFilesByParent returns one zero-based page of the user's files under
// parentID, in insertion order. Pages past the end come back empty.
func (s *SQLiteRecords) FindFilesByParent(ctx context.Context, userID, parentID string, page int) ([]*entities.File, error) {
	if page < 0 {
		page = 0
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, type, is_public, parent_id, local_path, created_at FROM files WHERE user_id = ? AND parent_id = ? ORDER BY rowid LIMIT ? OFFSET ?",
		userID, parentID, domain.PageSize, page*domain.PageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []*entities.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

// UpdateFileVisibility replaces the stored record with the flag toggled,
// keyed strictly by (id, owner).
func (s *SQLiteRecords) UpdateFileVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*entities.File, error) {
	file, err := s.FindFileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file.UserID != ownerID {
		return nil, entities.ErrFileNotFound
	}

	file.IsPublic = isPublic

	// Full-record replace keyed by identifier and owner.
	result, err := s.db.ExecContext(ctx,
		"UPDATE files SET user_id = ?, name = ?, type = ?, is_public = ?, parent_id = ?, local_path = ? WHERE id = ? AND user_id = ?",
		file.UserID, file.Name, string(file.Type), file.IsPublic, file.ParentID, file.LocalPath, file.ID, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update file visibility: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update file visibility: %w", err)
	}
	if affected == 0 {
		return nil, entities.ErrFileNotFound
	}

	return file, nil
}

// CountUsers returns the total number of registered users.
func (s *SQLiteRecords) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// CountFiles returns the total number of file records.
func (s *SQLiteRecords) CountFiles(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&count); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return count, nil
}

// Ping reports whether the database connection is alive.
func (s *SQLiteRecords) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entities.User, error) {
	var user entities.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func scanFile(row rowScanner) (*entities.File, error) {
	var (
		file     entities.File
		fileType string
	)
	err := row.Scan(&file.ID, &file.UserID, &file.Name, &fileType, &file.IsPublic, &file.ParentID, &file.LocalPath, &file.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	file.Type = entities.FileType(fileType)
	return &file, nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures in the error text.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
