package entities

import (
	"time"
)

// User represents a registered account. Users are created by registration
// and never edited or deleted afterwards.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
