package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
// Every call runs on the connection the caller leased from the pool.
type UserStore interface {
	Create(ctx context.Context, q Querier, user User) (User, error)
	GetByEmail(ctx context.Context, q Querier, email string) (User, error)
}

// User represents a stored account.
type User struct {
	ID            uuid.UUID
	DisplayName   string
	ContactHandle string
	Email         string
	PasswordHash  string
	CreatedAt     time.Time
}

// Registration is a candidate account submitted for sign up.
type Registration struct {
	DisplayName   string
	ContactHandle string
	Email         string
	Secret        string
}

// Credentials are submitted on login.
type Credentials struct {
	Email  string
	Secret string
}

// Hasher derives and verifies one-way credential hashes.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}
