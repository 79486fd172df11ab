package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/aksara-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository runs user queries on a connection leased by the caller.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, q model.Querier, user model.User) (model.User, error) {
	const query = `INSERT INTO users (full_name, whatsapp, email, password_hash)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, full_name, whatsapp, email, password_hash, created_at`

	var (
		saved         model.User
		displayName   *string
		contactHandle *string
	)
	err := q.QueryRow(ctx, query,
		nullString(user.DisplayName), nullString(user.ContactHandle), user.Email, user.PasswordHash,
	).Scan(
		&saved.ID, &displayName, &contactHandle, &saved.Email, &saved.PasswordHash, &saved.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	saved.DisplayName = derefString(displayName)
	saved.ContactHandle = derefString(contactHandle)

	return saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, q model.Querier, email string) (model.User, error) {
	const query = `SELECT id, full_name, whatsapp, email, password_hash, created_at
			  FROM users WHERE email = $1`

	var (
		user          model.User
		displayName   *string
		contactHandle *string
	)
	err := q.QueryRow(ctx, query, email).Scan(
		&user.ID, &displayName, &contactHandle, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	user.DisplayName = derefString(displayName)
	user.ContactHandle = derefString(contactHandle)

	return user, nil
}

// Count returns the number of stored users.
func (r *UserRepository) Count(ctx context.Context, q model.Querier) (int64, error) {
	var n int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// isUniqueViolation classifies by SQLSTATE, not by message text.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
