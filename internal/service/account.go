package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dtroode/aksara-server/internal/logger"
	"github.com/dtroode/aksara-server/internal/model"
)

const (
	maxEmailLength         = 254
	maxSecretLength        = 1024
	maxDisplayNameLength   = 255
	maxContactHandleLength = 64
)

type Account struct {
	pool      model.ConnPool
	users     model.UserStore
	hasher    model.Hasher
	logger    *logger.Logger
	dummyHash string
}

func NewAccount(
	pool model.ConnPool,
	users model.UserStore,
	hasher model.Hasher,
	logger *logger.Logger,
) *Account {
	a := &Account{
		pool:   pool,
		users:  users,
		hasher: hasher,
		logger: logger,
	}

	// Verified against for unknown emails so both 401 paths cost one hash.
	dummy, err := hasher.Hash("aksara-dummy-secret")
	if err != nil {
		logger.Warn("Account service: failed to prepare dummy hash",
			"error", err.Error())
	}
	a.dummyHash = dummy

	return a
}

func (a *Account) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	reg.Email = normalizeEmail(reg.Email)
	reg.DisplayName = strings.TrimSpace(reg.DisplayName)
	reg.ContactHandle = strings.TrimSpace(reg.ContactHandle)

	if err := validateRegistration(reg); err != nil {
		a.logger.Debug("Account service: registration rejected",
			"email", reg.Email,
			"error", err.Error())
		return model.User{}, err
	}

	a.logger.Debug("Account service: registering user",
		"email", reg.Email)

	hash, err := a.hasher.Hash(reg.Secret)
	if err != nil {
		a.logger.Error("Account service: failed to hash secret",
			"email", reg.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash secret: %w", err)
	}

	var created model.User
	err = a.withConn(ctx, func(q model.Querier) error {
		var err error
		created, err = a.users.Create(ctx, q, model.User{
			DisplayName:   reg.DisplayName,
			ContactHandle: reg.ContactHandle,
			Email:         reg.Email,
			PasswordHash:  hash,
		})
		return err
	})
	if errors.Is(err, model.ErrEmailTaken) {
		a.logger.Info("Account service: email already registered",
			"email", reg.Email)
		return model.User{}, model.ErrEmailTaken
	}
	if err != nil {
		a.logger.Error("Account service: failed to create user",
			"email", reg.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Account service: user registered",
		"email", created.Email,
		"user_id", created.ID)

	return created, nil
}

func (a *Account) Authenticate(ctx context.Context, creds model.Credentials) (model.User, error) {
	creds.Email = normalizeEmail(creds.Email)

	if creds.Email == "" || creds.Secret == "" ||
		len(creds.Email) > maxEmailLength || len(creds.Secret) > maxSecretLength {
		a.logger.Debug("Account service: login rejected, missing or oversized credentials")
		return model.User{}, model.ErrInvalidCredentials
	}

	a.logger.Debug("Account service: authenticating user",
		"email", creds.Email)

	var user model.User
	err := a.withConn(ctx, func(q model.Querier) error {
		var err error
		user, err = a.users.GetByEmail(ctx, q, creds.Email)
		return err
	})
	if errors.Is(err, model.ErrNotFound) {
		a.verifyDummy(creds.Secret)
		a.logger.Info("Account service: login failed",
			"email", creds.Email)
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Account service: failed to get user by email",
			"email", creds.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	ok, err := a.hasher.Verify(creds.Secret, user.PasswordHash)
	if err != nil {
		// Rows written before hashing was introduced hold no PHC string.
		a.logger.Warn("Account service: stored credential is not a valid hash",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, model.ErrInvalidCredentials
	}
	if !ok {
		a.logger.Info("Account service: login failed",
			"email", creds.Email)
		return model.User{}, model.ErrInvalidCredentials
	}

	a.logger.Info("Account service: user authenticated",
		"user_id", user.ID)

	return user, nil
}

// withConn leases a connection for the duration of fn. The lease is released
// on every exit path of fn, panics included.
func (a *Account) withConn(ctx context.Context, fn func(q model.Querier) error) error {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		stat := a.pool.Stat()
		a.logger.Error("Account service: failed to acquire connection",
			"acquired", stat.Acquired,
			"max", stat.Max,
			"error", err.Error())
		return err
	}
	defer conn.Release()

	return fn(conn)
}

func (a *Account) verifyDummy(secret string) {
	if a.dummyHash == "" {
		return
	}
	_, _ = a.hasher.Verify(secret, a.dummyHash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(reg model.Registration) error {
	switch {
	case reg.Email == "":
		return model.NewValidationError("email", "is required")
	case reg.Secret == "":
		return model.NewValidationError("secret", "is required")
	case strings.TrimSpace(reg.Secret) == "":
		return model.NewValidationError("secret", "must not be blank")
	case len(reg.Email) > maxEmailLength:
		return model.NewValidationError("email", fmt.Sprintf("must be at most %d characters", maxEmailLength))
	case !strings.Contains(reg.Email, "@"):
		return model.NewValidationError("email", "must contain @")
	case len(reg.Secret) > maxSecretLength:
		return model.NewValidationError("secret", fmt.Sprintf("must be at most %d bytes", maxSecretLength))
	case utf8.RuneCountInString(reg.DisplayName) > maxDisplayNameLength:
		return model.NewValidationError("displayName", fmt.Sprintf("must be at most %d characters", maxDisplayNameLength))
	case utf8.RuneCountInString(reg.ContactHandle) > maxContactHandleLength:
		return model.NewValidationError("contactHandle", fmt.Sprintf("must be at most %d characters", maxContactHandleLength))
	}
	return nil
}
