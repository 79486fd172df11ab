package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/aksara-server/internal/logger"
	"github.com/dtroode/aksara-server/internal/model"
)

const maxBodyBytes = 1 << 20

// AccountService defines user registration and login operations.
type AccountService interface {
	Register(ctx context.Context, reg model.Registration) (model.User, error)
	Authenticate(ctx context.Context, creds model.Credentials) (model.User, error)
}

// Account handles HTTP endpoints for registration and login.
type Account struct {
	accountService AccountService
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(accountService AccountService, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		logger:         logger,
	}
}

// registerRequest accepts both the current field names and the ones
// sent by the dashboard frontend (fullName, whatsapp, password).
type registerRequest struct {
	DisplayName   string `json:"displayName"`
	FullName      string `json:"fullName"`
	ContactHandle string `json:"contactHandle"`
	WhatsApp      string `json:"whatsapp"`
	Email         string `json:"email"`
	Secret        string `json:"secret"`
	Password      string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Secret   string `json:"secret"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
}

type accountResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// Register creates an account and answers 201 with the new id and email.
func (h *Account) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Account handler: failed to decode registration request",
			"error", err.Error())
		handleError(w, err)
		return
	}

	user, err := h.accountService.Register(r.Context(), model.Registration{
		DisplayName:   firstNonEmpty(req.DisplayName, req.FullName),
		ContactHandle: firstNonEmpty(req.ContactHandle, req.WhatsApp),
		Email:         req.Email,
		Secret:        firstNonEmpty(req.Secret, req.Password),
	})
	if err != nil {
		h.logger.Debug("Account handler: registration failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, accountResponse{
		Message: "registration successful",
		User:    toUserResponse(user),
	})
}

// Login verifies credentials and answers 200 with the account identity.
func (h *Account) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Account handler: failed to decode login request",
			"error", err.Error())
		handleError(w, err)
		return
	}

	user, err := h.accountService.Authenticate(r.Context(), model.Credentials{
		Email:  req.Email,
		Secret: firstNonEmpty(req.Secret, req.Password),
	})
	if err != nil {
		h.logger.Debug("Account handler: login failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, accountResponse{
		Message: "login successful",
		User:    toUserResponse(user),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return maxBytesErr
		}
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}
	return nil
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
