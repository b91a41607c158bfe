package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
)

type authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type tokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

type AuthHandler struct {
	users  authenticator
	tokens tokenIssuer
}

func NewAuthHandler(users authenticator, tokens tokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			logging.FromContext(r.Context()).Error("login failed", "error", err)
		}
		RespondDomainError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to issue token", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, loginResponse{
		Token: token,
		User:  toUserDTO(user),
	})
}
