package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
	"github.com/josh-kwaku/palpay/internal/service"
)

type userService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, paymentDetails *string) (*domain.User, error)
}

type UserHandler struct {
	users userService
}

func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

type userDTO struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PaymentDetails *string   `json:"payment_details"`
	CreatedAt      time.Time `json:"created_at"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		PaymentDetails: u.PaymentDetails,
		CreatedAt:      u.CreatedAt,
	}
}

type registerRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	PaymentDetails *string `json:"payment_details"`
}

func (r registerRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

type updateProfileRequest struct {
	Name           string  `json:"name"`
	PaymentDetails *string `json:"payment_details"`
}

func (r updateProfileRequest) Validate() []FieldError {
	if strings.TrimSpace(r.Name) == "" {
		return []FieldError{{Field: "name", Message: "required"}}
	}
	return nil
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	u, err := h.users.Register(r.Context(), service.RegisterRequest{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("registration failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/users/%s", u.ID))
	RespondSuccess(w, http.StatusCreated, toUserDTO(u))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list users", "error", err)
		RespondDomainError(w, err)
		return
	}

	out := make([]userDTO, len(users))
	for i := range users {
		out[i] = toUserDTO(&users[i])
	}
	RespondSuccess(w, http.StatusOK, out)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Warn("failed to get user", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.PaymentDetails)
	if err != nil {
		logging.FromContext(r.Context()).Warn("profile update failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toUserDTO(user))
}
