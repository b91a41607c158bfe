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
	"github.com/josh-kwaku/palpay/internal/service/ledger"
)

type activityService interface {
	CreateActivity(ctx context.Context, req ledger.CreateActivityRequest) (*domain.Activity, error)
	AddParticipant(ctx context.Context, activityID, userID uuid.UUID) (*domain.Activity, error)
	GetActivity(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	ActivitySettlements(ctx context.Context, activityID uuid.UUID) ([]domain.SettlementInstruction, error)
}

type ActivityHandler struct {
	activities activityService
}

func NewActivityHandler(activities activityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

type activityDTO struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	CreatedBy    uuid.UUID   `json:"created_by"`
	Participants []uuid.UUID `json:"participants"`
	CreatedAt    time.Time   `json:"created_at"`
}

func toActivityDTO(a *domain.Activity) activityDTO {
	participants := a.Participants
	if participants == nil {
		participants = []uuid.UUID{}
	}
	return activityDTO{
		ID:           a.ID,
		Name:         a.Name,
		CreatedBy:    a.CreatedBy,
		Participants: participants,
		CreatedAt:    a.CreatedAt,
	}
}

type createActivityRequest struct {
	Name         string      `json:"name"`
	Participants []uuid.UUID `json:"participants"`
}

func (r createActivityRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if len(r.Participants) == 0 {
		errs = append(errs, FieldError{Field: "participants", Message: "at least one participant required"})
	}
	return errs
}

type addParticipantRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

func (r addParticipantRequest) Validate() []FieldError {
	if r.UserID == uuid.Nil {
		return []FieldError{{Field: "user_id", Message: "required"}}
	}
	return nil
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	a, err := h.activities.CreateActivity(r.Context(), ledger.CreateActivityRequest{
		Name:         req.Name,
		CreatedBy:    userID,
		Participants: req.Participants,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("activity creation failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/activities/%s", a.ID))
	RespondSuccess(w, http.StatusCreated, toActivityDTO(a))
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.ListActivities(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list activities", "error", err)
		RespondDomainError(w, err)
		return
	}

	out := make([]activityDTO, len(activities))
	for i := range activities {
		out[i] = toActivityDTO(&activities[i])
	}
	RespondSuccess(w, http.StatusOK, out)
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.activities.GetActivity(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("activity lookup failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toActivityDTO(a))
}

func (h *ActivityHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req addParticipantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	a, err := h.activities.AddParticipant(r.Context(), id, req.UserID)
	if err != nil {
		logging.FromContext(r.Context()).Warn("add participant failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toActivityDTO(a))
}

func (h *ActivityHandler) Settlements(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	instructions, err := h.activities.ActivitySettlements(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("activity settlement failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toSettlementDTOs(instructions))
}
