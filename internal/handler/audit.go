package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
)

type auditService interface {
	AuditTrail(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.AuditEvent, error)
}

type AuditHandler struct {
	audit auditService
}

func NewAuditHandler(audit auditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

type auditEventDTO struct {
	ID         uuid.UUID       `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Actor      string          `json:"actor"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	var fields []FieldError

	entityType := domain.EntityType(r.URL.Query().Get("entity_type"))
	if !entityType.IsValid() {
		fields = append(fields, FieldError{Field: "entity_type", Message: "must be user, activity, expense or payment"})
	}
	entityID, err := uuid.Parse(r.URL.Query().Get("entity_id"))
	if err != nil {
		fields = append(fields, FieldError{Field: "entity_id", Message: "must be a UUID"})
	}
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	events, err := h.audit.AuditTrail(r.Context(), entityType, entityID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list audit events", "error", err)
		RespondDomainError(w, err)
		return
	}

	out := make([]auditEventDTO, len(events))
	for i, e := range events {
		out[i] = auditEventDTO{
			ID:         e.ID,
			Action:     string(e.Action),
			EntityType: string(e.EntityType),
			EntityID:   e.EntityID,
			Actor:      e.Actor,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt,
		}
	}
	RespondSuccess(w, http.StatusOK, out)
}
