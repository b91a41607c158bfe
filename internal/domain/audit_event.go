package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionCreated          AuditAction = "created"
	AuditActionUpdated          AuditAction = "updated"
	AuditActionDeleted          AuditAction = "deleted"
	AuditActionParticipantAdded AuditAction = "participant_added"
)

type EntityType string

const (
	EntityTypeUser     EntityType = "user"
	EntityTypeActivity EntityType = "activity"
	EntityTypeExpense  EntityType = "expense"
	EntityTypePayment  EntityType = "payment"
)

func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeUser, EntityTypeActivity, EntityTypeExpense, EntityTypePayment:
		return true
	}
	return false
}

type AuditEvent struct {
	ID         uuid.UUID
	Action     AuditAction
	EntityType EntityType
	EntityID   uuid.UUID
	Actor      string
	Details    json.RawMessage
	CreatedAt  time.Time
}
