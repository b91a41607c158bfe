package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
)

const auditEventColumns = `id, action, entity_type, entity_id, actor, details, created_at`

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, tx *sql.Tx, e *domain.AuditEvent) error {
	var details any
	if len(e.Details) > 0 {
		details = string(e.Details)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO audit_events (`+auditEventColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Action, e.EntityType, e.EntityID, e.Actor, details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// List returns the history of one entity, oldest first.
func (r *AuditRepository) List(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.AuditEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auditEventColumns+` FROM audit_events
		WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at, id`,
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	events := []domain.AuditEvent{}
	for rows.Next() {
		e, err := scanAuditEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return events, nil
}

func scanAuditEvent(s scanner) (*domain.AuditEvent, error) {
	var e domain.AuditEvent
	var details []byte
	err := s.Scan(
		&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.Actor, &details, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if details != nil {
		e.Details = details
	}
	return &e, nil
}
