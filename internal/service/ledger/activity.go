package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
	"github.com/josh-kwaku/palpay/internal/reconcile"
)

type CreateActivityRequest struct {
	Name         string
	CreatedBy    uuid.UUID
	Participants []uuid.UUID
}

func (s *Service) CreateActivity(ctx context.Context, req CreateActivityRequest) (*domain.Activity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("CreateActivity: name: %w", domain.ErrInvalidRequest)
	}
	participants := domain.UniqueIDs(req.Participants)
	if len(participants) == 0 {
		return nil, fmt.Errorf("CreateActivity: %w", domain.ErrEmptyParticipants)
	}

	a := &domain.Activity{
		ID:           uuid.New(),
		Name:         name,
		CreatedBy:    req.CreatedBy,
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
	}

	err := s.withLedgerTx(ctx, func(tx *sql.Tx) error {
		if err := s.requireUsers(ctx, tx, participants...); err != nil {
			return err
		}
		if err := s.activities.Create(ctx, tx, a); err != nil {
			return err
		}
		return s.writeAudit(ctx, tx, domain.AuditActionCreated, domain.EntityTypeActivity, a.ID, map[string]any{
			"name":         a.Name,
			"participants": a.Participants,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("CreateActivity: %w", err)
	}

	logging.FromContext(ctx).Info("activity created",
		"activity_id", a.ID,
		"participants", len(a.Participants),
	)
	return a, nil
}

// AddParticipant joins userID to the activity. Existing expenses are
// re-split across the enlarged group.
func (s *Service) AddParticipant(ctx context.Context, activityID, userID uuid.UUID) (*domain.Activity, error) {
	var updated *domain.Activity
	err := s.withLedgerTx(ctx, func(tx *sql.Tx) error {
		a, err := s.activityForWrite(ctx, tx, activityID)
		if err != nil {
			return err
		}
		if a.HasParticipant(userID) {
			return domain.ErrAlreadyParticipant
		}
		if err := s.requireUsers(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.activities.AddParticipant(ctx, tx, activityID, userID); err != nil {
			return err
		}
		if err := s.writeAudit(ctx, tx, domain.AuditActionParticipantAdded, domain.EntityTypeActivity, activityID, map[string]any{
			"user_id": userID,
		}); err != nil {
			return err
		}
		a.Participants = append(a.Participants, userID)
		updated = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("AddParticipant: %w", err)
	}

	logging.FromContext(ctx).Info("participant added",
		"activity_id", activityID,
		"user_id", userID,
	)
	return updated, nil
}

func (s *Service) GetActivity(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetActivity: %w", err)
	}
	return a, nil
}

func (s *Service) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListActivities: %w", err)
	}
	return activities, nil
}

// ActivitySettlements returns the transfers that would square up a single
// activity on its own, ignoring payments and every other activity.
// Amounts are rounded to cents.
func (s *Service) ActivitySettlements(ctx context.Context, activityID uuid.UUID) ([]domain.SettlementInstruction, error) {
	tx, err := s.db.BeginTx(ctx, snapshotTx)
	if err != nil {
		return nil, fmt.Errorf("ActivitySettlements: begin tx: %w", err)
	}
	defer tx.Rollback()

	a, err := s.activities.GetByIDTx(ctx, tx, activityID)
	if err != nil {
		return nil, fmt.Errorf("ActivitySettlements: %w", err)
	}
	expenses, err := s.expenses.ListByActivityTx(ctx, tx, activityID)
	if err != nil {
		return nil, fmt.Errorf("ActivitySettlements: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ActivitySettlements: commit: %w", err)
	}

	return roundSettlements(reconcile.SettleActivity(*a, expenses)), nil
}

func (s *Service) activityForWrite(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Activity, error) {
	a, err := s.activities.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	return a, nil
}
