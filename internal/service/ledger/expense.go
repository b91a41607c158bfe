package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
)

type CreateExpenseRequest struct {
	ActivityID  uuid.UUID
	PayerID     uuid.UUID
	Amount      decimal.Decimal
	Description *string
}

// CreateExpense records that PayerID paid Amount on behalf of the whole
// activity. The payer must be one of its participants.
func (s *Service) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*domain.Expense, error) {
	if !domain.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("CreateExpense: %w", domain.ErrInvalidAmount)
	}

	e := &domain.Expense{
		ID:          uuid.New(),
		ActivityID:  req.ActivityID,
		PayerID:     req.PayerID,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.withLedgerTx(ctx, func(tx *sql.Tx) error {
		a, err := s.activityForWrite(ctx, tx, req.ActivityID)
		if err != nil {
			return err
		}
		if !a.HasParticipant(req.PayerID) {
			return domain.ErrNotParticipant
		}
		if err := s.expenses.Create(ctx, tx, e); err != nil {
			return err
		}
		return s.writeAudit(ctx, tx, domain.AuditActionCreated, domain.EntityTypeExpense, e.ID, map[string]any{
			"activity_id": e.ActivityID,
			"payer_id":    e.PayerID,
			"amount":      e.Amount.StringFixed(2),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("CreateExpense: %w", err)
	}

	logging.FromContext(ctx).Info("expense recorded",
		"expense_id", e.ID,
		"activity_id", e.ActivityID,
		"payer_id", e.PayerID,
		"amount", e.Amount.StringFixed(2),
	)
	return e, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	err := s.withLedgerTx(ctx, func(tx *sql.Tx) error {
		e, err := s.expenses.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.writeAudit(ctx, tx, domain.AuditActionDeleted, domain.EntityTypeExpense, id, map[string]any{
			"activity_id": e.ActivityID,
			"payer_id":    e.PayerID,
			"amount":      e.Amount.StringFixed(2),
		})
	})
	if err != nil {
		return fmt.Errorf("DeleteExpense: %w", err)
	}

	logging.FromContext(ctx).Info("expense deleted", "expense_id", id)
	return nil
}

func (s *Service) GetExpense(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetExpense: %w", err)
	}
	return e, nil
}

// ListExpenses returns every expense, or only those of activityID when it
// is non-nil.
func (s *Service) ListExpenses(ctx context.Context, activityID *uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.expenses.List(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("ListExpenses: %w", err)
	}
	return expenses, nil
}
