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

type CreatePaymentRequest struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Amount     decimal.Decimal
	Note       *string
}

// CreatePayment records a direct repayment. Paying more than is owed leaves
// the payee owing the difference.
func (s *Service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	if !domain.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("CreatePayment: %w", domain.ErrInvalidAmount)
	}
	if req.FromUserID == req.ToUserID {
		return nil, fmt.Errorf("CreatePayment: %w", domain.ErrSelfPayment)
	}

	p := &domain.Payment{
		ID:         uuid.New(),
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Note:       req.Note,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.withLedgerTx(ctx, func(tx *sql.Tx) error {
		if err := s.requireUsers(ctx, tx, p.FromUserID, p.ToUserID); err != nil {
			return err
		}
		if err := s.payments.Create(ctx, tx, p); err != nil {
			return err
		}
		return s.writeAudit(ctx, tx, domain.AuditActionCreated, domain.EntityTypePayment, p.ID, map[string]any{
			"from_user_id": p.FromUserID,
			"to_user_id":   p.ToUserID,
			"amount":       p.Amount.StringFixed(2),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("CreatePayment: %w", err)
	}

	logging.FromContext(ctx).Info("payment recorded",
		"payment_id", p.ID,
		"from_user_id", p.FromUserID,
		"to_user_id", p.ToUserID,
		"amount", p.Amount.StringFixed(2),
	)
	return p, nil
}

func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	err := s.withLedgerTx(ctx, func(tx *sql.Tx) error {
		p, err := s.payments.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.writeAudit(ctx, tx, domain.AuditActionDeleted, domain.EntityTypePayment, id, map[string]any{
			"from_user_id": p.FromUserID,
			"to_user_id":   p.ToUserID,
			"amount":       p.Amount.StringFixed(2),
		})
	})
	if err != nil {
		return fmt.Errorf("DeletePayment: %w", err)
	}

	logging.FromContext(ctx).Info("payment deleted", "payment_id", id)
	return nil
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetPayment: %w", err)
	}
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, userID *uuid.UUID) ([]domain.Payment, error) {
	payments, err := s.payments.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ListPayments: %w", err)
	}
	return payments, nil
}
