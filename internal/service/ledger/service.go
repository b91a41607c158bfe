// Package ledger owns every write that changes who owes whom. Each mutation
// runs under the ledger lock and recomputes the stored balances and
// settlement plan before it commits.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/auth"
	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
	"github.com/josh-kwaku/palpay/internal/reconcile"
)

type ledgerDB interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	LockLedger(ctx context.Context, tx *sql.Tx) error
}

type activityRepo interface {
	Create(ctx context.Context, tx *sql.Tx, a *domain.Activity) error
	AddParticipant(ctx context.Context, tx *sql.Tx, activityID, userID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	GetByIDTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Activity, error)
	List(ctx context.Context) ([]domain.Activity, error)
	ListAll(ctx context.Context, tx *sql.Tx) ([]domain.Activity, error)
}

type expenseRepo interface {
	Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error
	Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Expense, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, activityID *uuid.UUID) ([]domain.Expense, error)
	ListByActivityTx(ctx context.Context, tx *sql.Tx, activityID uuid.UUID) ([]domain.Expense, error)
	ListAll(ctx context.Context, tx *sql.Tx) ([]domain.Expense, error)
}

type paymentRepo interface {
	Create(ctx context.Context, tx *sql.Tx, p *domain.Payment) error
	Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, userID *uuid.UUID) ([]domain.Payment, error)
	ListAll(ctx context.Context, tx *sql.Tx) ([]domain.Payment, error)
}

type userRepo interface {
	CountExisting(ctx context.Context, tx *sql.Tx, ids []uuid.UUID) (int, error)
}

type balanceRepo interface {
	List(ctx context.Context, userID *uuid.UUID) ([]domain.Balance, error)
	ReplaceAll(ctx context.Context, tx *sql.Tx, balances []domain.Balance) error
}

type settlementRepo interface {
	List(ctx context.Context) ([]domain.SettlementInstruction, error)
	ReplaceAll(ctx context.Context, tx *sql.Tx, instructions []domain.SettlementInstruction) error
}

type auditRepo interface {
	Create(ctx context.Context, tx *sql.Tx, e *domain.AuditEvent) error
}

type Service struct {
	db          ledgerDB
	activities  activityRepo
	expenses    expenseRepo
	payments    paymentRepo
	users       userRepo
	balances    balanceRepo
	settlements settlementRepo
	audit       auditRepo
}

func NewService(
	db ledgerDB,
	activities activityRepo,
	expenses expenseRepo,
	payments paymentRepo,
	users userRepo,
	balances balanceRepo,
	settlements settlementRepo,
	audit auditRepo,
) *Service {
	return &Service{
		db:          db,
		activities:  activities,
		expenses:    expenses,
		payments:    payments,
		users:       users,
		balances:    balances,
		settlements: settlements,
		audit:       audit,
	}
}

// Rebuild recomputes the stored balances and settlement plan from the
// current activities, expenses and payments without changing any of them.
func (s *Service) Rebuild(ctx context.Context) error {
	if err := s.withLedgerTx(ctx, func(*sql.Tx) error { return nil }); err != nil {
		return fmt.Errorf("Rebuild: %w", err)
	}
	return nil
}

// withLedgerTx runs fn inside a transaction holding the ledger lock, then
// recomputes the projections on top of fn's writes and commits.
func (s *Service) withLedgerTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.db.LockLedger(ctx, tx); err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := s.recompute(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// snapshotTx reads engine inputs outside a write. Every statement in a
// repeatable-read transaction sees the same snapshot.
var snapshotTx = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

func (s *Service) recompute(ctx context.Context, tx *sql.Tx) error {
	log := logging.FromContext(ctx)

	activities, err := s.activities.ListAll(ctx, tx)
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}
	expenses, err := s.expenses.ListAll(ctx, tx)
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}
	payments, err := s.payments.ListAll(ctx, tx)
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}

	res := reconcile.Reconcile(reconcile.Snapshot{
		Activities: activities,
		Expenses:   expenses,
		Payments:   payments,
	})

	for _, id := range res.OrphanedExpenses {
		log.Warn("expense references unknown activity, ignored", "expense_id", id)
	}
	for _, id := range res.EmptyActivities {
		log.Warn("activity has no participants, skipped", "activity_id", id)
	}

	settlements := roundSettlements(res.Settlements)

	if err := s.balances.ReplaceAll(ctx, tx, res.Balances); err != nil {
		return fmt.Errorf("recompute: %w", err)
	}
	if err := s.settlements.ReplaceAll(ctx, tx, settlements); err != nil {
		return fmt.Errorf("recompute: %w", err)
	}

	log.Debug("ledger recomputed",
		"activities", len(activities),
		"expenses", len(expenses),
		"payments", len(payments),
		"balances", len(res.Balances),
		"settlements", len(settlements),
	)
	return nil
}

// roundSettlements brings matcher output to cents for storage. Transfers
// that round to nothing are dropped.
func roundSettlements(in []domain.SettlementInstruction) []domain.SettlementInstruction {
	out := make([]domain.SettlementInstruction, 0, len(in))
	for _, si := range in {
		amount := si.Amount.Round(2)
		if !amount.IsPositive() {
			continue
		}
		out = append(out, domain.SettlementInstruction{
			DebtorID:   si.DebtorID,
			CreditorID: si.CreditorID,
			Amount:     amount,
		})
	}
	return out
}

func (s *Service) writeAudit(ctx context.Context, tx *sql.Tx, action domain.AuditAction, entityType domain.EntityType, entityID uuid.UUID, details any) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("writeAudit: marshal details: %w", err)
	}
	e := &domain.AuditEvent{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      auth.ActorFromContext(ctx),
		Details:    raw,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Create(ctx, tx, e); err != nil {
		return fmt.Errorf("writeAudit: %w", err)
	}
	return nil
}

// requireUsers fails with ErrUnknownUser unless every id is registered.
func (s *Service) requireUsers(ctx context.Context, tx *sql.Tx, ids ...uuid.UUID) error {
	n, err := s.users.CountExisting(ctx, tx, ids)
	if err != nil {
		return err
	}
	if n != len(ids) {
		return domain.ErrUnknownUser
	}
	return nil
}
