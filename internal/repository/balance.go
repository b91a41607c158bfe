package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
)

type BalanceRepository struct {
	db *sql.DB
}

func NewBalanceRepository(db *sql.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// List returns the current pairwise balances. A non-nil userID keeps only
// balances where that user is debtor or creditor.
func (r *BalanceRepository) List(ctx context.Context, userID *uuid.UUID) ([]domain.Balance, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if userID != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT debtor_id, creditor_id, amount FROM balances
			WHERE debtor_id = $1 OR creditor_id = $1 ORDER BY debtor_id, creditor_id`,
			*userID,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT debtor_id, creditor_id, amount FROM balances ORDER BY debtor_id, creditor_id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	balances := []domain.Balance{}
	for rows.Next() {
		var b domain.Balance
		if err := rows.Scan(&b.DebtorID, &b.CreditorID, &b.Amount); err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return balances, nil
}

// ReplaceAll swaps the stored balances for balances inside tx.
func (r *BalanceRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, balances []domain.Balance) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM balances`); err != nil {
		return fmt.Errorf("ReplaceAll: clear: %w", err)
	}
	if len(balances) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO balances (debtor_id, creditor_id, amount) VALUES ($1, $2, $3)`,
	)
	if err != nil {
		return fmt.Errorf("ReplaceAll: prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range balances {
		if _, err := stmt.ExecContext(ctx, b.DebtorID, b.CreditorID, b.Amount); err != nil {
			return fmt.Errorf("ReplaceAll: insert %s->%s: %w", b.DebtorID, b.CreditorID, err)
		}
	}
	return nil
}
