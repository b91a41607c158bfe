package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/palpay/internal/domain"
)

type SettlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// List returns the stored settlement plan in the order it was produced.
func (r *SettlementRepository) List(ctx context.Context) ([]domain.SettlementInstruction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT debtor_id, creditor_id, amount FROM settlement_instructions ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	instructions := []domain.SettlementInstruction{}
	for rows.Next() {
		var s domain.SettlementInstruction
		if err := rows.Scan(&s.DebtorID, &s.CreditorID, &s.Amount); err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		instructions = append(instructions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return instructions, nil
}

func (r *SettlementRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, instructions []domain.SettlementInstruction) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM settlement_instructions`); err != nil {
		return fmt.Errorf("ReplaceAll: clear: %w", err)
	}
	if len(instructions) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO settlement_instructions (seq, debtor_id, creditor_id, amount) VALUES ($1, $2, $3, $4)`,
	)
	if err != nil {
		return fmt.Errorf("ReplaceAll: prepare: %w", err)
	}
	defer stmt.Close()

	for i, s := range instructions {
		if _, err := stmt.ExecContext(ctx, i, s.DebtorID, s.CreditorID, s.Amount); err != nil {
			return fmt.Errorf("ReplaceAll: insert #%d: %w", i, err)
		}
	}
	return nil
}
