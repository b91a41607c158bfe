package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
)

const expenseColumns = `id, activity_id, payer_id, amount, description, created_at`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ActivityID, e.PayerID, e.Amount, e.Description, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id,
	)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return e, nil
}

// Delete removes the expense and returns the row as it was.
func (r *ExpenseRepository) Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Expense, error) {
	row := tx.QueryRowContext(ctx,
		`DELETE FROM expenses WHERE id = $1 RETURNING `+expenseColumns, id,
	)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Delete: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Delete: %w", err)
	}
	return e, nil
}

// List returns expenses oldest first, optionally restricted to one activity.
func (r *ExpenseRepository) List(ctx context.Context, activityID *uuid.UUID) ([]domain.Expense, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if activityID != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+expenseColumns+` FROM expenses WHERE activity_id = $1 ORDER BY created_at, id`,
			*activityID,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+expenseColumns+` FROM expenses ORDER BY created_at, id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return expenses, nil
}

// ListByActivityTx returns one activity's expenses oldest first, read
// inside tx.
func (r *ExpenseRepository) ListByActivityTx(ctx context.Context, tx *sql.Tx, activityID uuid.UUID) ([]domain.Expense, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE activity_id = $1 ORDER BY created_at, id`,
		activityID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByActivityTx: %w", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, fmt.Errorf("ListByActivityTx: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) ListAll(ctx context.Context, tx *sql.Tx) ([]domain.Expense, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return expenses, nil
}

func collectExpenses(rows *sql.Rows) ([]domain.Expense, error) {
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return expenses, nil
}

func scanExpense(s scanner) (*domain.Expense, error) {
	var e domain.Expense
	err := s.Scan(
		&e.ID, &e.ActivityID, &e.PayerID, &e.Amount, &e.Description, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
