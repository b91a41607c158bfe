package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
)

const paymentColumns = `id, from_user_id, to_user_id, amount, note, created_at`

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.FromUserID, p.ToUserID, p.Amount, p.Note, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id,
	)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return p, nil
}

// Delete removes the payment and returns the row as it was.
func (r *PaymentRepository) Delete(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Payment, error) {
	row := tx.QueryRowContext(ctx,
		`DELETE FROM payments WHERE id = $1 RETURNING `+paymentColumns, id,
	)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Delete: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Delete: %w", err)
	}
	return p, nil
}

// List returns payments oldest first. A non-nil userID keeps only payments
// that user sent or received.
func (r *PaymentRepository) List(ctx context.Context, userID *uuid.UUID) ([]domain.Payment, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if userID != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+paymentColumns+` FROM payments
			WHERE from_user_id = $1 OR to_user_id = $1 ORDER BY created_at, id`,
			*userID,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+paymentColumns+` FROM payments ORDER BY created_at, id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	payments, err := collectPayments(rows)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) ListAll(ctx context.Context, tx *sql.Tx) ([]domain.Payment, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	payments, err := collectPayments(rows)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return payments, nil
}

func collectPayments(rows *sql.Rows) ([]domain.Payment, error) {
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return payments, nil
}

func scanPayment(s scanner) (*domain.Payment, error) {
	var p domain.Payment
	err := s.Scan(
		&p.ID, &p.FromUserID, &p.ToUserID, &p.Amount, &p.Note, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
