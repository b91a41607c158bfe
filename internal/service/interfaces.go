package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
)

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type userRepository interface {
	Create(ctx context.Context, tx *sql.Tx, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, tx *sql.Tx, id uuid.UUID, name string, paymentDetails *string) (*domain.User, error)
}

type auditRepository interface {
	Create(ctx context.Context, tx *sql.Tx, e *domain.AuditEvent) error
	List(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.AuditEvent, error)
}
