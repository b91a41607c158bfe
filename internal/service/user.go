package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/auth"
	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/logging"
)

type RegisterRequest struct {
	Name           string
	Email          string
	Password       string
	PaymentDetails *string
}

type UserService struct {
	db         txBeginner
	users      userRepository
	audit      auditRepository
	bcryptCost int
}

func NewUserService(db txBeginner, users userRepository, audit auditRepository, bcryptCost int) *UserService {
	return &UserService{db: db, users: users, audit: audit, bcryptCost: bcryptCost}
}

func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, fmt.Errorf("Register: name: %w", domain.ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("Register: email: %w", domain.ErrInvalidRequest)
	}
	if len(req.Password) < auth.MinPasswordLength {
		return nil, fmt.Errorf("Register: password: %w", domain.ErrInvalidRequest)
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	u := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		Name:           name,
		PasswordHash:   hash,
		PaymentDetails: req.PaymentDetails,
		CreatedAt:      time.Now().UTC(),
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.users.Create(ctx, tx, u); err != nil {
			return err
		}
		return s.writeAudit(ctx, tx, domain.AuditActionCreated, u.ID, map[string]any{
			"email": u.Email,
			"name":  u.Name,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	logging.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate returns the user owning email when password matches. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Authenticate: %w", domain.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("Authenticate: %w", err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("Authenticate: %w", domain.ErrInvalidCredentials)
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, name string, paymentDetails *string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("UpdateProfile: name: %w", domain.ErrInvalidRequest)
	}

	var updated *domain.User
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		u, err := s.users.UpdateProfile(ctx, tx, id, name, paymentDetails)
		if err != nil {
			return err
		}
		updated = u
		return s.writeAudit(ctx, tx, domain.AuditActionUpdated, id, map[string]any{
			"name":            name,
			"payment_details": paymentDetails,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}

	logging.FromContext(ctx).Info("profile updated", "user_id", id)
	return updated, nil
}

// AuditTrail lists the recorded history of one entity.
func (s *UserService) AuditTrail(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.AuditEvent, error) {
	if !entityType.IsValid() {
		return nil, fmt.Errorf("AuditTrail: entity type %q: %w", entityType, domain.ErrInvalidRequest)
	}
	events, err := s.audit.List(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("AuditTrail: %w", err)
	}
	return events, nil
}

func (s *UserService) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *UserService) writeAudit(ctx context.Context, tx *sql.Tx, action domain.AuditAction, userID uuid.UUID, details any) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("writeAudit: marshal details: %w", err)
	}
	return s.audit.Create(ctx, tx, &domain.AuditEvent{
		ID:         uuid.New(),
		Action:     action,
		EntityType: domain.EntityTypeUser,
		EntityID:   userID,
		Actor:      auth.ActorFromContext(ctx),
		Details:    raw,
		CreatedAt:  time.Now().UTC(),
	})
}
