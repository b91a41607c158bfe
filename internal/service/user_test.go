package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/palpay/internal/auth"
	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/repository"
	"github.com/josh-kwaku/palpay/internal/service"
	"github.com/josh-kwaku/palpay/internal/testutil"
)

func setupUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()
	return service.NewUserService(
		repository.NewDB(db),
		repository.NewUserRepository(db),
		repository.NewAuditRepository(db),
		bcrypt.MinCost,
	)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupUserService(t, db)
	ctx := context.Background()

	details := "IBAN DE89 3704 0044 0532 0130 00"
	u, err := svc.Register(ctx, service.RegisterRequest{
		Name:           "Alice",
		Email:          " Alice@Test.com ",
		Password:       "hunter2hunter2",
		PaymentDetails: &details,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@test.com", u.Email)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "alice@test.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.PaymentDetails)
	assert.Equal(t, details, *got.PaymentDetails)

	_, err = svc.Authenticate(ctx, "alice@test.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@test.com", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	events, err := svc.AuditTrail(ctx, domain.EntityTypeUser, u.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, auth.SystemActor, events[0].Actor)
}

func TestRegister_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupUserService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterRequest{Name: "Bob", Email: "bob@test.com", Password: "longenough"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     service.RegisterRequest
		wantErr error
	}{
		{
			name:    "duplicate email",
			req:     service.RegisterRequest{Name: "Bobby", Email: "BOB@test.com", Password: "longenough"},
			wantErr: domain.ErrEmailTaken,
		},
		{
			name:    "malformed email",
			req:     service.RegisterRequest{Name: "Carol", Email: "carol", Password: "longenough"},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "short password",
			req:     service.RegisterRequest{Name: "Carol", Email: "carol@test.com", Password: "short"},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "missing name",
			req:     service.RegisterRequest{Email: "carol@test.com", Password: "longenough"},
			wantErr: domain.ErrInvalidRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupUserService(t, db)
	u := testutil.SeedTestUser(t, db, "dave@test.com", "Dave")
	ctx := auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: u.ID, Email: u.Email})

	details := "paypal.me/dave"
	updated, err := svc.UpdateProfile(ctx, u.ID, "David", &details)
	require.NoError(t, err)
	assert.Equal(t, "David", updated.Name)
	require.NotNil(t, updated.PaymentDetails)
	assert.Equal(t, details, *updated.PaymentDetails)

	events, err := svc.AuditTrail(ctx, domain.EntityTypeUser, u.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.AuditActionUpdated, events[0].Action)
	assert.Equal(t, u.ID.String(), events[0].Actor)

	_, err = svc.UpdateProfile(ctx, uuid.New(), "Ghost", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateProfile(ctx, u.ID, " ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestAuditTrail_RejectsUnknownEntityType(t *testing.T) {
	svc := service.NewUserService(nil, nil, nil, bcrypt.MinCost)
	_, err := svc.AuditTrail(context.Background(), domain.EntityType("account"), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
