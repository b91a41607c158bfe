package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password of every seeded user.
const TestPassword = "password123"

func SeedTestUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

// SeedActivity inserts an activity directly, bypassing the ledger service,
// so no balances are recomputed.
func SeedActivity(t *testing.T, db *sql.DB, name string, createdBy uuid.UUID, participants ...uuid.UUID) *domain.Activity {
	t.Helper()

	a := &domain.Activity{
		ID:           uuid.New(),
		Name:         name,
		CreatedBy:    createdBy,
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO activities (id, name, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Name, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed activity %s: %v", name, err)
	}
	for i, p := range participants {
		_, err := db.Exec(
			`INSERT INTO activity_participants (activity_id, user_id, position) VALUES ($1, $2, $3)`,
			a.ID, p, i,
		)
		if err != nil {
			t.Fatalf("seed participant %s: %v", p, err)
		}
	}
	return a
}

func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

// Amount parses a decimal literal and fails the test on malformed input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}
	return d
}
