package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/palpay/internal/domain"
	"github.com/josh-kwaku/palpay/internal/repository"
	"github.com/josh-kwaku/palpay/internal/testutil"
)

func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx) error) error {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func TestRepositories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	t.Run("duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		users := repository.NewUserRepository(db)
		testutil.SeedTestUser(t, db, "taken@test.com", "First")

		err := inTx(t, db, func(tx *sql.Tx) error {
			return users.Create(ctx, tx, &domain.User{
				ID:           uuid.New(),
				Email:        "taken@test.com",
				Name:         "Second",
				PasswordHash: "x",
				CreatedAt:    time.Now().UTC(),
			})
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("count existing ignores unknown ids", func(t *testing.T) {
		users := repository.NewUserRepository(db)
		a := testutil.SeedTestUser(t, db, "count-a@test.com", "A")
		b := testutil.SeedTestUser(t, db, "count-b@test.com", "B")

		var n int
		require.NoError(t, inTx(t, db, func(tx *sql.Tx) error {
			var err error
			n, err = users.CountExisting(ctx, tx, []uuid.UUID{a.ID, b.ID, uuid.New()})
			return err
		}))
		assert.Equal(t, 2, n)
	})

	t.Run("participants keep insertion order and reject duplicates", func(t *testing.T) {
		activities := repository.NewActivityRepository(db)
		a := testutil.SeedTestUser(t, db, "order-a@test.com", "A")
		b := testutil.SeedTestUser(t, db, "order-b@test.com", "B")
		c := testutil.SeedTestUser(t, db, "order-c@test.com", "C")
		act := testutil.SeedActivity(t, db, "Dinner", a.ID, c.ID, a.ID)

		require.NoError(t, inTx(t, db, func(tx *sql.Tx) error {
			return activities.AddParticipant(ctx, tx, act.ID, b.ID)
		}))
		err := inTx(t, db, func(tx *sql.Tx) error {
			return activities.AddParticipant(ctx, tx, act.ID, b.ID)
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyParticipant)

		got, err := activities.GetByID(ctx, act.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, got.Participants)

		_, err = activities.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("balances are replaced wholesale and filtered by user", func(t *testing.T) {
		balances := repository.NewBalanceRepository(db)
		a := testutil.SeedTestUser(t, db, "bal-a@test.com", "A")
		b := testutil.SeedTestUser(t, db, "bal-b@test.com", "B")
		c := testutil.SeedTestUser(t, db, "bal-c@test.com", "C")

		require.NoError(t, inTx(t, db, func(tx *sql.Tx) error {
			return balances.ReplaceAll(ctx, tx, []domain.Balance{
				{DebtorID: a.ID, CreditorID: b.ID, Amount: testutil.Amount(t, "10.00")},
			})
		}))
		require.NoError(t, inTx(t, db, func(tx *sql.Tx) error {
			return balances.ReplaceAll(ctx, tx, []domain.Balance{
				{DebtorID: b.ID, CreditorID: c.ID, Amount: testutil.Amount(t, "4.50")},
			})
		}))

		all, err := balances.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, b.ID, all[0].DebtorID)
		assert.True(t, all[0].Amount.Equal(testutil.Amount(t, "4.5")))

		forA, err := balances.List(ctx, &a.ID)
		require.NoError(t, err)
		assert.Empty(t, forA)
	})

	t.Run("settlements keep plan order", func(t *testing.T) {
		settlements := repository.NewSettlementRepository(db)
		a := testutil.SeedTestUser(t, db, "set-a@test.com", "A")
		b := testutil.SeedTestUser(t, db, "set-b@test.com", "B")
		c := testutil.SeedTestUser(t, db, "set-c@test.com", "C")

		plan := []domain.SettlementInstruction{
			{DebtorID: c.ID, CreditorID: a.ID, Amount: testutil.Amount(t, "7")},
			{DebtorID: b.ID, CreditorID: a.ID, Amount: testutil.Amount(t, "3")},
		}
		require.NoError(t, inTx(t, db, func(tx *sql.Tx) error {
			return settlements.ReplaceAll(ctx, tx, plan)
		}))

		got, err := settlements.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, c.ID, got[0].DebtorID)
		assert.Equal(t, b.ID, got[1].DebtorID)
	})

	t.Run("ledger lock is held per transaction", func(t *testing.T) {
		ledgerDB := repository.NewDB(db)
		require.NoError(t, inTx(t, db, func(tx *sql.Tx) error {
			return ledgerDB.LockLedger(ctx, tx)
		}))
		require.NoError(t, inTx(t, db, func(tx *sql.Tx) error {
			return ledgerDB.LockLedger(ctx, tx)
		}))
		assert.NoError(t, ledgerDB.Ping(ctx))
	})
}

func TestIdempotencyRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	store := repository.NewIdempotencyRepository(db)
	user := testutil.SeedTestUser(t, db, "idem@test.com", "Idem")
	now := time.Now().UTC()

	first := &repository.CachedResponse{
		Key:          "key-1",
		UserID:       user.ID,
		RequestHash:  "hash-a",
		StatusCode:   201,
		ResponseBody: []byte(`{"success":true}`),
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, first))

	got, err := store.Lookup(ctx, "key-1", user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-a", got.RequestHash)
	assert.Equal(t, 201, got.StatusCode)
	assert.JSONEq(t, `{"success":true}`, string(got.ResponseBody))

	t.Run("live entry is not overwritten", func(t *testing.T) {
		second := *first
		second.RequestHash = "hash-b"
		require.NoError(t, store.Save(ctx, &second))

		got, err := store.Lookup(ctx, "key-1", user.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash-a", got.RequestHash)
	})

	t.Run("other users miss", func(t *testing.T) {
		got, err := store.Lookup(ctx, "key-1", uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired entries are invisible and purged", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &repository.CachedResponse{
			Key:          "key-old",
			UserID:       user.ID,
			RequestHash:  "hash-old",
			StatusCode:   201,
			ResponseBody: []byte(`{}`),
			CreatedAt:    now.Add(-48 * time.Hour),
			ExpiresAt:    now.Add(-24 * time.Hour),
		}))

		got, err := store.Lookup(ctx, "key-old", user.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		n, err := store.Purge(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, 1, testutil.CountRows(t, db, "idempotency_cache"))
	})
}
