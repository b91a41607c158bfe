package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/domain"
)

const activityColumns = `id, name, created_by, created_at`

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts the activity and its participants. Participant order is
// preserved.
func (r *ActivityRepository) Create(ctx context.Context, tx *sql.Tx, a *domain.Activity) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO activities (id, name, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Name, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	for i, p := range a.Participants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activity_participants (activity_id, user_id, position) VALUES ($1, $2, $3)`,
			a.ID, p, i,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("Create: participant %s: %w", p, domain.ErrAlreadyParticipant)
			}
			return fmt.Errorf("Create: participant %s: %w", p, err)
		}
	}
	return nil
}

func (r *ActivityRepository) AddParticipant(ctx context.Context, tx *sql.Tx, activityID, userID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO activity_participants (activity_id, user_id, position)
		SELECT $1::uuid, $2::uuid, COALESCE(MAX(position), -1) + 1
		FROM activity_participants WHERE activity_id = $1::uuid`,
		activityID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("AddParticipant: %w", domain.ErrAlreadyParticipant)
		}
		return fmt.Errorf("AddParticipant: %w", err)
	}
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	a, err := getActivity(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

// GetByIDTx reads the activity through tx so writes validated against it
// see the same state they commit on top of.
func (r *ActivityRepository) GetByIDTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Activity, error) {
	a, err := getActivity(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("GetByIDTx: %w", err)
	}
	return a, nil
}

func (r *ActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	activities, err := listActivities(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return activities, nil
}

func (r *ActivityRepository) ListAll(ctx context.Context, tx *sql.Tx) ([]domain.Activity, error) {
	activities, err := listActivities(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return activities, nil
}

func getActivity(ctx context.Context, q querier, id uuid.UUID) (*domain.Activity, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id,
	)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT user_id FROM activity_participants WHERE activity_id = $1 ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("participants: %w", err)
	}
	defer rows.Close()

	a.Participants = []uuid.UUID{}
	for rows.Next() {
		var p uuid.UUID
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("participants: scan: %w", err)
		}
		a.Participants = append(a.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("participants: rows: %w", err)
	}
	return a, nil
}

func listActivities(ctx context.Context, q querier) ([]domain.Activity, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []domain.Activity{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		a.Participants = []uuid.UUID{}
		index[a.ID] = len(activities)
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	prows, err := q.QueryContext(ctx,
		`SELECT activity_id, user_id FROM activity_participants ORDER BY activity_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("participants: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var activityID, userID uuid.UUID
		if err := prows.Scan(&activityID, &userID); err != nil {
			return nil, fmt.Errorf("participants: scan: %w", err)
		}
		if i, ok := index[activityID]; ok {
			activities[i].Participants = append(activities[i].Participants, userID)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("participants: rows: %w", err)
	}
	return activities, nil
}

func scanActivity(s scanner) (*domain.Activity, error) {
	var a domain.Activity
	if err := s.Scan(&a.ID, &a.Name, &a.CreatedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
