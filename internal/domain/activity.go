package domain

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID           uuid.UUID
	Name         string
	CreatedBy    uuid.UUID
	Participants []uuid.UUID
	CreatedAt    time.Time
}

func (a *Activity) HasParticipant(userID uuid.UUID) bool {
	for _, p := range a.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// UniqueIDs returns ids with repeats removed, keeping first-seen order.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
