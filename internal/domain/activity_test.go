package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUniqueIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Equal(t, []uuid.UUID{a, b, c}, UniqueIDs([]uuid.UUID{a, b, a, c, b}))
	assert.Empty(t, UniqueIDs(nil))
}

func TestActivity_HasParticipant(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	act := &Activity{Participants: []uuid.UUID{a}}

	assert.True(t, act.HasParticipant(a))
	assert.False(t, act.HasParticipant(b))
}
