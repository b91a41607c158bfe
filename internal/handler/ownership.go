package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/josh-kwaku/palpay/internal/auth"
)

// ownerFromPath returns the {id} path value when it names the caller.
func ownerFromPath(r *http.Request) (uuid.UUID, *AppError) {
	authUserID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, ErrMissingToken
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, ErrResourceNotFound
	}

	if userID != authUserID {
		return uuid.Nil, ErrForbidden
	}

	return userID, nil
}

// callerID returns the authenticated user, answering 401 when there is none.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return uuid.Nil, false
	}
	return id, true
}
