package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrForbidden          = &AppError{http.StatusForbidden, "FORBIDDEN", "You can only change your own profile"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount      = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be between 0 and 999999999999.99 with at most two decimal places"}
	ErrEmailTaken         = &AppError{http.StatusConflict, "EMAIL_TAKEN", "Email is already registered"}
	ErrUnknownUser        = &AppError{http.StatusUnprocessableEntity, "UNKNOWN_USER", "One or more users do not exist"}
	ErrEmptyParticipants  = &AppError{http.StatusUnprocessableEntity, "EMPTY_PARTICIPANTS", "Activity needs at least one participant"}
	ErrNotParticipant     = &AppError{http.StatusUnprocessableEntity, "NOT_A_PARTICIPANT", "Payer is not a participant of the activity"}
	ErrAlreadyParticipant = &AppError{http.StatusConflict, "ALREADY_PARTICIPANT", "User is already a participant of the activity"}
	ErrSelfPayment        = &AppError{http.StatusUnprocessableEntity, "SELF_PAYMENT_NOT_ALLOWED", "Cannot record a payment to yourself"}
	ErrActivityNotFound   = &AppError{http.StatusUnprocessableEntity, "ACTIVITY_NOT_FOUND", "Activity not found"}

	ErrMissingIdempotencyKey = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
)
