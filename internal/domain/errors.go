package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidAmount      = errors.New("amount must be between 0 and 999999999999.99 with at most two decimal places")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownUser        = errors.New("unknown user")
	ErrEmptyParticipants  = errors.New("activity needs at least one participant")
	ErrNotParticipant     = errors.New("user is not a participant of the activity")
	ErrAlreadyParticipant = errors.New("user is already a participant of the activity")
	ErrSelfPayment        = errors.New("cannot record a payment to yourself")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
