package session

import "errors"

// Lifecycle error vocabulary. Handlers map these onto HTTP statuses; the
// chat hub maps them onto ack reasons.
var (
	ErrValidation       = errors.New("missing or malformed session fields")
	ErrNotFound         = errors.New("session not found")
	ErrNotAuthorized    = errors.New("user not authorized for this session")
	ErrAlreadyDecided   = errors.New("session request already decided")
	ErrSessionClosed    = errors.New("session is closed")
	ErrFeedbackRepeated = errors.New("feedback already given for this session")
	ErrInvalidOutcome   = errors.New("outcome must be completed or canceled")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrNotAccepted      = errors.New("session must be accepted before completion")
)
