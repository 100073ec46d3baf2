package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session statuses. Pending is the only initial state; Completed and
// Canceled are terminal.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// Session represents one scheduled skill-exchange engagement between exactly
// two users. RequestorID and AcceptorID are fixed at creation and never
// reassigned; only the acceptor may accept a pending request.
type Session struct {
	// ID is the unique identifier for the session (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// RequestorID is the user who sent the session request.
	RequestorID string `gorm:"type:text;not null;index" json:"requestorId"`
	// AcceptorID is the user the request was sent to.
	AcceptorID string `gorm:"type:text;not null;index" json:"acceptorId"`

	// SessionDate and SessionTime hold the originally proposed schedule.
	SessionDate string `gorm:"not null" json:"sessionDate"`
	SessionTime string `gorm:"not null" json:"sessionTime"`
	// RescheduledDate and RescheduledTime override the original proposal
	// when either participant reschedules. Nil until then.
	RescheduledDate *string `json:"rescheduledDate,omitempty"`
	RescheduledTime *string `json:"rescheduledTime,omitempty"`

	// Skill is the free-text label of the skill being exchanged.
	Skill string `gorm:"not null" json:"skill"`

	Status string `gorm:"not null;default:'pending';index" json:"status"`

	// Per-participant feedback. A side's fields are written at most once,
	// when that participant marks the session completed.
	RatingByRequestor        *int    `json:"ratingByRequestor,omitempty"`
	RatingByAcceptor         *int    `json:"ratingByAcceptor,omitempty"`
	FeedbackByRequestor      *string `json:"feedbackByRequestor,omitempty"`
	FeedbackByAcceptor       *string `json:"feedbackByAcceptor,omitempty"`
	FeedbackGivenByRequestor bool    `json:"feedbackGivenByRequestor"`
	FeedbackGivenByAcceptor  bool    `json:"feedbackGivenByAcceptor"`

	// SessionClosed becomes true once both feedbacks are in, or on
	// cancellation. A closed session never accepts another chat message.
	SessionClosed bool `json:"sessionClosed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID for the session if one is not already set.
func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether userID is one of the session's two users.
func (s *Session) HasParticipant(userID string) bool {
	return s.RequestorID == userID || s.AcceptorID == userID
}

// OtherParticipant returns the participant that is not userID. Callers are
// expected to check HasParticipant first; for a non-participant the
// requestor is returned.
func (s *Session) OtherParticipant(userID string) string {
	if s.RequestorID == userID {
		return s.AcceptorID
	}
	return s.RequestorID
}

// IsTerminal reports whether no further status transitions are allowed.
func (s *Session) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCanceled
}

// FeedbackGivenBy reports whether userID has already submitted feedback.
func (s *Session) FeedbackGivenBy(userID string) bool {
	if s.RequestorID == userID {
		return s.FeedbackGivenByRequestor
	}
	return s.FeedbackGivenByAcceptor
}
