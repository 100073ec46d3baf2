// Package session enforces the session lifecycle state machine: who may
// accept, reschedule, or close a session, and when the chat channel locks.
package session

import (
	"errors"
	"fmt"
	"math"

	"skillswap/backend/internal/models"
	"skillswap/backend/internal/storage"
)

// Notifier is the fire-and-forget notification collaborator. Failures are
// the implementation's problem; lifecycle decisions never depend on them.
type Notifier interface {
	Notify(userID, message string)
}

// Service handles the business logic for session lifecycle transitions.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
}

// NewService creates a new lifecycle service.
func NewService(s storage.Storage, n Notifier) *Service {
	return &Service{Storage: s, Notifier: n}
}

// Request creates a new session request in status pending.
func (s *Service) Request(requestorID, acceptorID, date, timeOfDay, skill string) (*models.Session, error) {
	if requestorID == "" || acceptorID == "" || date == "" || timeOfDay == "" || skill == "" {
		return nil, ErrValidation
	}
	if requestorID == acceptorID {
		return nil, fmt.Errorf("%w: cannot request a session with yourself", ErrValidation)
	}

	session := &models.Session{
		RequestorID: requestorID,
		AcceptorID:  acceptorID,
		SessionDate: date,
		SessionTime: timeOfDay,
		Skill:       skill,
		Status:      models.StatusPending,
	}
	if err := s.Storage.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Accept moves a pending session to accepted. Only the designated acceptor
// may do so.
func (s *Service) Accept(sessionID, actingUserID string) (*models.Session, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.AcceptorID != actingUserID {
		return nil, ErrNotAuthorized
	}
	if session.Status != models.StatusPending {
		return nil, ErrAlreadyDecided
	}

	// Compare-and-set in the store; a concurrent decision loses here
	// rather than silently overwriting.
	if err := s.Storage.AcceptSession(sessionID); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}

	session.Status = models.StatusAccepted
	return session, nil
}

// Reschedule sets a new meeting date and time. Either participant may call
// it at any point before the session closes; the status is unchanged.
func (s *Service) Reschedule(sessionID, actingUserID, newDate, newTime string) (*models.Session, error) {
	if newDate == "" || newTime == "" {
		return nil, ErrValidation
	}

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(actingUserID) {
		return nil, ErrNotAuthorized
	}
	if session.SessionClosed {
		return nil, ErrSessionClosed
	}

	if err := s.Storage.RescheduleSession(sessionID, newDate, newTime); err != nil {
		if errors.Is(err, storage.ErrSessionClosed) {
			return nil, ErrSessionClosed
		}
		return nil, err
	}

	session.RescheduledDate = &newDate
	session.RescheduledTime = &newTime

	msg := fmt.Sprintf("You have a new meeting scheduled for %s at %s regarding the skill: %s.",
		newDate, newTime, session.Skill)
	s.notify(session.RequestorID, msg)
	s.notify(session.AcceptorID, msg)

	return session, nil
}

// MarkOutcome records a participant's final verdict on the session.
//
// completed: the acting side's rating and feedback are stored once, the
// status moves to completed immediately, and the session closes only when
// the second side's feedback lands. canceled: the session closes at once,
// no feedback required.
func (s *Service) MarkOutcome(sessionID, actingUserID, outcome string, rating *int, feedbackText *string) (*models.Session, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(actingUserID) {
		return nil, ErrNotAuthorized
	}

	switch outcome {
	case models.StatusCompleted:
		return s.markCompleted(session, actingUserID, rating, feedbackText)
	case models.StatusCanceled:
		return s.markCanceled(session)
	default:
		return nil, ErrInvalidOutcome
	}
}

func (s *Service) markCompleted(session *models.Session, actingUserID string, rating *int, feedbackText *string) (*models.Session, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}
	// Completion requires an accepted session; the second feedback arrives
	// on an already-completed one.
	if session.Status == models.StatusPending {
		return nil, ErrNotAccepted
	}
	if session.Status == models.StatusCanceled {
		return nil, ErrSessionClosed
	}

	updated, err := s.Storage.ApplyFeedback(session.ID, actingUserID, rating, feedbackText)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrSessionClosed):
			return nil, ErrSessionClosed
		case errors.Is(err, storage.ErrFeedbackAlreadyGiven):
			return nil, ErrFeedbackRepeated
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !updated.SessionClosed {
		other := updated.OtherParticipant(actingUserID)
		s.notify(other, fmt.Sprintf(
			"Your %s session was marked completed. Please share your feedback.", updated.Skill))
	}
	return updated, nil
}

func (s *Service) markCanceled(session *models.Session) (*models.Session, error) {
	// Completed is terminal; a completed session cannot become canceled.
	if session.Status == models.StatusCompleted {
		return nil, ErrAlreadyDecided
	}
	if session.SessionClosed {
		return nil, ErrSessionClosed
	}

	updated, err := s.Storage.CancelSession(session.ID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionClosed) {
			return nil, ErrSessionClosed
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	msg := fmt.Sprintf("Your %s session has been canceled.", updated.Skill)
	s.notify(updated.RequestorID, msg)
	s.notify(updated.AcceptorID, msg)

	return updated, nil
}

// AverageRating returns the mean of the ratings the user's partners gave
// them, rounded to two decimals. ok is false when no qualifying rating
// exists; callers must not read that as a zero rating.
func (s *Service) AverageRating(userID string) (float64, bool, error) {
	sessions, err := s.Storage.ListSessionsForRating(userID)
	if err != nil {
		return 0, false, err
	}

	total, count := 0, 0
	for _, session := range sessions {
		// Only the rating given by the other participant counts.
		if session.RequestorID == userID && session.RatingByAcceptor != nil {
			total += *session.RatingByAcceptor
			count++
		} else if session.AcceptorID == userID && session.RatingByRequestor != nil {
			total += *session.RatingByRequestor
			count++
		}
	}

	if count == 0 {
		return 0, false, nil
	}
	avg := math.Round(float64(total)/float64(count)*100) / 100
	return avg, true, nil
}

// Authorize resolves the session and verifies userID is a participant.
// Every chat join, send, and history read goes through this check.
func (s *Service) Authorize(sessionID, userID string) (*models.Session, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(userID) {
		return nil, ErrNotAuthorized
	}
	return session, nil
}

// PendingFor lists requests waiting on the user's decision.
func (s *Service) PendingFor(userID string) ([]models.Session, error) {
	return s.Storage.FindSessionsByParticipant(userID, storage.FilterPending)
}

// ConnectionsFor lists the user's non-pending sessions.
func (s *Service) ConnectionsFor(userID string) ([]models.Session, error) {
	return s.Storage.FindSessionsByParticipant(userID, storage.FilterConnections)
}

func (s *Service) CompletedFor(userID string) ([]models.Session, error) {
	return s.Storage.FindSessionsByParticipant(userID, storage.FilterCompleted)
}

func (s *Service) CanceledFor(userID string) ([]models.Session, error) {
	return s.Storage.FindSessionsByParticipant(userID, storage.FilterCanceled)
}

func (s *Service) getSession(sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrValidation
	}
	session, err := s.Storage.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *Service) notify(userID, message string) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(userID, message)
}
