package storage

import (
	"errors"
	"log"

	"skillswap/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateSession persists a new session in status pending.
func (s *Service) CreateSession(session *models.Session) error {
	return s.DB.Create(session).Error
}

func (s *Service) GetSessionByID(id string) (*models.Session, error) {
	var session models.Session
	err := s.DB.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get session %s: %v", id, err)
		return nil, err
	}
	return &session, nil
}

// FindSessionsByParticipant lists the user's sessions matching the filter,
// oldest first.
func (s *Service) FindSessionsByParticipant(userID string, filter SessionFilter) ([]models.Session, error) {
	q := s.DB.Model(&models.Session{}).Order("created_at asc")

	switch filter {
	case FilterPending:
		// Pending requests are shown to the acceptor only.
		q = q.Where("acceptor_id = ? AND status = ?", userID, models.StatusPending)
	case FilterConnections:
		q = q.Where("(requestor_id = ? OR acceptor_id = ?) AND status <> ?",
			userID, userID, models.StatusPending)
	case FilterCompleted:
		q = q.Where("(requestor_id = ? OR acceptor_id = ?) AND status = ?",
			userID, userID, models.StatusCompleted)
	case FilterCanceled:
		q = q.Where("(requestor_id = ? OR acceptor_id = ?) AND status = ?",
			userID, userID, models.StatusCanceled)
	default:
		q = q.Where("requestor_id = ? OR acceptor_id = ?", userID, userID)
	}

	var sessions []models.Session
	if err := q.Find(&sessions).Error; err != nil {
		log.Printf("ERROR: Failed to list sessions for user %s: %v", userID, err)
		return nil, err
	}
	return sessions, nil
}

// ListSessionsForRating returns every session the user participates in,
// regardless of status. Used by the average-rating scan.
func (s *Service) ListSessionsForRating(userID string) ([]models.Session, error) {
	var sessions []models.Session
	err := s.DB.
		Where("requestor_id = ? OR acceptor_id = ?", userID, userID).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// AcceptSession moves a pending session to accepted with a compare-and-set,
// so two near-simultaneous decisions cannot both win.
func (s *Service) AcceptSession(id string) error {
	res := s.DB.Model(&models.Session{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", models.StatusAccepted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// RescheduleSession sets the reschedule override fields. Rejected once the
// session is closed.
func (s *Service) RescheduleSession(id, newDate, newTime string) error {
	res := s.DB.Model(&models.Session{}).
		Where("id = ? AND session_closed = ?", id, false).
		Updates(map[string]interface{}{
			"rescheduled_date": newDate,
			"rescheduled_time": newTime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSessionClosed
	}
	return nil
}

// ApplyFeedback records one participant's completion feedback under a row
// lock, so both participants submitting near-simultaneously cannot lose an
// update. The session moves to completed immediately; SessionClosed flips
// only when the second side's feedback lands.
func (s *Service) ApplyFeedback(id, actingUserID string, rating *int, feedback *string) (*models.Session, error) {
	var session models.Session

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if session.SessionClosed {
			return ErrSessionClosed
		}
		if session.FeedbackGivenBy(actingUserID) {
			return ErrFeedbackAlreadyGiven
		}

		if session.RequestorID == actingUserID {
			session.RatingByRequestor = rating
			session.FeedbackByRequestor = feedback
			session.FeedbackGivenByRequestor = true
		} else {
			session.RatingByAcceptor = rating
			session.FeedbackByAcceptor = feedback
			session.FeedbackGivenByAcceptor = true
		}

		session.Status = models.StatusCompleted
		if session.FeedbackGivenByRequestor && session.FeedbackGivenByAcceptor {
			session.SessionClosed = true
		}

		return tx.Save(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CancelSession moves the session to canceled and closes it unconditionally.
func (s *Service) CancelSession(id string) (*models.Session, error) {
	var session models.Session

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if session.SessionClosed {
			return ErrSessionClosed
		}

		session.Status = models.StatusCanceled
		session.SessionClosed = true
		return tx.Save(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}
