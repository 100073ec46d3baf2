package storage

import (
	"context"
	"errors"

	"skillswap/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SessionFilter selects which sessions FindSessionsByParticipant returns.
type SessionFilter string

const (
	// FilterPending lists requests waiting on the user as acceptor.
	FilterPending SessionFilter = "pending"
	// FilterConnections lists every non-pending session for the user.
	FilterConnections SessionFilter = "connections"
	FilterCompleted   SessionFilter = "completed"
	FilterCanceled    SessionFilter = "canceled"
)

// Sentinel errors surfaced by session mutations.
var (
	ErrNotFound             = errors.New("record not found")
	ErrConflict             = errors.New("session state changed concurrently")
	ErrSessionClosed        = errors.New("session is closed")
	ErrFeedbackAlreadyGiven = errors.New("feedback already given by this participant")
)

type Storage interface {
	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)

	CreateSession(session *models.Session) error
	GetSessionByID(id string) (*models.Session, error)
	FindSessionsByParticipant(userID string, filter SessionFilter) ([]models.Session, error)
	ListSessionsForRating(userID string) ([]models.Session, error)

	AcceptSession(id string) error
	RescheduleSession(id, newDate, newTime string) error
	ApplyFeedback(id, actingUserID string, rating *int, feedback *string) (*models.Session, error)
	CancelSession(id string) (*models.Session, error)

	SaveMessage(msg *models.Message) error
	GetMessageWithSender(id uint) (*models.MessageWithSender, error)
	GetChatHistory(sessionID string) ([]models.MessageWithSender, error)

	PublishChatEvent(sessionID string, ev models.ServerEvent) error
	SubscribeChatEvents() *redis.PubSub
}

// Service implements Storage over PostgreSQL (GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser persists a user row.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
