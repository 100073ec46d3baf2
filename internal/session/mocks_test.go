package session_test

import (
	"sync"

	"skillswap/backend/internal/models"
	"skillswap/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock implementation of the storage.Storage
// interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) CreateSession(session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockStorage) GetSessionByID(id string) (*models.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockStorage) FindSessionsByParticipant(userID string, filter storage.SessionFilter) ([]models.Session, error) {
	args := m.Called(userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockStorage) ListSessionsForRating(userID string) ([]models.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockStorage) AcceptSession(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) RescheduleSession(id, newDate, newTime string) error {
	args := m.Called(id, newDate, newTime)
	return args.Error(0)
}

func (m *MockStorage) ApplyFeedback(id, actingUserID string, rating *int, feedback *string) (*models.Session, error) {
	args := m.Called(id, actingUserID, rating, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockStorage) CancelSession(id string) (*models.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessageWithSender(id uint) (*models.MessageWithSender, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageWithSender), args.Error(1)
}

func (m *MockStorage) GetChatHistory(sessionID string) ([]models.MessageWithSender, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MessageWithSender), args.Error(1)
}

func (m *MockStorage) PublishChatEvent(sessionID string, ev models.ServerEvent) error {
	args := m.Called(sessionID, ev)
	return args.Error(0)
}

func (m *MockStorage) SubscribeChatEvents() *redis.PubSub {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*redis.PubSub)
}

// MockNotifier records every notification sent during a test.
type MockNotifier struct {
	mu    sync.Mutex
	Calls []string
}

func (n *MockNotifier) Notify(userID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, userID+": "+message)
}

func (n *MockNotifier) NotifiedUsers() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	users := make([]string, 0, len(n.Calls))
	for _, call := range n.Calls {
		for i := 0; i < len(call); i++ {
			if call[i] == ':' {
				users = append(users, call[:i])
				break
			}
		}
	}
	return users
}
