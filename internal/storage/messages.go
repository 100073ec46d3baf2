package storage

import (
	"encoding/json"
	"errors"
	"log"

	"skillswap/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const chatChannelPrefix = "chat:"

// ChatChannel returns the Redis pub/sub channel name for a session.
func ChatChannel(sessionID string) string {
	return chatChannelPrefix + sessionID
}

// SaveMessage persists a chat message. The generated ID and CreatedAt are
// written back into msg so the caller can re-read the enriched row.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for session %s: %v", msg.SessionID, err)
		return err
	}
	return nil
}

// GetMessageWithSender loads one message joined with the sender's display
// identity.
func (s *Service) GetMessageWithSender(id uint) (*models.MessageWithSender, error) {
	var out models.MessageWithSender
	err := s.DB.Table("messages").
		Select("messages.*, users.name AS sender_name, users.profile_picture AS sender_avatar").
		Joins("LEFT JOIN users ON users.id = messages.sender_id").
		Where("messages.id = ? AND messages.deleted_at IS NULL", id).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, ErrNotFound
	}
	return &out, nil
}

// GetChatHistory returns a session's messages ascending by creation time,
// each joined with sender name and avatar for display.
func (s *Service) GetChatHistory(sessionID string) ([]models.MessageWithSender, error) {
	var history []models.MessageWithSender
	err := s.DB.Table("messages").
		Select("messages.*, users.name AS sender_name, users.profile_picture AS sender_avatar").
		Joins("LEFT JOIN users ON users.id = messages.sender_id").
		Where("messages.session_id = ? AND messages.deleted_at IS NULL", sessionID).
		Order("messages.created_at asc").
		Scan(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return history, nil
		}
		log.Printf("ERROR: Failed to get chat history for session %s: %v", sessionID, err)
		return nil, err
	}
	return history, nil
}

// PublishChatEvent publishes an event on the session's Redis channel so
// every server instance can fan it out to its local connections.
func (s *Service) PublishChatEvent(sessionID string, ev models.ServerEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, ChatChannel(sessionID), payload).Err()
}

// SubscribeChatEvents subscribes to every session chat channel.
func (s *Service) SubscribeChatEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, chatChannelPrefix+"*")
}
