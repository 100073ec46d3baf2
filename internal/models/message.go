package models

import "gorm.io/gorm"

// Message represents a saved chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt
// fields; CreatedAt is the authoritative ordering key for history replay.
// Messages are created once on send and never mutated or deleted here.
type Message struct {
	gorm.Model

	// SessionID is the session whose channel the message was sent on.
	SessionID string `gorm:"type:uuid;not null;index:idx_session_msg" json:"sessionId"`
	// SenderID is the participant who sent the message.
	SenderID string `gorm:"type:text;not null;index:idx_session_msg" json:"senderId"`
	// ReceiverID is the other participant, derived at send time.
	ReceiverID string `gorm:"type:text;not null" json:"receiverId"`
	// Content is the text body. May be empty for media-only messages.
	Content string `gorm:"type:text" json:"content"`

	// MediaURL and MediaType point at externally stored media. The URL is
	// opaque to this service.
	MediaURL  *string `json:"mediaUrl,omitempty"`
	MediaType *string `json:"mediaType,omitempty"`
}

// MessageWithSender is the read model for history and broadcast: a Message
// joined with minimal sender display identity.
type MessageWithSender struct {
	Message
	SenderName   string `json:"senderName"`
	SenderAvatar string `json:"senderAvatar"`
}
