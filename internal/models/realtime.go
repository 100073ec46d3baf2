package models

// Wire frames exchanged over a chat connection.

// Inbound event types sent by clients.
const (
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
)

// Outbound event types emitted by the server.
const (
	EventReceiveMessage = "receive_message"
	EventAck            = "ack"
)

// ChatEvent is an inbound client frame. For join_room only SessionID is
// required; for send_message the SenderID is overwritten server-side with
// the authenticated connection's user.
type ChatEvent struct {
	Type      string  `json:"type"`
	SessionID string  `json:"conversationId"`
	SenderID  string  `json:"sender_id"`
	Content   string  `json:"content"`
	MediaURL  *string `json:"mediaUrl,omitempty"`
	MediaType *string `json:"mediaType,omitempty"`
}

// ServerEvent is an outbound frame. Exactly one of Message or Ack fields is
// populated depending on Type.
type ServerEvent struct {
	Type      string             `json:"type"`
	SessionID string             `json:"conversationId,omitempty"`
	Message   *MessageWithSender `json:"message,omitempty"`

	// Ack fields: every send_message is answered with ok or a reason, so
	// failures are never silently dropped.
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}
