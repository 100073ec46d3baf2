package chathub

import "errors"

var (
	// ErrChatClosed is returned for a send on a session whose chat channel
	// is permanently closed (both feedbacks in, or canceled).
	ErrChatClosed = errors.New("chat is closed for this session")
	// ErrNotJoined is returned for a send before a join_room.
	ErrNotJoined = errors.New("join the session channel before sending")
)
