package chathub

import "skillswap/backend/internal/models"

// Client is the interface for any type of chat connection. It abstracts the
// underlying transport, allowing the hub to manage different client types
// uniformly.
type Client interface {
	// GetUserID returns the authenticated user behind the connection.
	GetUserID() string
	// GetSessionID returns the session channel the client has joined, or
	// "" before any join.
	GetSessionID() string
	// SetSessionID records the joined session channel. Called by the hub
	// dispatcher only.
	SetSessionID(string)

	// GetSendChannel returns the channel the hub writes outbound frames
	// to for this client. It is a send-only channel.
	GetSendChannel() chan<- models.ServerEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection. It must be idempotent:
	// the hub closes a slow client on drop and again when the read pump
	// unregisters it.
	Close()
}
