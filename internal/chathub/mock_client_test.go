package chathub_test

import (
	"sync"

	"skillswap/backend/internal/models"
)

// MockClient implements chathub.Client for hub tests. RecvChannel captures
// everything the hub delivers to the client. The mutex mirrors the real
// client: the dispatcher writes the session id and close state while the
// test goroutine reads them.
type MockClient struct {
	userID      string
	RecvChannel chan models.ServerEvent

	mu        sync.Mutex
	sessionID string
	closed    bool
}

func newMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.ServerEvent, 10),
	}
}

func (c *MockClient) GetUserID() string { return c.userID }

func (c *MockClient) GetSessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *MockClient) SetSessionID(id string) {
	c.mu.Lock()
	c.sessionID = id
	c.mu.Unlock()
}

func (c *MockClient) GetSendChannel() chan<- models.ServerEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *MockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
