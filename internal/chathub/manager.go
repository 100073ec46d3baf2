// Package chathub routes chat traffic between connected clients and their
// session channels. A single dispatcher goroutine owns all membership state;
// persistence and authorization run on the connection's own goroutine so one
// slow sender never stalls the hub.
package chathub

import (
	"log"

	"skillswap/backend/internal/models"
	"skillswap/backend/internal/session"
	"skillswap/backend/internal/storage"
)

// joinRequest asks the dispatcher to move a client into a session channel.
// Authorization has already happened by the time one is queued. done is
// closed once the membership change is applied.
type joinRequest struct {
	Client    Client
	SessionID string
	done      chan struct{}
}

// fanout is a broadcast received from the Redis backplane, addressed to the
// local members of one session channel.
type fanout struct {
	SessionID string
	Event     models.ServerEvent
}

// ManagerService is the chat hub: it tracks connected clients, the member
// set of every session channel, and fans broadcasts out to members.
type ManagerService struct {
	// Clients maps userID to the active connection. Mutated only inside
	// Run.
	Clients map[string]Client
	// Rooms maps a session id to its current channel members. Channels
	// are created lazily on first join and shrink on disconnect; an empty
	// channel is a harmless no-op broadcast target. Mutated only inside
	// Run.
	Rooms map[string]map[Client]struct{}

	RegisterCh   chan Client
	UnregisterCh chan Client

	joinCh   chan joinRequest
	pubSubCh chan fanout

	Storage  storage.Storage
	Sessions *session.Service
}

// NewManagerService builds a hub. The lifecycle service is an explicit
// dependency: every join and send is validated against it.
func NewManagerService(s storage.Storage, lifecycle *session.Service) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		Rooms:        make(map[string]map[Client]struct{}),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		joinCh:       make(chan joinRequest, 16),
		pubSubCh:     make(chan fanout, 256),
		Storage:      s,
		Sessions:     lifecycle,
	}
}

// Run is the hub dispatcher. It serializes membership mutation and fan-out,
// which keeps broadcasts from racing a mid-removal client.
func (m *ManagerService) Run() {
	m.startPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			// A reconnect displaces the previous connection, which
			// otherwise would linger in its channel until its socket
			// died on its own.
			if prev, ok := m.Clients[client.GetUserID()]; ok && prev != client {
				m.removeClient(prev)
			}
			m.Clients[client.GetUserID()] = client

		case client := <-m.UnregisterCh:
			m.removeClient(client)

		case req := <-m.joinCh:
			m.handleJoin(req)

		case f := <-m.pubSubCh:
			m.deliver(f.SessionID, f.Event)
		}
	}
}

// Join verifies the user is a participant of the session and hands the
// membership change to the dispatcher, blocking until it is applied. By the
// time Join returns, a send on the same connection sees the joined channel.
// A closed session still accepts joins so the participant can read history
// and submit late feedback; sends on it are rejected separately.
func (m *ManagerService) Join(c Client, sessionID string) error {
	if _, err := m.Sessions.Authorize(sessionID, c.GetUserID()); err != nil {
		return err
	}
	done := make(chan struct{})
	m.joinCh <- joinRequest{Client: c, SessionID: sessionID, done: done}
	<-done
	return nil
}

// Broadcast queues one event for delivery to the local members of a session
// channel. The Redis listener feeds received events through here.
func (m *ManagerService) Broadcast(sessionID string, ev models.ServerEvent) {
	m.pubSubCh <- fanout{SessionID: sessionID, Event: ev}
}

// HandleSend is the gateway path for one send_message frame. It validates
// the session state, persists the message, and publishes the enriched copy
// for fan-out. The returned ack tells the sender exactly what happened; a
// failed send is never silently swallowed.
func (m *ManagerService) HandleSend(c Client, ev models.ChatEvent) models.ServerEvent {
	senderID := c.GetUserID()
	ack := models.ServerEvent{Type: models.EventAck, SessionID: ev.SessionID}

	if ev.SessionID == "" {
		ack.Error = "conversationId is required"
		return ack
	}
	if c.GetSessionID() != ev.SessionID {
		ack.Error = ErrNotJoined.Error()
		return ack
	}

	sess, err := m.Sessions.Authorize(ev.SessionID, senderID)
	if err != nil {
		ack.Error = err.Error()
		return ack
	}
	if sess.SessionClosed {
		ack.Error = ErrChatClosed.Error()
		return ack
	}

	msg := &models.Message{
		SessionID:  ev.SessionID,
		SenderID:   senderID,
		ReceiverID: sess.OtherParticipant(senderID),
		Content:    ev.Content,
		MediaURL:   ev.MediaURL,
		MediaType:  ev.MediaType,
	}
	if err := m.Storage.SaveMessage(msg); err != nil {
		ack.Error = "failed to store message"
		return ack
	}

	// Re-read the persisted row joined with sender identity, so every
	// recipient gets the same enriched payload.
	enriched, err := m.Storage.GetMessageWithSender(msg.ID)
	if err != nil {
		log.Printf("ERROR: Failed to enrich message %d: %v", msg.ID, err)
		ack.Error = "failed to load stored message"
		return ack
	}

	out := models.ServerEvent{
		Type:      models.EventReceiveMessage,
		SessionID: ev.SessionID,
		Message:   enriched,
	}
	if err := m.Storage.PublishChatEvent(ev.SessionID, out); err != nil {
		log.Printf("ERROR: Failed to publish message %d: %v", msg.ID, err)
		ack.Error = "message stored but not broadcast"
		return ack
	}

	ack.OK = true
	return ack
}

// History returns the session's messages for a participant, oldest first.
func (m *ManagerService) History(sessionID, requestingUserID string) ([]models.MessageWithSender, error) {
	if _, err := m.Sessions.Authorize(sessionID, requestingUserID); err != nil {
		return nil, err
	}
	return m.Storage.GetChatHistory(sessionID)
}

func (m *ManagerService) handleJoin(req joinRequest) {
	// Idempotent: re-joining the same channel is a no-op, joining another
	// channel moves the client.
	if prev := req.Client.GetSessionID(); prev != "" && prev != req.SessionID {
		m.leaveRoom(req.Client, prev)
	}

	members, ok := m.Rooms[req.SessionID]
	if !ok {
		members = make(map[Client]struct{})
		m.Rooms[req.SessionID] = members
	}
	members[req.Client] = struct{}{}
	req.Client.SetSessionID(req.SessionID)
	close(req.done)

	log.Printf("User %s joined chat room %s", req.Client.GetUserID(), req.SessionID)
}

// deliver fans one event out to the local members of a session channel.
// A member whose send buffer is full is dropped from the hub instead of
// blocking everyone else; per-recipient failure stays isolated.
func (m *ManagerService) deliver(sessionID string, ev models.ServerEvent) {
	for member := range m.Rooms[sessionID] {
		select {
		case member.GetSendChannel() <- ev:
		default:
			log.Printf("WARNING: dropping slow client %s", member.GetUserID())
			m.removeClient(member)
		}
	}
}

func (m *ManagerService) removeClient(client Client) {
	userID := client.GetUserID()
	if current, ok := m.Clients[userID]; ok && current == client {
		delete(m.Clients, userID)
	}
	if roomID := client.GetSessionID(); roomID != "" {
		m.leaveRoom(client, roomID)
	}
	client.Close()
}

func (m *ManagerService) leaveRoom(client Client, sessionID string) {
	members, ok := m.Rooms[sessionID]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(m.Rooms, sessionID)
	}
}
