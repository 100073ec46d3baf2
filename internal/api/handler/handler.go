package handler

import (
	"skillswap/backend/internal/chathub"
	"skillswap/backend/internal/media"
	"skillswap/backend/internal/session"
)

// Handler wires the HTTP edge to the chat hub and lifecycle service. The hub
// is an injected dependency, never a package-level global.
type Handler struct {
	Hub       *chathub.ManagerService
	Sessions  *session.Service
	Media     media.Store
	jwtSecret []byte
}

func NewHandler(hub *chathub.ManagerService, sessions *session.Service, mediaStore media.Store, jwtSecret []byte) *Handler {
	return &Handler{
		Hub:       hub,
		Sessions:  sessions,
		Media:     mediaStore,
		jwtSecret: jwtSecret,
	}
}
