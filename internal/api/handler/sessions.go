package handler

import (
	"errors"
	"net/http"

	"skillswap/backend/internal/models"
	"skillswap/backend/internal/session"

	"github.com/gin-gonic/gin"
)

type requestSessionBody struct {
	AcceptorID  string `json:"userId2" binding:"required"`
	SessionDate string `json:"sessionDate" binding:"required"`
	SessionTime string `json:"sessionTime" binding:"required"`
	Skill       string `json:"skill" binding:"required"`
}

// RequestSession creates a new pending session request.
func (h *Handler) RequestSession(c *gin.Context) {
	var body requestSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please provide all required fields (userId2, sessionDate, sessionTime, skill)"})
		return
	}

	sess, err := h.Sessions.Request(currentUser(c), body.AcceptorID, body.SessionDate, body.SessionTime, body.Skill)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Session request sent successfully", "session": sess})
}

// AcceptSession lets the designated acceptor accept a pending request.
func (h *Handler) AcceptSession(c *gin.Context) {
	var body struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "sessionId is required"})
		return
	}

	sess, err := h.Sessions.Accept(body.SessionID, currentUser(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Session request accepted", "session": sess})
}

// ScheduleSession sets a new meeting date and time for an existing session.
func (h *Handler) ScheduleSession(c *gin.Context) {
	var body struct {
		SessionID      string `json:"sessionId" binding:"required"`
		NewMeetingDate string `json:"newMeetingDate" binding:"required"`
		NewMeetingTime string `json:"newMeetingTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "sessionId, newMeetingDate, and newMeetingTime are required"})
		return
	}

	sess, err := h.Sessions.Reschedule(body.SessionID, currentUser(c), body.NewMeetingDate, body.NewMeetingTime)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Session scheduled successfully", "session": sess})
}

// MarkSession records a participant's completed/canceled verdict, with
// optional rating and feedback on completion.
func (h *Handler) MarkSession(c *gin.Context) {
	var body struct {
		SessionID string  `json:"sessionId" binding:"required"`
		Status    string  `json:"status" binding:"required"`
		Rating    *int    `json:"rating"`
		Feedback  *string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "sessionId and status are required"})
		return
	}

	sess, err := h.Sessions.MarkOutcome(body.SessionID, currentUser(c), body.Status, body.Rating, body.Feedback)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Session updated successfully", "session": sess})
}

// GetPendingSessions lists requests awaiting the caller's decision.
func (h *Handler) GetPendingSessions(c *gin.Context) {
	h.listSessions(c, h.Sessions.PendingFor)
}

// GetConnections lists every non-pending session for the caller.
func (h *Handler) GetConnections(c *gin.Context) {
	h.listSessions(c, h.Sessions.ConnectionsFor)
}

func (h *Handler) GetCompletedSessions(c *gin.Context) {
	h.listSessions(c, h.Sessions.CompletedFor)
}

func (h *Handler) GetCanceledSessions(c *gin.Context) {
	h.listSessions(c, h.Sessions.CanceledFor)
}

// GetUserRating returns the mean rating the user's partners gave them, or
// "N/A" when no qualifying rating exists.
func (h *Handler) GetUserRating(c *gin.Context) {
	userID := c.Param("userId")

	avg, ok, err := h.Sessions.AverageRating(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"averageRating": "N/A"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"averageRating": avg})
}

func (h *Handler) listSessions(c *gin.Context, list func(string) ([]models.Session, error)) {
	sessions, err := list(currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// respondLifecycleError maps the lifecycle error vocabulary onto HTTP
// statuses with the specific rule that was violated.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrValidation),
		errors.Is(err, session.ErrInvalidOutcome),
		errors.Is(err, session.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Session not found"})
	case errors.Is(err, session.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"msg": "You are not authorized to perform this action on this session"})
	case errors.Is(err, session.ErrAlreadyDecided),
		errors.Is(err, session.ErrSessionClosed),
		errors.Is(err, session.ErrFeedbackRepeated),
		errors.Is(err, session.ErrNotAccepted):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
	}
}
