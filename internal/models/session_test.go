package models_test

import (
	"testing"

	"skillswap/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionBeforeCreate_GeneratesUUID(t *testing.T) {
	session := &models.Session{
		RequestorID: "user_A",
		AcceptorID:  "user_B",
		SessionDate: "2026-09-10",
		SessionTime: "18:00",
		Skill:       "Python",
	}

	assert.Empty(t, session.ID)
	assert.NoError(t, session.BeforeCreate(nil))
	assert.NotEmpty(t, session.ID)

	_, parseErr := uuid.Parse(session.ID)
	assert.NoError(t, parseErr, "Session ID must be a valid UUID string")
}

func TestSessionBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	session := &models.Session{ID: existingID}

	assert.NoError(t, session.BeforeCreate(nil))
	assert.Equal(t, existingID, session.ID)
}

func TestSessionParticipants(t *testing.T) {
	session := models.Session{RequestorID: "user_A", AcceptorID: "user_B"}

	assert.True(t, session.HasParticipant("user_A"))
	assert.True(t, session.HasParticipant("user_B"))
	assert.False(t, session.HasParticipant("user_C"))

	assert.Equal(t, "user_B", session.OtherParticipant("user_A"))
	assert.Equal(t, "user_A", session.OtherParticipant("user_B"))
}

func TestSessionIsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{models.StatusPending, false},
		{models.StatusAccepted, false},
		{models.StatusCompleted, true},
		{models.StatusCanceled, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			session := models.Session{Status: tt.status}
			assert.Equal(t, tt.terminal, session.IsTerminal())
		})
	}
}

func TestSessionFeedbackGivenBy(t *testing.T) {
	session := models.Session{
		RequestorID:              "user_A",
		AcceptorID:               "user_B",
		FeedbackGivenByRequestor: true,
	}

	assert.True(t, session.FeedbackGivenBy("user_A"))
	assert.False(t, session.FeedbackGivenBy("user_B"))
}

func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	user := &models.User{Name: "Alice", Email: "alice@example.com"}

	assert.NoError(t, user.BeforeCreate(nil))
	assert.NotEmpty(t, user.ID)

	_, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr)
}
