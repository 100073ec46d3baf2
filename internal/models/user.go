package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User holds the slice of profile data this service needs: display identity
// for message history joins and the Telegram chat id for notifications.
// Full profile CRUD lives in another service.
type User struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	Email          string `gorm:"uniqueIndex" json:"email"`
	ProfilePicture string `json:"profilePicture"`

	// TelegramChatID is nil for users who never linked Telegram; the
	// notifier falls back to logging for them.
	TelegramChatID *int64 `gorm:"index"`

	// Skills the user teaches or wants to learn, as free-text tags.
	Skills pq.StringArray `gorm:"type:text[]" json:"skills"`
}

// BeforeCreate generates a new UUID for the user if ID is not yet set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
