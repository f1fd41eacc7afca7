package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// User is an account holder. Accounts are created once at registration and
// never modified or removed through the API.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
