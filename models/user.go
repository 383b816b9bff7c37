package models

import (
	"time"
)

// User roles. Role is fixed at creation; there is no escalation path.
const (
	RolePlayer    = "PLAYER"
	RoleOrganizer = "ORGANIZER"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"default:'PLAYER'"`
	TeamID       *string   `json:"team_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Principal is the already-authenticated caller identity attached by the
// auth middleware and consumed by every engine operation.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
