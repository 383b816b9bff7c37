package models

import (
	"time"
)

// Registration statuses. PENDING is the only state reachable from
// creation; confirming is a separate, explicit transition so organizers
// vet entrants before a capacity slot is granted.
const (
	RegistrationPending   = "PENDING"
	RegistrationConfirmed = "CONFIRMED"
	RegistrationRejected  = "REJECTED"
	RegistrationWithdrawn = "WITHDRAWN"
)

// Registration ties exactly one entrant (player or team, per the owning
// tournament's format) to a tournament. The composite unique indexes back
// the duplicate-entrant check with a real constraint.
type Registration struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	TournamentID string    `json:"tournament_id" gorm:"not null;uniqueIndex:idx_reg_tournament_player;uniqueIndex:idx_reg_tournament_team"`
	PlayerID     *string   `json:"player_id,omitempty" gorm:"uniqueIndex:idx_reg_tournament_player"`
	TeamID       *string   `json:"team_id,omitempty" gorm:"uniqueIndex:idx_reg_tournament_team"`
	Status       string    `json:"status" gorm:"default:'PENDING';index"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Tournament Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`
	Player     *User      `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Team       *Team      `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

// ValidRegistrationStatus reports whether s is a known registration status.
func ValidRegistrationStatus(s string) bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationRejected, RegistrationWithdrawn:
		return true
	}
	return false
}
