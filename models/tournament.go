package models

import (
	"time"
)

const (
	FormatSolo = "SOLO"
	FormatTeam = "TEAM"
)

// Tournament lifecycle statuses. Created in DRAFT; COMPLETED and
// CANCELLED are immutable end states for field edits.
const (
	TournamentDraft     = "DRAFT"
	TournamentOpen      = "OPEN"
	TournamentOngoing   = "ONGOING"
	TournamentCompleted = "COMPLETED"
	TournamentCancelled = "CANCELLED"
)

type Tournament struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"not null"`
	Slug            string     `json:"slug" gorm:"index"`
	Game            string     `json:"game" gorm:"not null;index"`
	Format          string     `json:"format" gorm:"not null"`
	MaxParticipants int        `json:"max_participants" gorm:"not null"`
	PrizePool       float64    `json:"prize_pool" gorm:"default:0"`
	BannerURL       string     `json:"banner_url,omitempty"`
	StartDate       time.Time  `json:"start_date" gorm:"not null"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          string     `json:"status" gorm:"default:'DRAFT';index"`
	OrganizerID     string     `json:"organizer_id" gorm:"not null;index"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Organizer     User           `json:"organizer,omitempty" gorm:"foreignKey:OrganizerID"`
	Registrations []Registration `json:"registrations,omitempty" gorm:"foreignKey:TournamentID"`
}

// ValidTournamentStatus reports whether s is a known lifecycle status.
func ValidTournamentStatus(s string) bool {
	switch s {
	case TournamentDraft, TournamentOpen, TournamentOngoing, TournamentCompleted, TournamentCancelled:
		return true
	}
	return false
}

// Immutable reports whether the tournament can no longer be edited.
func (t Tournament) Immutable() bool {
	return t.Status == TournamentCompleted || t.Status == TournamentCancelled
}
