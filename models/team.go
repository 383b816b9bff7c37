package models

import (
	"time"
)

// Team groups players under a captain. The captain is always a member;
// only the captain may mutate or delete the team.
type Team struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Tag       string    `json:"tag" gorm:"uniqueIndex;size:5;not null"`
	CaptainID string    `json:"captain_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Captain       User           `json:"captain,omitempty" gorm:"foreignKey:CaptainID"`
	Members       []User         `json:"members,omitempty" gorm:"foreignKey:TeamID"`
	Registrations []Registration `json:"registrations,omitempty" gorm:"foreignKey:TeamID"`
}
