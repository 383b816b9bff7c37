package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepo                 { return &gormUserRepo{db: s.db} }
func (s *GormStore) Teams() TeamRepo                 { return &gormTeamRepo{db: s.db} }
func (s *GormStore) Tournaments() TournamentRepo     { return &gormTournamentRepo{db: s.db} }
func (s *GormStore) Registrations() RegistrationRepo { return &gormRegistrationRepo{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// translate maps the GORM sentinel onto the repository one.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
