// Package repository defines the per-entity persistence contracts the
// engines depend on, so the Postgres implementation can be swapped for
// in-memory fakes in tests.
package repository

import (
	"context"
	"errors"
	"time"

	"esports-tournament-system/models"
)

// ErrNotFound is returned when a record does not exist. Implementations
// translate their driver's sentinel into it at the boundary.
var ErrNotFound = errors.New("record not found")

// TournamentFilter narrows List results. Status and Format are exact
// matches, Game is a substring match. Offset/Limit page the result.
type TournamentFilter struct {
	Status string
	Game   string
	Format string
	Offset int
	Limit  int
}

type UserRepo interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	SetTeam(ctx context.Context, userID string, teamID *string) error
	ClearTeam(ctx context.Context, teamID string) error
}

type TeamRepo interface {
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id string) (models.Team, error)
	ExistsByNameOrTag(ctx context.Context, name, tag, excludeID string) (bool, error)
	Create(ctx context.Context, team *models.Team) error
	Updates(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type TournamentRepo interface {
	List(ctx context.Context, filter TournamentFilter) ([]models.Tournament, int64, error)
	GetByID(ctx context.Context, id string) (models.Tournament, error)
	ListByStatusDue(ctx context.Context, status string, startedBefore time.Time) ([]models.Tournament, error)
	Create(ctx context.Context, tournament *models.Tournament) error
	Updates(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type RegistrationRepo interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Registration, error)
	ListByTournamentAndStatus(ctx context.Context, tournamentID, status string) ([]models.Registration, error)
	GetByID(ctx context.Context, id string) (models.Registration, error)
	FindByTournamentAndPlayer(ctx context.Context, tournamentID, playerID string) (models.Registration, error)
	FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID string) (models.Registration, error)
	CountByStatus(ctx context.Context, tournamentID, status string) (int64, error)
	StatusCounts(ctx context.Context, tournamentID string) (map[string]int64, error)
	TeamHasActiveRegistration(ctx context.Context, teamID string) (bool, error)
	Create(ctx context.Context, registration *models.Registration) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	DeleteByTournament(ctx context.Context, tournamentID string) error
}

// Store bundles the repositories plus a transactional scope: the callback
// receives a Store whose repositories are bound to one transaction.
type Store interface {
	Users() UserRepo
	Teams() TeamRepo
	Tournaments() TournamentRepo
	Registrations() RegistrationRepo
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
