package services

import (
	"context"
	"errors"

	"esports-tournament-system/apperrors"
	"esports-tournament-system/models"
	"esports-tournament-system/repository"

	"github.com/google/uuid"
)

// TeamService manages teams: creation by players, captain-only mutation,
// and deletion protected while the team is entered in a live tournament.
type TeamService struct {
	store repository.Store
}

func NewTeamService(store repository.Store) *TeamService {
	return &TeamService{store: store}
}

func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	return s.store.Teams().List(ctx)
}

func (s *TeamService) GetByID(ctx context.Context, id string) (models.Team, error) {
	team, err := s.store.Teams().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Team{}, apperrors.NotFound("team not found")
	}
	return team, err
}

// Create makes the calling player captain and sole initial member of a
// new team. Name and tag must be unused.
func (s *TeamService) Create(ctx context.Context, name, tag string, principal models.Principal) (models.Team, error) {
	if !CanCreateTeam(principal) {
		return models.Team{}, apperrors.Forbidden("only players can create a team")
	}

	taken, err := s.store.Teams().ExistsByNameOrTag(ctx, name, tag, "")
	if err != nil {
		return models.Team{}, err
	}
	if taken {
		return models.Team{}, apperrors.Conflict("team name or tag already in use")
	}

	team := models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		Tag:       tag,
		CaptainID: principal.ID,
	}
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Teams().Create(ctx, &team); err != nil {
			return err
		}
		return tx.Users().SetTeam(ctx, principal.ID, &team.ID)
	})
	if err != nil {
		return models.Team{}, err
	}
	return s.GetByID(ctx, team.ID)
}

func (s *TeamService) Update(ctx context.Context, id string, patch map[string]interface{}, principal models.Principal) (models.Team, error) {
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Team{}, err
	}
	if !CanManageTeam(principal, team) {
		return models.Team{}, apperrors.Forbidden("only the team captain can modify the team")
	}

	name, _ := patch["name"].(string)
	tag, _ := patch["tag"].(string)
	if name != "" || tag != "" {
		taken, err := s.store.Teams().ExistsByNameOrTag(ctx, name, tag, id)
		if err != nil {
			return models.Team{}, err
		}
		if taken {
			return models.Team{}, apperrors.Conflict("team name or tag already in use")
		}
	}

	if err := s.store.Teams().Updates(ctx, id, patch); err != nil {
		return models.Team{}, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the team unless it is registered to a tournament that is
// OPEN or ONGOING. Members' back-references are cleared in the same
// transaction.
func (s *TeamService) Delete(ctx context.Context, id string, principal models.Principal) error {
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanManageTeam(principal, team) {
		return apperrors.Forbidden("only the team captain can delete the team")
	}

	active, err := s.store.Registrations().TeamHasActiveRegistration(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return apperrors.InvalidState("cannot delete a team registered to an active tournament")
	}

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Users().ClearTeam(ctx, id); err != nil {
			return err
		}
		return tx.Teams().Delete(ctx, id)
	})
}
