package services

import (
	"context"
	"errors"

	"esports-tournament-system/apperrors"
	"esports-tournament-system/models"
	"esports-tournament-system/repository"

	"github.com/google/uuid"
)

// RegistrationService is the registration engine: it validates and applies
// registration creation, status transitions and deletion against the
// owning tournament's format and capacity rules.
type RegistrationService struct {
	store repository.Store
}

func NewRegistrationService(store repository.Store) *RegistrationService {
	return &RegistrationService{store: store}
}

func (s *RegistrationService) ListByTournament(ctx context.Context, tournamentID string) ([]models.Registration, error) {
	if _, err := s.store.Tournaments().GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("tournament not found")
		}
		return nil, err
	}
	return s.store.Registrations().ListByTournament(ctx, tournamentID)
}

// Create registers the principal (SOLO) or one of their teams (TEAM) for a
// tournament. Checks run in order and the first violation aborts; the
// whole read-check-write sequence runs in one transaction so concurrent
// attempts cannot overshoot capacity or slip past the duplicate check.
func (s *RegistrationService) Create(ctx context.Context, tournamentID string, teamID *string, principal models.Principal) (models.Registration, error) {
	var created models.Registration
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		tournament, err := tx.Tournaments().GetByID(ctx, tournamentID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("tournament not found")
		}
		if err != nil {
			return err
		}

		if tournament.Status != models.TournamentOpen {
			return apperrors.InvalidState("registrations are closed for this tournament")
		}

		// Capacity counts CONFIRMED entries only; pending registrations
		// do not consume slots.
		confirmed, err := tx.Registrations().CountByStatus(ctx, tournament.ID, models.RegistrationConfirmed)
		if err != nil {
			return err
		}
		if confirmed >= int64(tournament.MaxParticipants) {
			return apperrors.CapacityExceeded("tournament is full")
		}

		registration := models.Registration{
			ID:           uuid.NewString(),
			TournamentID: tournament.ID,
			Status:       models.RegistrationPending,
		}

		switch tournament.Format {
		case models.FormatSolo:
			if teamID != nil {
				return apperrors.FormatMismatch("this tournament is SOLO; team registrations are not accepted")
			}
			_, err := tx.Registrations().FindByTournamentAndPlayer(ctx, tournament.ID, principal.ID)
			if err == nil {
				return apperrors.DuplicateRegistration("you are already registered for this tournament")
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			playerID := principal.ID
			registration.PlayerID = &playerID

		case models.FormatTeam:
			if teamID == nil {
				return apperrors.FormatMismatch("this tournament is TEAM; a team id is required")
			}
			team, err := tx.Teams().GetByID(ctx, *teamID)
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NotFound("team not found")
			}
			if err != nil {
				return err
			}
			if !CanManageTeam(principal, team) {
				return apperrors.Forbidden("only the team captain can register the team")
			}
			_, err = tx.Registrations().FindByTournamentAndTeam(ctx, tournament.ID, team.ID)
			if err == nil {
				return apperrors.DuplicateRegistration("this team is already registered for this tournament")
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			registration.TeamID = teamID

		default:
			return apperrors.InvalidState("tournament has an unknown format")
		}

		if err := tx.Registrations().Create(ctx, &registration); err != nil {
			return err
		}
		created = registration
		return nil
	})
	return created, err
}

// UpdateStatus applies a registration status transition. Managers may set
// any status; owners may only withdraw. A transition into CONFIRMED
// re-validates capacity inside the transaction so a manager confirming a
// rejected or withdrawn entry cannot overshoot the participant limit.
func (s *RegistrationService) UpdateStatus(ctx context.Context, registrationID, newStatus string, principal models.Principal) (models.Registration, error) {
	var updated models.Registration
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		registration, err := tx.Registrations().GetByID(ctx, registrationID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("registration not found")
		}
		if err != nil {
			return err
		}

		isManager := CanManageTournament(principal, registration.Tournament)
		isOwner := IsRegistrationOwner(principal, registration)
		if !isManager && !isOwner {
			return apperrors.Forbidden("not allowed to modify this registration")
		}
		if !isManager && newStatus != models.RegistrationWithdrawn {
			return apperrors.Forbidden("you may only withdraw your own registration (WITHDRAWN)")
		}

		if newStatus == models.RegistrationConfirmed && registration.Status != models.RegistrationConfirmed {
			confirmed, err := tx.Registrations().CountByStatus(ctx, registration.TournamentID, models.RegistrationConfirmed)
			if err != nil {
				return err
			}
			if confirmed >= int64(registration.Tournament.MaxParticipants) {
				return apperrors.CapacityExceeded("tournament is full")
			}
		}

		if err := tx.Registrations().UpdateStatus(ctx, registration.ID, newStatus); err != nil {
			return err
		}
		registration.Status = newStatus
		updated = registration
		return nil
	})
	return updated, err
}

// Delete hard-deletes a registration. Confirmed registrations hold a
// capacity slot and must be withdrawn through UpdateStatus instead.
func (s *RegistrationService) Delete(ctx context.Context, registrationID string, principal models.Principal) error {
	registration, err := s.store.Registrations().GetByID(ctx, registrationID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("registration not found")
	}
	if err != nil {
		return err
	}

	isManager := CanManageTournament(principal, registration.Tournament)
	isOwner := IsRegistrationOwner(principal, registration)
	if !isManager && !isOwner {
		return apperrors.Forbidden("not allowed to delete this registration")
	}

	if registration.Status == models.RegistrationConfirmed {
		return apperrors.InvalidState("cannot delete a confirmed registration; update its status to WITHDRAWN instead")
	}

	return s.store.Registrations().Delete(ctx, registration.ID)
}
