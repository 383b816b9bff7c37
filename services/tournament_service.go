package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"path/filepath"
	"time"

	"esports-tournament-system/apperrors"
	"esports-tournament-system/models"
	"esports-tournament-system/repository"
	"esports-tournament-system/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// TournamentService is the tournament lifecycle engine: creation, edits,
// the status state machine, cascade deletion and derived stats.
type TournamentService struct {
	store repository.Store
	now   func() time.Time
}

func NewTournamentService(store repository.Store) *TournamentService {
	return &TournamentService{store: store, now: time.Now}
}

// ListFilter mirrors the query parameters of the list endpoint. Page and
// Limit are 1-based; zero values fall back to 1 and 10.
type ListFilter struct {
	Page   int
	Limit  int
	Status string
	Game   string
	Format string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func (s *TournamentService) List(ctx context.Context, filter ListFilter) ([]models.Tournament, Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	tournaments, total, err := s.store.Tournaments().List(ctx, repository.TournamentFilter{
		Status: filter.Status,
		Game:   filter.Game,
		Format: filter.Format,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, Pagination{}, err
	}

	return tournaments, Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *TournamentService) GetByID(ctx context.Context, id string) (models.Tournament, error) {
	tournament, err := s.store.Tournaments().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Tournament{}, apperrors.NotFound("tournament not found")
	}
	return tournament, err
}

// Create persists a new tournament owned by the caller. Status is forced
// to DRAFT regardless of input; field constraints are the handler layer's
// responsibility.
func (s *TournamentService) Create(ctx context.Context, tournament models.Tournament, organizerID string) (models.Tournament, error) {
	tournament.ID = uuid.NewString()
	tournament.Slug = slug.Make(tournament.Name)
	tournament.Status = models.TournamentDraft
	tournament.OrganizerID = organizerID
	if err := s.store.Tournaments().Create(ctx, &tournament); err != nil {
		return models.Tournament{}, err
	}
	return tournament, nil
}

// Update applies a field patch. Completed and cancelled tournaments are
// immutable. Format remains editable while the tournament is live even if
// registrations exist; existing registrations of the old kind are not
// migrated.
func (s *TournamentService) Update(ctx context.Context, id string, patch map[string]interface{}, principal models.Principal) (models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Tournament{}, err
	}
	if !CanManageTournament(principal, tournament) {
		return models.Tournament{}, apperrors.Forbidden("not allowed to modify this tournament")
	}
	if tournament.Immutable() {
		return models.Tournament{}, apperrors.InvalidState("cannot modify a completed or cancelled tournament")
	}

	if name, ok := patch["name"].(string); ok {
		patch["slug"] = slug.Make(name)
	}

	if err := s.store.Tournaments().Updates(ctx, id, patch); err != nil {
		return models.Tournament{}, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a tournament and its registrations in one transaction.
// A tournament holding confirmed registrations cannot be deleted.
func (s *TournamentService) Delete(ctx context.Context, id string, principal models.Principal) error {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanManageTournament(principal, tournament) {
		return apperrors.Forbidden("not allowed to delete this tournament")
	}

	confirmed, err := s.store.Registrations().CountByStatus(ctx, id, models.RegistrationConfirmed)
	if err != nil {
		return err
	}
	if confirmed > 0 {
		return apperrors.InvalidState("cannot delete a tournament with confirmed registrations")
	}

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Registrations().DeleteByTournament(ctx, id); err != nil {
			return err
		}
		return tx.Tournaments().Delete(ctx, id)
	})
}

// ChangeStatus drives the lifecycle state machine:
//
//	any   -> CANCELLED  manager, no precondition (operational escape hatch)
//	any   -> COMPLETED  admin only
//	DRAFT -> OPEN       manager, start date still in the future
//	OPEN  -> ONGOING    manager, at least 2 confirmed entrants
//
// Pairs outside the table apply unconditionally for managers.
func (s *TournamentService) ChangeStatus(ctx context.Context, id, newStatus string, principal models.Principal) (models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Tournament{}, err
	}
	if !CanManageTournament(principal, tournament) {
		return models.Tournament{}, apperrors.Forbidden("not allowed to manage this tournament")
	}

	switch {
	case newStatus == models.TournamentCancelled:
		// Always reachable for a manager.
	case newStatus == models.TournamentCompleted:
		if !CanCompleteTournament(principal) {
			return models.Tournament{}, apperrors.Forbidden("only an administrator can complete a tournament")
		}
	case tournament.Status == models.TournamentDraft && newStatus == models.TournamentOpen:
		if !tournament.StartDate.After(s.now()) {
			return models.Tournament{}, apperrors.InvalidState("start date must be in the future to open registrations")
		}
	case tournament.Status == models.TournamentOpen && newStatus == models.TournamentOngoing:
		confirmed, err := s.store.Registrations().CountByStatus(ctx, id, models.RegistrationConfirmed)
		if err != nil {
			return models.Tournament{}, err
		}
		if confirmed < 2 {
			return models.Tournament{}, apperrors.InvalidState("at least 2 confirmed participants are required to start the tournament")
		}
	}

	if err := s.store.Tournaments().Updates(ctx, id, map[string]interface{}{"status": newStatus}); err != nil {
		return models.Tournament{}, err
	}
	tournament.Status = newStatus
	return tournament, nil
}

// TournamentStats is the read-only derived view over a tournament's
// registrations.
type TournamentStats struct {
	TotalRegistrations    int64                  `json:"total_registrations"`
	Breakdown             map[string]int64       `json:"breakdown"`
	FillRate              string                 `json:"fill_rate"`
	ConfirmedParticipants []ConfirmedParticipant `json:"confirmed_participants"`
}

type ConfirmedParticipant struct {
	Type     string `json:"type"` // PLAYER or TEAM
	ID       string `json:"id"`
	Name     string `json:"name"`
	Tag      string `json:"tag,omitempty"`
	Username string `json:"username,omitempty"`
}

func (s *TournamentService) GetStats(ctx context.Context, id string) (TournamentStats, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return TournamentStats{}, err
	}

	counts, err := s.store.Registrations().StatusCounts(ctx, id)
	if err != nil {
		return TournamentStats{}, err
	}

	breakdown := map[string]int64{
		models.RegistrationPending:   counts[models.RegistrationPending],
		models.RegistrationConfirmed: counts[models.RegistrationConfirmed],
		models.RegistrationRejected:  counts[models.RegistrationRejected],
		models.RegistrationWithdrawn: counts[models.RegistrationWithdrawn],
	}
	var total int64
	for _, c := range breakdown {
		total += c
	}

	fillRate := "0.00%"
	if tournament.MaxParticipants > 0 {
		rate := float64(breakdown[models.RegistrationConfirmed]) / float64(tournament.MaxParticipants) * 100
		fillRate = fmt.Sprintf("%.2f%%", rate)
	}

	confirmed, err := s.store.Registrations().ListByTournamentAndStatus(ctx, id, models.RegistrationConfirmed)
	if err != nil {
		return TournamentStats{}, err
	}
	participants := make([]ConfirmedParticipant, 0, len(confirmed))
	for _, reg := range confirmed {
		switch {
		case reg.Player != nil:
			participants = append(participants, ConfirmedParticipant{
				Type:     models.RolePlayer,
				ID:       reg.Player.ID,
				Name:     reg.Player.Username,
				Username: reg.Player.Username,
			})
		case reg.Team != nil:
			participants = append(participants, ConfirmedParticipant{
				Type: models.FormatTeam,
				ID:   reg.Team.ID,
				Name: reg.Team.Name,
				Tag:  reg.Team.Tag,
			})
		}
	}

	return TournamentStats{
		TotalRegistrations:    total,
		Breakdown:             breakdown,
		FillRate:              fillRate,
		ConfirmedParticipants: participants,
	}, nil
}

// UploadBanner stores a banner image for the tournament and records its
// public URL. Managers only; immutable tournaments reject uploads.
func (s *TournamentService) UploadBanner(ctx context.Context, id string, file *multipart.FileHeader, principal models.Principal) (models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Tournament{}, err
	}
	if !CanManageTournament(principal, tournament) {
		return models.Tournament{}, apperrors.Forbidden("not allowed to modify this tournament")
	}
	if tournament.Immutable() {
		return models.Tournament{}, apperrors.InvalidState("cannot modify a completed or cancelled tournament")
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "tournaments/banners/" + uuid.NewString() + ext
	url, err := utils.UploadFile(ctx, file, key)
	if err != nil {
		return models.Tournament{}, err
	}

	if err := s.store.Tournaments().Updates(ctx, id, map[string]interface{}{"banner_url": url}); err != nil {
		return models.Tournament{}, err
	}
	tournament.BannerURL = url
	return tournament, nil
}
