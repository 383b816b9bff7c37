package repository

import (
	"context"

	"esports-tournament-system/models"

	"gorm.io/gorm"
)

type gormRegistrationRepo struct {
	db *gorm.DB
}

func (r *gormRegistrationRepo) ListByTournament(ctx context.Context, tournamentID string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Team").
		Where("tournament_id = ?", tournamentID).
		Order("created_at ASC").
		Find(&registrations).Error
	return registrations, err
}

func (r *gormRegistrationRepo) ListByTournamentAndStatus(ctx context.Context, tournamentID, status string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Team").
		Where("tournament_id = ? AND status = ?", tournamentID, status).
		Order("created_at ASC").
		Find(&registrations).Error
	return registrations, err
}

func (r *gormRegistrationRepo) GetByID(ctx context.Context, id string) (models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		Preload("Tournament").
		Preload("Team").
		First(&registration, "id = ?", id).Error
	return registration, translate(err)
}

func (r *gormRegistrationRepo) FindByTournamentAndPlayer(ctx context.Context, tournamentID, playerID string) (models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		First(&registration, "tournament_id = ? AND player_id = ?", tournamentID, playerID).Error
	return registration, translate(err)
}

func (r *gormRegistrationRepo) FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID string) (models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		First(&registration, "tournament_id = ? AND team_id = ?", tournamentID, teamID).Error
	return registration, translate(err)
}

func (r *gormRegistrationRepo) CountByStatus(ctx context.Context, tournamentID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("tournament_id = ? AND status = ?", tournamentID, status).
		Count(&count).Error
	return count, err
}

func (r *gormRegistrationRepo) StatusCounts(ctx context.Context, tournamentID string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Select("status, COUNT(*) as count").
		Where("tournament_id = ?", tournamentID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *gormRegistrationRepo) TeamHasActiveRegistration(ctx context.Context, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Joins("JOIN tournaments ON tournaments.id = registrations.tournament_id").
		Where("registrations.team_id = ? AND tournaments.status IN ?", teamID,
			[]string{models.TournamentOpen, models.TournamentOngoing}).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRegistrationRepo) Create(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Omit("Tournament", "Player", "Team").Create(registration).Error
}

func (r *gormRegistrationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *gormRegistrationRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Registration{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRegistrationRepo) DeleteByTournament(ctx context.Context, tournamentID string) error {
	return r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Delete(&models.Registration{}).Error
}
