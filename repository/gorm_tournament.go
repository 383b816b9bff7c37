package repository

import (
	"context"
	"time"

	"esports-tournament-system/models"

	"gorm.io/gorm"
)

type gormTournamentRepo struct {
	db *gorm.DB
}

func (r *gormTournamentRepo) List(ctx context.Context, filter TournamentFilter) ([]models.Tournament, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Tournament{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Format != "" {
		q = q.Where("format = ?", filter.Format)
	}
	if filter.Game != "" {
		q = q.Where("game ILIKE ?", "%"+filter.Game+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tournaments []models.Tournament
	err := q.Preload("Organizer").
		Order("start_date ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&tournaments).Error
	return tournaments, total, err
}

func (r *gormTournamentRepo) GetByID(ctx context.Context, id string) (models.Tournament, error) {
	var tournament models.Tournament
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		First(&tournament, "id = ?", id).Error
	return tournament, translate(err)
}

func (r *gormTournamentRepo) ListByStatusDue(ctx context.Context, status string, startedBefore time.Time) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ?", status, startedBefore).
		Find(&tournaments).Error
	return tournaments, err
}

func (r *gormTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	return r.db.WithContext(ctx).Omit("Organizer", "Registrations").Create(tournament).Error
}

func (r *gormTournamentRepo) Updates(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Tournament{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *gormTournamentRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Tournament{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
