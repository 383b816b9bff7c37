package repository

import (
	"context"

	"esports-tournament-system/models"

	"gorm.io/gorm"
)

type gormTeamRepo struct {
	db *gorm.DB
}

func (r *gormTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Preload("Captain").
		Preload("Members").
		Order("created_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *gormTeamRepo) GetByID(ctx context.Context, id string) (models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Preload("Captain").
		Preload("Members").
		Preload("Registrations.Tournament").
		First(&team, "id = ?", id).Error
	return team, translate(err)
}

func (r *gormTeamRepo) ExistsByNameOrTag(ctx context.Context, name, tag, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Team{}).
		Where("name = ? OR tag = ?", name, tag)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *gormTeamRepo) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Omit("Members").Create(team).Error
}

func (r *gormTeamRepo) Updates(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Team{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *gormTeamRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
