package repository

import (
	"context"

	"esports-tournament-system/models"

	"gorm.io/gorm"
)

type gormUserRepo struct {
	db *gorm.DB
}

func (r *gormUserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return user, translate(err)
}

func (r *gormUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	return user, translate(err)
}

func (r *gormUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *gormUserRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepo) SetTeam(ctx context.Context, userID string, teamID *string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("team_id", teamID).Error
}

func (r *gormUserRepo) ClearTeam(ctx context.Context, teamID string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("team_id = ?", teamID).
		Update("team_id", nil).Error
}
