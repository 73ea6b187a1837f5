package repository

import (
	"context"

	"filmboard/internal/api/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByUser(ctx context.Context, userID string, limit int) ([]models.Activity, error)
	GetByFollowedOf(ctx context.Context, followerID string, limit int) ([]models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) GetByUser(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// GetByFollowedOf returns the recent activity of everyone the given user
// follows, joined against the follow edges in a single query.
func (r *activityRepository) GetByFollowedOf(ctx context.Context, followerID string, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Joins("JOIN follows f ON f.following_id = activity.user_id").
		Where("f.follower_id = ?", followerID).
		Order("activity.created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
