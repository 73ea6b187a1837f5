package repository

import (
	"context"
	"fmt"

	"filmboard/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	Add(ctx context.Context, followerID, followingID string) error
	Remove(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	ListFollowers(ctx context.Context, userID string) ([]models.Follow, error)
	ListFollowing(ctx context.Context, userID string) ([]models.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Add inserts the edge if absent; re-follows are a no-op.
func (r *followRepository) Add(ctx context.Context, followerID, followingID string) error {
	edge := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error; err != nil {
		return fmt.Errorf("add follow: %w", err)
	}
	return nil
}

// Remove deletes the edge unconditionally; removing a missing edge is fine.
func (r *followRepository) Remove(ctx context.Context, followerID, followingID string) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("remove follow: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string) ([]models.Follow, error) {
	var list []models.Follow
	if err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return list, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]models.Follow, error) {
	var list []models.Follow
	if err := r.db.WithContext(ctx).
		Preload("Following").
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return list, nil
}
