package repository

import (
	"context"
	"fmt"

	"filmboard/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionRepository persists the per-user owned/wanted/seen flags.
// All writes are upserts keyed by (user_id, url) so a flag toggle is
// idempotent and concurrent toggles resolve to last writer wins.
type CollectionRepository interface {
	SetFlag(ctx context.Context, userID, slug, title, flag string, value bool) error
	GetState(ctx context.Context, userID, slug string) (*models.UserMovieState, error)
	ListByFlag(ctx context.Context, userID, flag string) ([]models.UserMovieState, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// flagColumn guards against anything but the three known flag columns
// reaching the SQL layer.
func flagColumn(flag string) (string, error) {
	switch flag {
	case "is_owned", "is_wanted", "is_seen":
		return flag, nil
	default:
		return "", fmt.Errorf("unknown collection flag %q", flag)
	}
}

func (r *collectionRepository) SetFlag(ctx context.Context, userID, slug, title, flag string, value bool) error {
	column, err := flagColumn(flag)
	if err != nil {
		return err
	}

	state := &models.UserMovieState{
		UserID:     userID,
		MovieSlug:  slug,
		MovieTitle: title,
	}
	switch column {
	case "is_owned":
		state.IsOwned = value
	case "is_wanted":
		state.IsWanted = value
	case "is_seen":
		state.IsSeen = value
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "url"}},
			DoUpdates: clause.Assignments(map[string]interface{}{column: value}),
		}).Create(state).Error; err != nil {
			return err
		}

		// Rows where every flag is off are dead weight; drop them.
		if !value {
			return tx.Where(
				"user_id = ? AND url = ? AND is_owned = false AND is_wanted = false AND is_seen = false",
				userID, slug,
			).Delete(&models.UserMovieState{}).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set collection flag: %w", err)
	}
	return nil
}

func (r *collectionRepository) GetState(ctx context.Context, userID, slug string) (*models.UserMovieState, error) {
	var state models.UserMovieState
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND url = ?", userID, slug).
		First(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *collectionRepository) ListByFlag(ctx context.Context, userID, flag string) ([]models.UserMovieState, error) {
	column, err := flagColumn(flag)
	if err != nil {
		return nil, err
	}

	var list []models.UserMovieState
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND "+column+" = true", userID).
		Order("updated_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}
	return list, nil
}
