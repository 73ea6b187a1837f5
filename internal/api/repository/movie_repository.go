package repository

import (
	"context"
	"fmt"
	"strings"

	"filmboard/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepo struct {
	db *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

func (r *MovieRepo) GetByGenre(ctx context.Context, genre string, page, pageSize int) ([]models.Movie, int64, error) {
	var list []models.Movie
	var total int64

	// Count total records for the genre
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("genre = ?", genre).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Calculate offset
	offset := (page - 1) * pageSize

	// Fetch paginated results
	if err := r.db.WithContext(ctx).
		Where("genre = ?", genre).
		Order("film asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *MovieRepo) GetBySlug(ctx context.Context, slug string) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Where("url = ?", slug).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) GetByTMDBAndGenre(ctx context.Context, tmdbID int64, genre string) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Where("tmdb_id = ? AND genre = ?", tmdbID, genre).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert inserts the movie or, when the slug already exists, refreshes the
// metadata columns. Identity columns (url, tmdb_id) are never rewritten.
func (r *MovieRepo) Upsert(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"film", "year", "genre", "director", "screenwriters",
			"producer", "studio", "run_time", "image_url", "my_rating", "review",
		}),
	}).Create(m).Error; err != nil {
		return fmt.Errorf("upsert movie: %w", err)
	}
	return nil
}

// UpdatePoster backfills the poster URL without touching other columns.
func (r *MovieRepo) UpdatePoster(ctx context.Context, slug, posterURL string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("url = ?", slug).
		Update("image_url", posterURL).Error; err != nil {
		return fmt.Errorf("update poster: %w", err)
	}
	return nil
}

// SearchByTitle performs case-insensitive partial match on title, director and slug.
// Splits query into tokens and requires each token to appear in at least one of the fields.
func (r *MovieRepo) SearchByTitle(ctx context.Context, title string) ([]models.Movie, error) {
	var list []models.Movie
	tokens := strings.Fields(title)
	db := r.db.WithContext(ctx)

	// if empty tokens, return empty list
	if len(tokens) == 0 {
		return list, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3)
	for _, t := range tokens {
		p := "%" + t + "%"
		// use COALESCE to avoid NULL director causing ILIKE failure
		clauses = append(clauses, "(film ILIKE ? OR COALESCE(director,'') ILIKE ? OR url ILIKE ?)")
		args = append(args, p, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := db.Where(where, args...).Order("film asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search movies by title: %w", err)
	}
	return list, nil
}
