package dto

import (
	"time"

	"filmboard/internal/api/models"
)

// UpsertMovieDTO used for POST /api/data
type UpsertMovieDTO struct {
	Slug          string   `json:"url" binding:"required"`
	TMDBID        *int64   `json:"tmdb_id,omitempty"`
	Title         string   `json:"film" binding:"required"`
	Year          *int     `json:"year,omitempty"`
	Genre         string   `json:"genre" binding:"required"`
	Director      *string  `json:"director,omitempty"`
	Screenwriters *string  `json:"screenwriters,omitempty"`
	Producer      *string  `json:"producer,omitempty"`
	Studio        *string  `json:"studio,omitempty"`
	RunTime       *string  `json:"run_time,omitempty"`
	PosterURL     *string  `json:"image_url,omitempty"`
	SiteRating    *float64 `json:"my_rating,omitempty"`
	SiteReview    *string  `json:"review,omitempty"`
}

// MovieResponse DTO for responses
type MovieResponse struct {
	ID            int64      `json:"id"`
	Slug          string     `json:"url"`
	TMDBID        *int64     `json:"tmdb_id,omitempty"`
	Title         string     `json:"film"`
	Year          *int       `json:"year,omitempty"`
	Genre         string     `json:"genre"`
	Director      *string    `json:"director,omitempty"`
	Screenwriters *string    `json:"screenwriters,omitempty"`
	Producer      *string    `json:"producer,omitempty"`
	Studio        *string    `json:"studio,omitempty"`
	RunTime       *string    `json:"run_time,omitempty"`
	PosterURL     *string    `json:"image_url,omitempty"`
	SiteRating    *float64   `json:"my_rating,omitempty"`
	SiteReview    *string    `json:"review,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Converters
func (d UpsertMovieDTO) ToModel() models.Movie {
	return models.Movie{
		Slug:          d.Slug,
		TMDBID:        d.TMDBID,
		Title:         d.Title,
		Year:          d.Year,
		Genre:         d.Genre,
		Director:      d.Director,
		Screenwriters: d.Screenwriters,
		Producer:      d.Producer,
		Studio:        d.Studio,
		RunTime:       d.RunTime,
		PosterURL:     d.PosterURL,
		SiteRating:    d.SiteRating,
		SiteReview:    d.SiteReview,
	}
}

func FromModelToMovieResponse(m models.Movie) MovieResponse {
	return MovieResponse{
		ID:            m.ID,
		Slug:          m.Slug,
		TMDBID:        m.TMDBID,
		Title:         m.Title,
		Year:          m.Year,
		Genre:         m.Genre,
		Director:      m.Director,
		Screenwriters: m.Screenwriters,
		Producer:      m.Producer,
		Studio:        m.Studio,
		RunTime:       m.RunTime,
		PosterURL:     m.PosterURL,
		SiteRating:    m.SiteRating,
		SiteReview:    m.SiteReview,
		CreatedAt:     m.CreatedAt,
	}
}

// PaginatedMovieResponse for returning paginated catalog listings
type PaginatedMovieResponse struct {
	Data       []MovieResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// NewPaginatedMovieResponse creates a paginated movie response
func NewPaginatedMovieResponse(data []MovieResponse, total, page, pageSize int) *PaginatedMovieResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedMovieResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
