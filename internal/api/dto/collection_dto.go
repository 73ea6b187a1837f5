package dto

import (
	"time"

	"filmboard/internal/api/models"
)

// AddToCollectionRequest: payload to flag a movie in one of the user's buckets
type AddToCollectionRequest struct {
	Title string `json:"film" binding:"required"`
	Slug  string `json:"url" binding:"required"`
}

// RemoveFromCollectionRequest: payload to clear a flag
type RemoveFromCollectionRequest struct {
	Slug string `json:"url" binding:"required"`
}

// CollectionItemResponse: one flagged movie in a bucket listing
type CollectionItemResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"film"`
	Slug       string    `json:"url"`
	IsOwned    bool      `json:"is_owned"`
	IsWanted   bool      `json:"is_wanted"`
	IsSeen     bool      `json:"is_seen"`
	WatchCount int       `json:"watch_count"`
	Rating     *int      `json:"rating,omitempty"`
	Review     *string   `json:"review,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromModelToCollectionItem(s models.UserMovieState) CollectionItemResponse {
	return CollectionItemResponse{
		ID:         s.ID,
		Title:      s.MovieTitle,
		Slug:       s.MovieSlug,
		IsOwned:    s.IsOwned,
		IsWanted:   s.IsWanted,
		IsSeen:     s.IsSeen,
		WatchCount: s.WatchCount,
		Rating:     s.Rating,
		Review:     s.Review,
		UpdatedAt:  s.UpdatedAt,
	}
}

// CollectionListResponse: list of a user's flagged movies for one bucket
type CollectionListResponse struct {
	Items []CollectionItemResponse `json:"items"`
	Total int                      `json:"total"`
}
