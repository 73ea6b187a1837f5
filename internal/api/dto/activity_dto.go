package dto

import (
	"time"

	"filmboard/internal/api/models"
)

// ActivityItemResponse: one feed entry with its synthesized message
type ActivityItemResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	MovieTitle string    `json:"movie_title"`
	Action     string    `json:"action"`
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModelToActivityItem(a models.Activity, message string) ActivityItemResponse {
	return ActivityItemResponse{
		ID:         a.ID,
		Username:   a.Username,
		MovieTitle: a.MovieTitle,
		Action:     a.Action,
		Source:     a.Source,
		Message:    message,
		CreatedAt:  a.CreatedAt,
	}
}

// ActivityFeedResponse: list of feed entries, newest first
type ActivityFeedResponse struct {
	Items []ActivityItemResponse `json:"items"`
	Total int                    `json:"total"`
}
