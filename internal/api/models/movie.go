package models

import "time"

type Movie struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug          string     `json:"url" gorm:"column:url;uniqueIndex;size:200;not null"`
	TMDBID        *int64     `json:"tmdb_id,omitempty" gorm:"column:tmdb_id;index"`
	Title         string     `json:"film" gorm:"column:film;not null"`
	Year          *int       `json:"year,omitempty"`
	Genre         string     `json:"genre" gorm:"not null;index"`
	Director      *string    `json:"director,omitempty"`
	Screenwriters *string    `json:"screenwriters,omitempty"`
	Producer      *string    `json:"producer,omitempty"`
	Studio        *string    `json:"studio,omitempty"`
	RunTime       *string    `json:"run_time,omitempty"`
	PosterURL     *string    `json:"image_url,omitempty" gorm:"column:image_url"`
	SiteRating    *float64   `json:"my_rating,omitempty" gorm:"column:my_rating;type:decimal(3,1)"`
	SiteReview    *string    `json:"review,omitempty" gorm:"column:review;type:text"`
	CreatedAt     *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (Movie) TableName() string {
	return "allmovies"
}
