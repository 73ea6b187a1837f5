package models

import "time"

// UserMovieState holds the owned/wanted/seen flags a user attaches to a
// movie. One row per (user, movie slug), maintained by upsert.
type UserMovieState struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_movie,priority:1" json:"user_id"`
	MovieSlug  string    `gorm:"column:url;size:200;not null;uniqueIndex:idx_user_movie,priority:2" json:"url"`
	MovieTitle string    `gorm:"column:film;not null" json:"film"`
	IsOwned    bool      `gorm:"default:false;not null" json:"is_owned"`
	IsWanted   bool      `gorm:"default:false;not null" json:"is_wanted"`
	IsSeen     bool      `gorm:"default:false;not null" json:"is_seen"`
	WatchCount int       `gorm:"default:0;not null" json:"watch_count"`
	Rating     *int      `gorm:"check:rating >= 1 AND rating <= 10" json:"rating,omitempty"`
	Review     *string   `gorm:"type:text" json:"review,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (UserMovieState) TableName() string {
	return "user_movies"
}
