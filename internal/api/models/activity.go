package models

import "time"

// Activity sources, one per trackable action family.
const (
	ActivitySourceCollection = "mycollection"
	ActivitySourceWanted     = "wantedforcollection"
	ActivitySourceSeen       = "seenit"
	ActivitySourceComment    = "comment"
)

// Activity is an append-only log row written on every trackable user
// action and read back by the feed endpoints. Rows are never updated.
type Activity struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Username   string    `json:"username" gorm:"not null"`
	MovieTitle string    `json:"movie_title" gorm:"not null"`
	Action     string    `json:"action" gorm:"not null"`
	Source     string    `json:"source" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Activity) TableName() string {
	return "activity"
}
