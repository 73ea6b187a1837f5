package models

import "time"

// Follow is a directed edge from follower to followed user. Pairs are
// unique and self-follow is rejected at the service layer.
type Follow struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair,priority:1"`
	FollowingID string    `json:"following_id" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair,priority:2;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Follower  *User `json:"follower,omitempty" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE;"`
	Following *User `json:"following,omitempty" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE;"`
}

func (Follow) TableName() string {
	return "follows"
}
