package models

import "time"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieSlug string    `json:"url" gorm:"column:url;size:200;not null;index"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Username  string    `json:"username" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	LikeCount int       `json:"like_count" gorm:"default:0;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}

// Reply is one nesting level below a comment. ParentReplyID allows a
// single extra level (reply to a reply); deeper nesting is not modeled.
type Reply struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID     int64     `json:"comment_id" gorm:"not null;index"`
	ParentReplyID *int64    `json:"parent_reply_id,omitempty" gorm:"index"`
	UserID        string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Username      string    `json:"username" gorm:"not null"`
	Content       string    `json:"content" gorm:"not null;type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Comment Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (Reply) TableName() string {
	return "replies"
}

// CommentLike is the source of truth for likes; comments.like_count is
// derived from it inside the same transaction that toggles a row.
type CommentLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_comment,priority:1"`
	CommentID int64     `json:"comment_id" gorm:"not null;uniqueIndex:idx_user_comment,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (CommentLike) TableName() string {
	return "liked_comments"
}
