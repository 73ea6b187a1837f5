package dto

import (
	"time"

	"filmboard/internal/api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	MovieSlug string `json:"url" binding:"required"`
	Content   string `json:"content" binding:"required,min=1,max=5000"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CreateReplyDTO for replying to a comment, optionally nested one level
// under an existing reply
type CreateReplyDTO struct {
	Content       string `json:"content" binding:"required,min=1,max=5000"`
	ParentReplyID *int64 `json:"parent_reply_id,omitempty"`
}

// ReplyResponse for returning reply information
type ReplyResponse struct {
	ID            int64           `json:"id"`
	ParentReplyID *int64          `json:"parent_reply_id,omitempty"`
	Username      string          `json:"username"`
	Content       string          `json:"content"`
	CreatedAt     time.Time       `json:"created_at"`
	Replies       []ReplyResponse `json:"replies,omitempty"`
}

// CommentResponse for returning comment information with its reply tree
type CommentResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Content   string          `json:"content"`
	LikeCount int             `json:"like_count"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Replies   []ReplyResponse `json:"replies"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Username:  comment.Username,
		Content:   comment.Content,
		LikeCount: comment.LikeCount,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Replies:   []ReplyResponse{},
	}
}

// FromModelToReplyResponse converts a Reply model to ReplyResponse DTO
func FromModelToReplyResponse(reply *models.Reply) ReplyResponse {
	return ReplyResponse{
		ID:            reply.ID,
		ParentReplyID: reply.ParentReplyID,
		Username:      reply.Username,
		Content:       reply.Content,
		CreatedAt:     reply.CreatedAt,
	}
}

// LikeResponse for the like toggle result
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
