package repository

import (
	"errors"

	"filmboard/internal/api/models"

	"gorm.io/gorm"
)

var ErrNotOwner = errors.New("comment not found or you don't have permission to modify it")

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(commentID int64, userID string) error
	GetByID(commentID int64) (*models.Comment, error)
	GetByMovie(slug string, page, pageSize int) ([]models.Comment, int64, error)
	GetRepliesByCommentIDs(commentIDs []int64) ([]models.Reply, error)
	CreateReply(reply *models.Reply) error
	GetReplyByID(replyID int64) (*models.Reply, error)
	ToggleLike(commentID int64, userID string) (liked bool, likeCount int, err error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update an existing comment
func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete a comment (only if user owns it); replies and likes go with it
// in the same transaction. A missing comment surfaces as
// gorm.ErrRecordNotFound so callers can tell it apart from a
// wrong-owner delete.
func (r *commentRepository) Delete(commentID int64, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Comment{}, "id = ?", commentID).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", commentID, userID).Delete(&models.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotOwner
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Where("comment_id = ?", commentID).Delete(&models.CommentLike{}).Error
	})
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByMovie retrieves all top-level comments for a movie with pagination
func (r *commentRepository) GetByMovie(slug string, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	// Count total comments
	if err := r.db.Model(&models.Comment{}).Where("url = ?", slug).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated comments
	offset := (page - 1) * pageSize
	err := r.db.Where("url = ?", slug).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error

	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// GetRepliesByCommentIDs batch-fetches every reply under the given
// comments in one query, for tree assembly at the service layer.
func (r *commentRepository) GetRepliesByCommentIDs(commentIDs []int64) ([]models.Reply, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var replies []models.Reply
	if err := r.db.Where("comment_id IN ?", commentIDs).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// CreateReply appends a reply to a comment
func (r *commentRepository) CreateReply(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

// GetReplyByID retrieves a reply by its ID
func (r *commentRepository) GetReplyByID(replyID int64) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.Where("id = ?", replyID).First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ToggleLike inserts or removes the (user, comment) like row, then
// recomputes like_count from the join table inside one transaction so the
// counter can never drift from the rows.
func (r *commentRepository) ToggleLike(commentID int64, userID string) (bool, int, error) {
	var liked bool
	var likeCount int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Comment{}, "id = ?", commentID).Error; err != nil {
			return err
		}

		var existing models.CommentLike
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := &models.CommentLike{UserID: userID, CommentID: commentID}
			if err := tx.Create(like).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		if err := tx.Model(&models.CommentLike{}).
			Where("comment_id = ?", commentID).
			Count(&likeCount).Error; err != nil {
			return err
		}

		return tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			Update("like_count", likeCount).Error
	})
	if err != nil {
		return false, 0, err
	}

	return liked, int(likeCount), nil
}
