package service

import (
	"context"
	"errors"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/models"
	"filmboard/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotCommentOwner    = errors.New("you don't have permission to modify this comment")
	ErrReplyTooDeep       = errors.New("replies can only nest one level deep")
	ErrReplyWrongComment  = errors.New("parent reply belongs to a different comment")
	ErrParentReplyMissing = errors.New("parent reply not found")
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, username, slug, content string) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID int64, userID, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID int64, userID string) error
	CreateReply(ctx context.Context, commentID int64, userID, username, content string, parentReplyID *int64) (*dto.ReplyResponse, error)
	GetMovieComments(ctx context.Context, slug string, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	ToggleLike(ctx context.Context, commentID int64, userID string) (*dto.LikeResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	activity    ActivityService
}

func NewCommentService(commentRepo repository.CommentRepository, activity ActivityService) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		activity:    activity,
	}
}

// CreateComment creates a new top-level comment on a movie
func (s *commentService) CreateComment(ctx context.Context, userID, username, slug, content string) (*dto.CommentResponse, error) {
	comment := &models.Comment{
		MovieSlug: slug,
		UserID:    userID,
		Username:  username,
		Content:   content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, userID, username, slug, "posted", models.ActivitySourceComment)

	return dto.FromModelToCommentResponse(comment), nil
}

// UpdateComment updates an existing comment; author only
func (s *commentService) UpdateComment(ctx context.Context, commentID int64, userID, content string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	// Check ownership
	if comment.UserID != userID {
		return nil, ErrNotCommentOwner
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// DeleteComment deletes a comment along with its replies and likes
func (s *commentService) DeleteComment(ctx context.Context, commentID int64, userID string) error {
	if err := s.commentRepo.Delete(commentID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// CreateReply appends a reply under a comment, optionally nested under an
// existing first-level reply. Anything deeper is rejected.
func (s *commentService) CreateReply(ctx context.Context, commentID int64, userID, username, content string, parentReplyID *int64) (*dto.ReplyResponse, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if parentReplyID != nil {
		parent, err := s.commentRepo.GetReplyByID(*parentReplyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentReplyMissing
			}
			return nil, err
		}
		if parent.CommentID != commentID {
			return nil, ErrReplyWrongComment
		}
		// Two-level tree: a reply that already has a parent cannot be a parent.
		if parent.ParentReplyID != nil {
			return nil, ErrReplyTooDeep
		}
	}

	reply := &models.Reply{
		CommentID:     commentID,
		ParentReplyID: parentReplyID,
		UserID:        userID,
		Username:      username,
		Content:       content,
	}

	if err := s.commentRepo.CreateReply(reply); err != nil {
		return nil, err
	}

	resp := dto.FromModelToReplyResponse(reply)
	return &resp, nil
}

// GetMovieComments retrieves top-level comments for a movie plus every
// reply under them. Replies come back in one batched query keyed by the
// comment IDs and are rebuilt into the two-level tree here.
func (s *commentService) GetMovieComments(ctx context.Context, slug string, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	comments, total, err := s.commentRepo.GetByMovie(slug, page, pageSize)
	if err != nil {
		return nil, err
	}

	commentIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
	}

	replies, err := s.commentRepo.GetRepliesByCommentIDs(commentIDs)
	if err != nil {
		return nil, err
	}

	tree := buildReplyTrees(replies)

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp := dto.FromModelToCommentResponse(&comments[i])
		if children, ok := tree[comments[i].ID]; ok {
			resp.Replies = children
		}
		commentResponses = append(commentResponses, *resp)
	}

	return dto.NewPaginatedCommentResponse(commentResponses, int(total), page, pageSize), nil
}

// buildReplyTrees groups the flat reply rows by comment, attaching
// second-level replies under their first-level parent.
func buildReplyTrees(replies []models.Reply) map[int64][]dto.ReplyResponse {
	// First-level replies by their own ID, so children can find them.
	firstLevel := make(map[int64]*dto.ReplyResponse)
	order := make(map[int64][]int64) // commentID -> first-level reply IDs in order

	for i := range replies {
		r := &replies[i]
		if r.ParentReplyID == nil {
			node := dto.FromModelToReplyResponse(r)
			firstLevel[r.ID] = &node
			order[r.CommentID] = append(order[r.CommentID], r.ID)
		}
	}

	for i := range replies {
		r := &replies[i]
		if r.ParentReplyID == nil {
			continue
		}
		if parent, ok := firstLevel[*r.ParentReplyID]; ok {
			parent.Replies = append(parent.Replies, dto.FromModelToReplyResponse(r))
		}
	}

	result := make(map[int64][]dto.ReplyResponse, len(order))
	for commentID, ids := range order {
		nodes := make([]dto.ReplyResponse, 0, len(ids))
		for _, id := range ids {
			nodes = append(nodes, *firstLevel[id])
		}
		result[commentID] = nodes
	}
	return result
}

// ToggleLike flips the viewer's like on a comment
func (s *commentService) ToggleLike(ctx context.Context, commentID int64, userID string) (*dto.LikeResponse, error) {
	liked, likeCount, err := s.commentRepo.ToggleLike(commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &dto.LikeResponse{Liked: liked, LikeCount: likeCount}, nil
}
