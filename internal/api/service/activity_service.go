package service

import (
	"context"
	"fmt"
	"log/slog"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/models"
	"filmboard/internal/api/repository"
)

const (
	// DefaultFeedLimit caps feed reads when the client sends no limit.
	DefaultFeedLimit = 50
	// MaxFeedLimit is the hard ceiling regardless of what the client asks for.
	MaxFeedLimit = 50
)

type ActivityService interface {
	// Record logs a trackable action. It never returns an error: a failed
	// insert is logged and swallowed so the primary mutation stands.
	Record(ctx context.Context, userID, username, movieTitle, action, source string)
	GetUserFeed(ctx context.Context, userID string, limit int) (*dto.ActivityFeedResponse, error)
	GetFollowingFeed(ctx context.Context, userID string, limit int) (*dto.ActivityFeedResponse, error)
}

type activityService struct {
	repo   repository.ActivityRepository
	logger *slog.Logger
}

func NewActivityService(repo repository.ActivityRepository, logger *slog.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) Record(ctx context.Context, userID, username, movieTitle, action, source string) {
	activity := &models.Activity{
		UserID:     userID,
		Username:   username,
		MovieTitle: movieTitle,
		Action:     action,
		Source:     source,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		// Feed entries are best-effort; the action that triggered this
		// already committed.
		s.logger.Warn("failed to record activity",
			"user", username, "source", source, "error", err)
	}
}

func (s *activityService) GetUserFeed(ctx context.Context, userID string, limit int) (*dto.ActivityFeedResponse, error) {
	activities, err := s.repo.GetByUser(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return buildFeed(activities), nil
}

func (s *activityService) GetFollowingFeed(ctx context.Context, userID string, limit int) (*dto.ActivityFeedResponse, error) {
	activities, err := s.repo.GetByFollowedOf(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return buildFeed(activities), nil
}

func clampLimit(limit int) int {
	if limit < 1 || limit > MaxFeedLimit {
		return DefaultFeedLimit
	}
	return limit
}

func buildFeed(activities []models.Activity) *dto.ActivityFeedResponse {
	items := make([]dto.ActivityItemResponse, 0, len(activities))
	for _, a := range activities {
		items = append(items, dto.FromModelToActivityItem(a, FeedMessage(&a)))
	}
	return &dto.ActivityFeedResponse{Items: items, Total: len(items)}
}

// feedMessages maps (source, action) pairs to display phrases. Messages
// are synthesized at read time; the table never stores them.
var feedMessages = map[string]string{
	models.ActivitySourceCollection + "/added":   "%s added %s to their collection",
	models.ActivitySourceCollection + "/removed": "%s removed %s from their collection",
	models.ActivitySourceWanted + "/added":       "%s wants %s for their collection",
	models.ActivitySourceWanted + "/removed":     "%s no longer wants %s",
	models.ActivitySourceSeen + "/added":         "%s has seen %s",
	models.ActivitySourceSeen + "/removed":       "%s unmarked %s as seen",
	models.ActivitySourceComment + "/posted":     "%s commented on %s",
}

// FeedMessage synthesizes the display text for one activity row.
// Unrecognized (source, action) pairs fall back to a generic phrase.
func FeedMessage(a *models.Activity) string {
	if format, ok := feedMessages[a.Source+"/"+a.Action]; ok {
		return fmt.Sprintf(format, a.Username, a.MovieTitle)
	}
	return fmt.Sprintf("%s did something with %s", a.Username, a.MovieTitle)
}
