package service

import (
	"context"
	"errors"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/models"
	"filmboard/internal/api/repository"
)

var (
	ErrSelfFollow     = errors.New("you cannot follow yourself")
	ErrTargetNotFound = errors.New("user to follow not found")
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followingUsername string) error
	Unfollow(ctx context.Context, followerID, followingUsername string) error
	Status(ctx context.Context, viewerID, targetUsername string) (*dto.FollowStatusResponse, error)
	Followers(ctx context.Context, username string) (*dto.FollowListResponse, error)
	Following(ctx context.Context, username string) (*dto.FollowListResponse, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	cache      *repository.FollowerCountCache
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	cache *repository.FollowerCountCache,
) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		cache:      cache,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followingUsername string) error {
	target, err := s.userRepo.FindByUsername(followingUsername)
	if err != nil {
		return ErrTargetNotFound
	}

	if target.ID == followerID {
		return ErrSelfFollow
	}

	if err := s.followRepo.Add(ctx, followerID, target.ID); err != nil {
		return err
	}

	// Stale counts are worse than a cache miss.
	s.cache.Invalidate(ctx, target.ID)
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followingUsername string) error {
	target, err := s.userRepo.FindByUsername(followingUsername)
	if err != nil {
		return ErrTargetNotFound
	}

	if err := s.followRepo.Remove(ctx, followerID, target.ID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, target.ID)
	return nil
}

// Status reports whether the viewer follows the target and the target's
// follower count. The count is served from Redis when warm.
func (s *followService) Status(ctx context.Context, viewerID, targetUsername string) (*dto.FollowStatusResponse, error) {
	target, err := s.userRepo.FindByUsername(targetUsername)
	if err != nil {
		return nil, ErrTargetNotFound
	}

	following := false
	if viewerID != "" && viewerID != target.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, target.ID)
		if err != nil {
			return nil, err
		}
	}

	count, hit := s.cache.Get(ctx, target.ID)
	if !hit {
		count, err = s.followRepo.CountFollowers(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, target.ID, count)
	}

	return &dto.FollowStatusResponse{
		Following:      following,
		FollowersCount: count,
	}, nil
}

func (s *followService) Followers(ctx context.Context, username string) (*dto.FollowListResponse, error) {
	target, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrTargetNotFound
	}

	edges, err := s.followRepo.ListFollowers(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	users := make([]dto.FollowUserResponse, 0, len(edges))
	for _, edge := range edges {
		users = append(users, followUserFrom(edge.Follower))
	}
	return &dto.FollowListResponse{Users: users, Total: len(users)}, nil
}

func (s *followService) Following(ctx context.Context, username string) (*dto.FollowListResponse, error) {
	target, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrTargetNotFound
	}

	edges, err := s.followRepo.ListFollowing(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	users := make([]dto.FollowUserResponse, 0, len(edges))
	for _, edge := range edges {
		users = append(users, followUserFrom(edge.Following))
	}
	return &dto.FollowListResponse{Users: users, Total: len(users)}, nil
}

func followUserFrom(u *models.User) dto.FollowUserResponse {
	if u == nil {
		return dto.FollowUserResponse{}
	}
	return dto.FollowUserResponse{
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
