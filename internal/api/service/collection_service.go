package service

import (
	"context"
	"errors"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/models"
	"filmboard/internal/api/repository"

	"gorm.io/gorm"
)

var ErrUnknownCollection = errors.New("unknown collection")

// collections maps the URL path segment of each bucket to its flag column
// and activity source.
var collections = map[string]struct {
	flag   string
	source string
}{
	"mycollection":        {flag: "is_owned", source: models.ActivitySourceCollection},
	"wantedforcollection": {flag: "is_wanted", source: models.ActivitySourceWanted},
	"seenit":              {flag: "is_seen", source: models.ActivitySourceSeen},
}

type CollectionService interface {
	Add(ctx context.Context, userID, username, collection, slug, title string) error
	Remove(ctx context.Context, userID, username, collection, slug string) error
	List(ctx context.Context, userID, collection string) (*dto.CollectionListResponse, error)
}

type collectionService struct {
	repo     repository.CollectionRepository
	activity ActivityService
}

func NewCollectionService(repo repository.CollectionRepository, activity ActivityService) CollectionService {
	return &collectionService{repo: repo, activity: activity}
}

// Add flips the bucket's flag on for (user, movie). Upsert semantics make
// the call idempotent; adding twice leaves a single row.
func (s *collectionService) Add(ctx context.Context, userID, username, collection, slug, title string) error {
	c, ok := collections[collection]
	if !ok {
		return ErrUnknownCollection
	}

	if err := s.repo.SetFlag(ctx, userID, slug, title, c.flag, true); err != nil {
		return err
	}

	s.activity.Record(ctx, userID, username, title, "added", c.source)
	return nil
}

// Remove flips the bucket's flag off. Removing a movie that was never
// added is a no-op.
func (s *collectionService) Remove(ctx context.Context, userID, username, collection, slug string) error {
	c, ok := collections[collection]
	if !ok {
		return ErrUnknownCollection
	}

	// Title for the activity row comes from the stored state; a miss means
	// there is nothing to remove and nothing to announce.
	state, err := s.repo.GetState(ctx, userID, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.SetFlag(ctx, userID, slug, state.MovieTitle, c.flag, false); err != nil {
		return err
	}

	s.activity.Record(ctx, userID, username, state.MovieTitle, "removed", c.source)
	return nil
}

func (s *collectionService) List(ctx context.Context, userID, collection string) (*dto.CollectionListResponse, error) {
	c, ok := collections[collection]
	if !ok {
		return nil, ErrUnknownCollection
	}

	states, err := s.repo.ListByFlag(ctx, userID, c.flag)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CollectionItemResponse, 0, len(states))
	for _, state := range states {
		items = append(items, dto.FromModelToCollectionItem(state))
	}

	return &dto.CollectionListResponse{Items: items, Total: len(items)}, nil
}
