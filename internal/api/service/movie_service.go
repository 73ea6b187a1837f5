package service

import (
	"context"
	"errors"
	"log/slog"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/repository"

	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

// PosterSource looks up poster art for a movie from an external metadata
// provider. Implemented by the TMDB client.
type PosterSource interface {
	FindPosterURL(ctx context.Context, title string, year *int) (string, error)
}

type MovieService interface {
	GetByGenre(ctx context.Context, genre string, page, pageSize int) (*dto.PaginatedMovieResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.MovieResponse, error)
	Upsert(ctx context.Context, req dto.UpsertMovieDTO) (*dto.MovieResponse, error)
	Search(ctx context.Context, query string) ([]dto.MovieResponse, error)
}

type movieService struct {
	repo    *repository.MovieRepo
	posters PosterSource
	logger  *slog.Logger
}

func NewMovieService(repo *repository.MovieRepo, posters PosterSource, logger *slog.Logger) MovieService {
	return &movieService{
		repo:    repo,
		posters: posters,
		logger:  logger,
	}
}

func (s *movieService) GetByGenre(ctx context.Context, genre string, page, pageSize int) (*dto.PaginatedMovieResponse, error) {
	movies, total, err := s.repo.GetByGenre(ctx, genre, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MovieResponse, 0, len(movies))
	for _, m := range movies {
		responses = append(responses, dto.FromModelToMovieResponse(m))
	}

	return dto.NewPaginatedMovieResponse(responses, int(total), page, pageSize), nil
}

func (s *movieService) GetBySlug(ctx context.Context, slug string) (*dto.MovieResponse, error) {
	movie, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToMovieResponse(*movie)
	return &resp, nil
}

// Upsert inserts or refreshes a catalog entry. Identity resolves by
// tmdb_id+genre first, then by slug, so a re-import under a new slug
// updates the existing record instead of duplicating it. When the stored
// record carries no poster art, a TMDB lookup backfills it; lookup
// failures only cost the poster, never the upsert.
func (s *movieService) Upsert(ctx context.Context, req dto.UpsertMovieDTO) (*dto.MovieResponse, error) {
	movie := req.ToModel()

	if movie.TMDBID != nil {
		existing, err := s.repo.GetByTMDBAndGenre(ctx, *movie.TMDBID, movie.Genre)
		switch {
		case err == nil:
			movie.Slug = existing.Slug
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if err := s.repo.Upsert(ctx, &movie); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetBySlug(ctx, movie.Slug)
	if err != nil {
		return nil, err
	}

	if stored.PosterURL == nil && s.posters != nil {
		posterURL, err := s.posters.FindPosterURL(ctx, stored.Title, stored.Year)
		if err != nil {
			s.logger.Warn("poster backfill failed", "film", stored.Title, "error", err)
		} else if posterURL != "" {
			if err := s.repo.UpdatePoster(ctx, stored.Slug, posterURL); err != nil {
				return nil, err
			}
			stored.PosterURL = &posterURL
		}
	}

	resp := dto.FromModelToMovieResponse(*stored)
	return &resp, nil
}

func (s *movieService) Search(ctx context.Context, query string) ([]dto.MovieResponse, error) {
	movies, err := s.repo.SearchByTitle(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MovieResponse, 0, len(movies))
	for _, m := range movies {
		responses = append(responses, dto.FromModelToMovieResponse(m))
	}
	return responses, nil
}
