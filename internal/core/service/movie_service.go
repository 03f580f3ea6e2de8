package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinevault/movie-catalog/internal/core/domain"
	"github.com/cinevault/movie-catalog/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// MovieService orchestrates movie CRUD: ownership enforcement, derived-field
// computation, owner projection and poster URL resolution.
type MovieService struct {
	repo    ports.MovieRepository
	users   ports.AuthRepository
	posters ports.PosterStore
	logger  zerolog.Logger
	now     func() time.Time
}

func NewMovieService(repo ports.MovieRepository, users ports.AuthRepository, posters ports.PosterStore, logger zerolog.Logger) *MovieService {
	return &MovieService{repo: repo, users: users, posters: posters, logger: logger, now: time.Now}
}

func (s *MovieService) CreateMovie(ctx context.Context, input ports.CreateMovieInput, ownerID string) (*ports.MovieDetail, error) {
	now := s.now().UTC()
	movie := &domain.Movie{
		Title:         input.Title,
		OriginalTitle: input.OriginalTitle,
		ReleaseDate:   input.ReleaseDate,
		Description:   input.Description,
		Duration:      input.Duration,
		Budget:        input.Budget,
		Revenue:       input.Revenue,
		Votes:         input.Votes,
		Score:         input.Score,
		Rating:        input.Rating,
		Genre:         input.Genre,
		Language:      input.Language,
		PosterKey:     input.PosterKey,
		UserID:        ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, movie)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create movie")
		return nil, err
	}

	s.logger.Info().Str("movie_id", created.ID).Str("user_id", ownerID).Msg("movie created")

	return s.toDetail(ctx, created)
}

// ListMovies returns a page of movies visible to any authenticated user.
// Soft-deleted rows never appear; pages = ceil(total/limit).
func (s *MovieService) ListMovies(ctx context.Context, filter ports.ListMoviesFilter) (*ports.ListMoviesResult, error) {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	movies, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list movies")
		return nil, err
	}

	// Owners repeat across a page; resolve each one once.
	owners := make(map[string]*ports.MovieOwner)
	details := make([]ports.MovieDetail, 0, len(movies))
	for _, m := range movies {
		d, err := s.toDetailMemo(ctx, m, owners)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}

	return &ports.ListMoviesResult{
		Movies: details,
		Pagination: ports.Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

// GetMovie is ownership-gated: only the owner may read a single movie.
func (s *MovieService) GetMovie(ctx context.Context, id, requesterID string) (*ports.MovieDetail, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	return s.toDetail(ctx, movie)
}

// UpdateMovie applies a partial patch. The ownership predicate is part of the
// conditional write itself; a miss is classified as not-found or forbidden
// by a follow-up read.
func (s *MovieService) UpdateMovie(ctx context.Context, id string, patch ports.UpdateMoviePatch, requesterID string) (*ports.MovieDetail, error) {
	updated, err := s.repo.UpdateOwned(ctx, id, requesterID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, s.classifyMiss(ctx, id, requesterID)
		}
		s.logger.Error().Err(err).Str("movie_id", id).Msg("failed to update movie")
		return nil, err
	}
	return s.toDetail(ctx, updated)
}

// RemoveMovie soft-deletes a movie owned by the requester. A movie that was
// already soft-deleted is invisible to the lookup and yields not-found.
func (s *MovieService) RemoveMovie(ctx context.Context, id, requesterID string) (*ports.RemoveMovieResult, error) {
	deletedAt, err := s.repo.SoftDeleteOwned(ctx, id, requesterID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, s.classifyMiss(ctx, id, requesterID)
		}
		s.logger.Error().Err(err).Str("movie_id", id).Msg("failed to delete movie")
		return nil, err
	}

	s.logger.Info().Str("movie_id", id).Str("user_id", requesterID).Msg("movie soft-deleted")

	return &ports.RemoveMovieResult{
		Message:   "movie deleted successfully",
		DeletedAt: deletedAt,
	}, nil
}

// classifyMiss disambiguates a failed owner-scoped write: the row either does
// not exist (or is soft-deleted) or belongs to someone else.
func (s *MovieService) classifyMiss(ctx context.Context, id, requesterID string) error {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if movie.UserID != requesterID {
		return domain.ErrForbidden
	}
	// Row was visible after all: the conditional write lost a race with a
	// concurrent delete. Report it as gone.
	return domain.ErrMovieNotFound
}

// toDetail computes derived fields, embeds the owner projection and resolves
// the stored poster key to a signed URL. The stored key is never mutated.
func (s *MovieService) toDetail(ctx context.Context, m *domain.Movie) (*ports.MovieDetail, error) {
	return s.toDetailMemo(ctx, m, nil)
}

func (s *MovieService) toDetailMemo(ctx context.Context, m *domain.Movie, owners map[string]*ports.MovieOwner) (*ports.MovieDetail, error) {
	detail := &ports.MovieDetail{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		ReleaseDate:   m.ReleaseDate,
		Description:   m.Description,
		Duration:      m.Duration,
		Budget:        m.Budget,
		Revenue:       m.Revenue,
		Votes:         m.Votes,
		Score:         m.Score,
		Rating:        m.Rating,
		Genre:         m.Genre,
		Language:      m.Language,
		Profit:        m.Profit(),
		Status:        m.ReleaseStatus(s.now()),
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	detail.Owner = s.ownerFor(ctx, m.UserID, owners)

	if m.PosterKey != "" {
		url, err := s.posters.PresignURL(ctx, m.PosterKey)
		if err != nil {
			s.logger.Error().Err(err).Str("movie_id", m.ID).Msg("failed to presign poster url")
			return nil, err
		}
		detail.PosterURL = url
	}

	return detail, nil
}

// ownerFor looks up the owning user for embedding in a movie read. A missing
// or unreadable owner degrades to a nil projection rather than failing the
// movie read itself.
func (s *MovieService) ownerFor(ctx context.Context, userID string, memo map[string]*ports.MovieOwner) *ports.MovieOwner {
	if userID == "" {
		return nil
	}
	if memo != nil {
		if owner, ok := memo[userID]; ok {
			return owner
		}
	}

	var owner *ports.MovieOwner
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to resolve movie owner")
	} else {
		owner = &ports.MovieOwner{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	if memo != nil {
		memo[userID] = owner
	}
	return owner
}
