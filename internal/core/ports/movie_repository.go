package ports

import (
	"context"
	"time"

	"github.com/cinevault/movie-catalog/internal/core/domain"
)

// ListMoviesFilter carries all query parameters for listing movies.
// All criteria are combined conjunctively; soft-deleted rows are always
// excluded by the repository.
type ListMoviesFilter struct {
	Search      string     // optional: case-insensitive substring on title or original title
	Genre       string     // optional: case-insensitive substring
	MinDuration int        // optional when 0: duration >= MinDuration
	MaxDuration int        // optional when 0: duration <= MaxDuration
	StartDate   *time.Time // optional: release_date >= StartDate
	EndDate     *time.Time // optional: release_date <= EndDate
	Page        int        // 1-based
	Limit       int        // max rows per page (capped at 100 by service)
}

// UpdateMoviePatch is a partial update. Nil fields are left untouched.
// Owner and soft-delete marker are deliberately not representable here.
type UpdateMoviePatch struct {
	Title         *string
	OriginalTitle *string
	ReleaseDate   *time.Time
	Description   *string
	Duration      *int
	Budget        *int64
	Revenue       *int64
	Votes         *int64
	Score         *float64
	Rating        *string
	Genre         *string
	Language      *string
	PosterKey     *string
}

// MovieRepository defines persistence operations for movies. Every read is
// scoped to non-deleted rows; UpdateOwned and SoftDeleteOwned additionally
// scope the write to the owning user inside a single conditional mutation,
// so the ownership check cannot race the write.
type MovieRepository interface {
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	// FindByID retrieves a non-deleted movie regardless of owner.
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	// List returns a page of movies matching filter and the total count.
	List(ctx context.Context, filter ListMoviesFilter) ([]*domain.Movie, int64, error)
	// UpdateOwned applies patch where id matches, the row is not deleted and
	// userID owns it. Returns ErrMovieNotFound when no row matched.
	UpdateOwned(ctx context.Context, id, userID string, patch UpdateMoviePatch) (*domain.Movie, error)
	// SoftDeleteOwned stamps deleted_at under the same conditions as UpdateOwned.
	SoftDeleteOwned(ctx context.Context, id, userID string) (time.Time, error)
}
