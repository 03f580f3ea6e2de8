package ports

import (
	"context"
	"time"
)

// CreateMovieInput carries all data needed to create a movie. Optional
// numeric fields are pointers so absent and zero stay distinguishable.
type CreateMovieInput struct {
	Title         string
	OriginalTitle string
	ReleaseDate   time.Time
	Description   string
	Duration      int
	Budget        *int64
	Revenue       *int64
	Votes         *int64
	Score         *float64
	Rating        string
	Genre         string
	Language      string
	PosterKey     string
}

// MovieOwner is the joined owner projection embedded in movie reads.
type MovieOwner struct {
	ID    string
	Name  string
	Email string
}

// MovieDetail is the full movie view returned by the service. PosterURL is a
// signed, time-limited URL when a poster exists, empty otherwise. Profit,
// Status and Owner are derived at read time, never persisted on the movie.
type MovieDetail struct {
	ID            string
	Title         string
	OriginalTitle string
	ReleaseDate   time.Time
	Description   string
	Duration      int
	Budget        *int64
	Revenue       *int64
	Votes         *int64
	Score         *float64
	Rating        string
	Genre         string
	Language      string
	PosterURL     string
	Profit        *int64
	Status        string
	UserID        string
	Owner         *MovieOwner
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Pagination describes the window of a list response.
type Pagination struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

// ListMoviesResult is returned by ListMovies.
type ListMoviesResult struct {
	Movies     []MovieDetail
	Pagination Pagination
}

// RemoveMovieResult confirms a soft delete.
type RemoveMovieResult struct {
	Message   string
	DeletedAt time.Time
}

// MovieService defines use-case operations for movies.
type MovieService interface {
	CreateMovie(ctx context.Context, input CreateMovieInput, ownerID string) (*MovieDetail, error)
	ListMovies(ctx context.Context, filter ListMoviesFilter) (*ListMoviesResult, error)
	GetMovie(ctx context.Context, id, requesterID string) (*MovieDetail, error)
	UpdateMovie(ctx context.Context, id string, patch UpdateMoviePatch, requesterID string) (*MovieDetail, error)
	RemoveMovie(ctx context.Context, id, requesterID string) (*RemoveMovieResult, error)
}
