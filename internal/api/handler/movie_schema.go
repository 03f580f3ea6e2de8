package handler

import "time"

// --- Request types ---

// releaseDate binds as a string: browser date inputs submit a bare
// YYYY-MM-DD, which time.Time's JSON unmarshal would reject. The mapper
// parses it, accepting RFC 3339 as well.
type createMovieRequest struct {
	Title         string   `json:"title" validate:"required"`
	OriginalTitle string   `json:"originalTitle" validate:"required"`
	ReleaseDate   string   `json:"releaseDate" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Duration      int      `json:"duration" validate:"required,min=1,max=600"`
	Budget        *int64   `json:"budget,omitempty" validate:"omitempty,min=0"`
	Revenue       *int64   `json:"revenue,omitempty" validate:"omitempty,min=0"`
	Votes         *int64   `json:"votes,omitempty" validate:"omitempty,min=0"`
	Score         *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=10"`
	Rating        string   `json:"rating,omitempty" validate:"omitempty,oneof=L 10 12 14 16 18"`
	Genre         string   `json:"genre,omitempty"`
	Language      string   `json:"language,omitempty"`
	PosterURL     string   `json:"posterUrl,omitempty"`
}

// updateMovieRequest mirrors createMovieRequest with every field optional.
// Owner and soft-delete marker are not bindable.
type updateMovieRequest struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	OriginalTitle *string  `json:"originalTitle,omitempty" validate:"omitempty,min=1"`
	ReleaseDate   *string  `json:"releaseDate,omitempty"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Duration      *int     `json:"duration,omitempty" validate:"omitempty,min=1,max=600"`
	Budget        *int64   `json:"budget,omitempty" validate:"omitempty,min=0"`
	Revenue       *int64   `json:"revenue,omitempty" validate:"omitempty,min=0"`
	Votes         *int64   `json:"votes,omitempty" validate:"omitempty,min=0"`
	Score         *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=10"`
	Rating        *string  `json:"rating,omitempty" validate:"omitempty,oneof=L 10 12 14 16 18"`
	Genre         *string  `json:"genre,omitempty"`
	Language      *string  `json:"language,omitempty"`
	PosterURL     *string  `json:"posterUrl,omitempty"`
}

type listMoviesQuery struct {
	Page        int    `query:"page"`
	Limit       int    `query:"limit"`
	Search      string `query:"search"`
	MinDuration int    `query:"minDuration" validate:"omitempty,min=1"`
	MaxDuration int    `query:"maxDuration" validate:"omitempty,min=1"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
	Genre       string `query:"genre"`
}

// --- Response types ---

// ownerResponse is the joined owner projection embedded in every movie.
type ownerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type movieResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	OriginalTitle string         `json:"originalTitle"`
	ReleaseDate   time.Time      `json:"releaseDate"`
	Description   string         `json:"description"`
	Duration      int            `json:"duration"`
	Budget        *int64         `json:"budget,omitempty"`
	Revenue       *int64         `json:"revenue,omitempty"`
	Votes         *int64         `json:"votes,omitempty"`
	Score         *float64       `json:"score,omitempty"`
	Rating        string         `json:"rating,omitempty"`
	Genre         string         `json:"genre,omitempty"`
	Language      string         `json:"language,omitempty"`
	PosterURL     string         `json:"posterUrl,omitempty"`
	Profit        *int64         `json:"profit,omitempty"`
	Status        string         `json:"status"`
	UserID        string         `json:"userId"`
	User          *ownerResponse `json:"user,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type paginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type listMoviesResponse struct {
	Movies     []movieResponse    `json:"movies"`
	Pagination paginationResponse `json:"pagination"`
}

type removeMovieResponse struct {
	Message   string    `json:"message"`
	DeletedAt time.Time `json:"deletedAt"`
}

type uploadPosterResponse struct {
	URL string `json:"url"`
}
