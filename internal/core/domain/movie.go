package domain

import (
	"errors"
	"time"
)

// Release status of a movie relative to the current date.
const (
	StatusReleased = "Released"
	StatusUpcoming = "Upcoming"
)

// Ratings is the fixed set of accepted age classifications.
var Ratings = []string{"L", "10", "12", "14", "16", "18"}

var ErrMovieNotFound = errors.New("movie not found")
var ErrForbidden = errors.New("access forbidden")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPasswordMismatch = errors.New("passwords do not match")

// ValidRating reports whether r is one of the accepted classifications.
func ValidRating(r string) bool {
	for _, v := range Ratings {
		if v == r {
			return true
		}
	}
	return false
}

// Movie is the core aggregate. Optional numeric fields use pointers so that
// absent and zero stay distinguishable. PosterKey holds the object-storage
// key, never a URL; resolution to a signed URL happens at serialization time.
type Movie struct {
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
	PosterKey     string
	UserID        string
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Profit returns revenue minus budget when both are present, nil otherwise.
// Not persisted.
func (m *Movie) Profit() *int64 {
	if m.Revenue == nil || m.Budget == nil {
		return nil
	}
	p := *m.Revenue - *m.Budget
	return &p
}

// ReleaseStatus reports whether the movie is out yet, relative to now.
func (m *Movie) ReleaseStatus(now time.Time) string {
	if m.ReleaseDate.After(now) {
		return StatusUpcoming
	}
	return StatusReleased
}

// Deleted reports whether the movie carries a soft-delete marker.
func (m *Movie) Deleted() bool {
	return m.DeletedAt != nil
}
