package handler

import (
	"time"

	"github.com/cinevault/movie-catalog/internal/core/ports"
)

func toMovieResponse(d *ports.MovieDetail) movieResponse {
	resp := movieResponse{
		ID:            d.ID,
		Title:         d.Title,
		OriginalTitle: d.OriginalTitle,
		ReleaseDate:   d.ReleaseDate,
		Description:   d.Description,
		Duration:      d.Duration,
		Budget:        d.Budget,
		Revenue:       d.Revenue,
		Votes:         d.Votes,
		Score:         d.Score,
		Rating:        d.Rating,
		Genre:         d.Genre,
		Language:      d.Language,
		PosterURL:     d.PosterURL,
		Profit:        d.Profit,
		Status:        d.Status,
		UserID:        d.UserID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Owner != nil {
		resp.User = &ownerResponse{
			ID:    d.Owner.ID,
			Name:  d.Owner.Name,
			Email: d.Owner.Email,
		}
	}
	return resp
}

func toCreateInput(req *createMovieRequest) (ports.CreateMovieInput, error) {
	releaseDate, err := parseDate(req.ReleaseDate)
	if err != nil {
		return ports.CreateMovieInput{}, err
	}
	return ports.CreateMovieInput{
		Title:         req.Title,
		OriginalTitle: req.OriginalTitle,
		ReleaseDate:   releaseDate,
		Description:   req.Description,
		Duration:      req.Duration,
		Budget:        req.Budget,
		Revenue:       req.Revenue,
		Votes:         req.Votes,
		Score:         req.Score,
		Rating:        req.Rating,
		Genre:         req.Genre,
		Language:      req.Language,
		PosterKey:     req.PosterURL,
	}, nil
}

func toUpdatePatch(req *updateMovieRequest) (ports.UpdateMoviePatch, error) {
	patch := ports.UpdateMoviePatch{
		Title:         req.Title,
		OriginalTitle: req.OriginalTitle,
		Description:   req.Description,
		Duration:      req.Duration,
		Budget:        req.Budget,
		Revenue:       req.Revenue,
		Votes:         req.Votes,
		Score:         req.Score,
		Rating:        req.Rating,
		Genre:         req.Genre,
		Language:      req.Language,
		PosterKey:     req.PosterURL,
	}
	if req.ReleaseDate != nil {
		t, err := parseDate(*req.ReleaseDate)
		if err != nil {
			return ports.UpdateMoviePatch{}, err
		}
		patch.ReleaseDate = &t
	}
	return patch, nil
}

// toListFilter parses the query params; date bounds accept RFC3339 or a bare
// YYYY-MM-DD. A malformed date is reported, not silently dropped.
func toListFilter(q *listMoviesQuery) (ports.ListMoviesFilter, error) {
	filter := ports.ListMoviesFilter{
		Page:        q.Page,
		Limit:       q.Limit,
		Search:      q.Search,
		Genre:       q.Genre,
		MinDuration: q.MinDuration,
		MaxDuration: q.MaxDuration,
	}

	if q.StartDate != "" {
		t, err := parseDate(q.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &t
	}
	return filter, nil
}

// parseDate accepts RFC3339 or the bare YYYY-MM-DD that browser date inputs
// submit.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
