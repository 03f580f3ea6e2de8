package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	dto "github.com/prometheus/client_model/go"

	"github.com/cinevault/movie-catalog/internal/api/metrics"
	"github.com/cinevault/movie-catalog/internal/core/domain"
	"github.com/cinevault/movie-catalog/internal/core/ports"
)

type stubMovieService struct {
	createDetail *ports.MovieDetail
	createErr    error
	createInput  ports.CreateMovieInput
	createOwner  string

	listResult *ports.ListMoviesResult
	listErr    error
	listFilter ports.ListMoviesFilter

	getDetail *ports.MovieDetail
	getErr    error

	updateDetail *ports.MovieDetail
	updateErr    error
	updatePatch  ports.UpdateMoviePatch

	removeResult *ports.RemoveMovieResult
	removeErr    error
	removedID    string
}

func (s *stubMovieService) CreateMovie(_ context.Context, input ports.CreateMovieInput, ownerID string) (*ports.MovieDetail, error) {
	s.createInput = input
	s.createOwner = ownerID
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createDetail, nil
}

func (s *stubMovieService) ListMovies(_ context.Context, filter ports.ListMoviesFilter) (*ports.ListMoviesResult, error) {
	s.listFilter = filter
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listResult, nil
}

func (s *stubMovieService) GetMovie(_ context.Context, _, _ string) (*ports.MovieDetail, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getDetail, nil
}

func (s *stubMovieService) UpdateMovie(_ context.Context, _ string, patch ports.UpdateMoviePatch, _ string) (*ports.MovieDetail, error) {
	s.updatePatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updateDetail, nil
}

func (s *stubMovieService) RemoveMovie(_ context.Context, id, _ string) (*ports.RemoveMovieResult, error) {
	s.removedID = id
	if s.removeErr != nil {
		return nil, s.removeErr
	}
	return s.removeResult, nil
}

func sampleDetail() *ports.MovieDetail {
	profit := int64(1_500_000)
	return &ports.MovieDetail{
		ID:          "movie_1",
		Title:       "Heat",
		ReleaseDate: time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC),
		Description: "a heist film",
		Duration:    170,
		Profit:      &profit,
		Status:      domain.StatusReleased,
		UserID:      "user_1",
		Owner:       &ports.MovieOwner{ID: "user_1", Name: "Ana", Email: "ana@example.com"},
		PosterURL:   "https://storage.example.com/signed/key.png",
	}
}

// newMovieContext simulates a request that already passed the Auth middleware.
func newMovieContext(method, path, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestMovieHandler_Create_Success(t *testing.T) {
	svc := &stubMovieService{createDetail: sampleDetail()}
	h := NewMovieHandler(svc)

	body := `{"title":"Heat","originalTitle":"Heat","releaseDate":"1995-12-15T00:00:00Z","description":"a heist film","duration":170,"posterUrl":"key.png"}`
	c, rec := newMovieContext(http.MethodPost, "/movies", body, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.createOwner != "user_1" {
		t.Fatalf("owner from token not forwarded, got %q", svc.createOwner)
	}
	// The client-supplied posterUrl is the storage key from the upload step.
	if svc.createInput.PosterKey != "key.png" {
		t.Fatalf("poster key not mapped, got %q", svc.createInput.PosterKey)
	}

	var resp movieResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Profit == nil || *resp.Profit != 1_500_000 {
		t.Fatalf("profit missing from response: %+v", resp.Profit)
	}
	if resp.Status != domain.StatusReleased {
		t.Fatalf("status missing from response: %q", resp.Status)
	}
}

// Browser date inputs submit a bare YYYY-MM-DD rather than RFC 3339; the
// create contract must accept it.
func TestMovieHandler_Create_BareDate(t *testing.T) {
	svc := &stubMovieService{createDetail: sampleDetail()}
	h := NewMovieHandler(svc)

	body := `{"title":"Heat","originalTitle":"Heat","releaseDate":"1995-12-15","description":"a heist film","duration":170}`
	c, rec := newMovieContext(http.MethodPost, "/movies", body, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for bare date, got %d (%s)", rec.Code, rec.Body.String())
	}

	want := time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC)
	if !svc.createInput.ReleaseDate.Equal(want) {
		t.Fatalf("release date parsed as %v, want %v", svc.createInput.ReleaseDate, want)
	}
}

func TestMovieHandler_Create_MalformedDate(t *testing.T) {
	svc := &stubMovieService{}
	h := NewMovieHandler(svc)

	body := `{"title":"Heat","originalTitle":"Heat","releaseDate":"15/12/1995","description":"x","duration":90}`
	c, rec := newMovieContext(http.MethodPost, "/movies", body, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", rec.Code)
	}
	if svc.createOwner != "" {
		t.Fatalf("service called despite malformed date")
	}
}

func TestMovieHandler_Create_Unauthenticated(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{})

	c, _ := newMovieContext(http.MethodPost, "/movies", `{}`, "")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestMovieHandler_Create_InvalidDuration(t *testing.T) {
	svc := &stubMovieService{}
	h := NewMovieHandler(svc)

	body := `{"title":"Heat","originalTitle":"Heat","releaseDate":"1995-12-15T00:00:00Z","description":"x","duration":601}`
	c, rec := newMovieContext(http.MethodPost, "/movies", body, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duration>600, got %d", rec.Code)
	}
	if svc.createOwner != "" {
		t.Fatalf("service called despite invalid payload")
	}
}

func TestMovieHandler_Create_InvalidRating(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{})

	body := `{"title":"Heat","originalTitle":"Heat","releaseDate":"1995-12-15T00:00:00Z","description":"x","duration":90,"rating":"PG-13"}`
	c, rec := newMovieContext(http.MethodPost, "/movies", body, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown rating, got %d", rec.Code)
	}
}

func TestMovieHandler_List_ForwardsFilter(t *testing.T) {
	svc := &stubMovieService{
		listResult: &ports.ListMoviesResult{
			Movies:     []ports.MovieDetail{*sampleDetail()},
			Pagination: ports.Pagination{Page: 2, Limit: 5, Total: 11, Pages: 3},
		},
	}
	h := NewMovieHandler(svc)

	c, rec := newMovieContext(http.MethodGet,
		"/movies?page=2&limit=5&search=heat&minDuration=90&maxDuration=200&startDate=1990-01-01&endDate=2000-12-31&genre=crime",
		"", "user_1")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	f := svc.listFilter
	if f.Page != 2 || f.Limit != 5 || f.Search != "heat" || f.Genre != "crime" {
		t.Fatalf("filter not forwarded: %+v", f)
	}
	if f.MinDuration != 90 || f.MaxDuration != 200 {
		t.Fatalf("duration bounds not forwarded: %+v", f)
	}
	if f.StartDate == nil || f.StartDate.Year() != 1990 {
		t.Fatalf("start date not parsed: %v", f.StartDate)
	}
	if f.EndDate == nil || f.EndDate.Year() != 2000 {
		t.Fatalf("end date not parsed: %v", f.EndDate)
	}

	var resp listMoviesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Pagination.Pages != 3 || resp.Pagination.Total != 11 {
		t.Fatalf("pagination not rendered: %+v", resp.Pagination)
	}
}

func TestMovieHandler_List_RecordsDuration(t *testing.T) {
	svc := &stubMovieService{
		listResult: &ports.ListMoviesResult{
			Movies:     []ports.MovieDetail{},
			Pagination: ports.Pagination{Page: 1, Limit: 10},
		},
	}
	h := NewMovieHandler(svc)

	before := listDurationSamples(t)

	c, _ := newMovieContext(http.MethodGet, "/movies", "", "user_1")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	if after := listDurationSamples(t); after != before+1 {
		t.Fatalf("expected one new duration sample, had %d now %d", before, after)
	}
}

func listDurationSamples(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.ListDuration.Write(&m); err != nil {
		t.Fatalf("read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMovieHandler_List_MalformedDate(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{})

	c, rec := newMovieContext(http.MethodGet, "/movies?startDate=not-a-date", "", "user_1")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", rec.Code)
	}
}

func TestMovieHandler_Get_ForbiddenPropagates(t *testing.T) {
	svc := &stubMovieService{getErr: domain.ErrForbidden}
	h := NewMovieHandler(svc)

	c, _ := newMovieContext(http.MethodGet, "/movies/movie_1", "", "user_2")
	c.SetParamNames("id")
	c.SetParamValues("movie_1")

	err := h.Get(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestMovieHandler_Get_Success(t *testing.T) {
	svc := &stubMovieService{getDetail: sampleDetail()}
	h := NewMovieHandler(svc)

	c, rec := newMovieContext(http.MethodGet, "/movies/movie_1", "", "user_1")
	c.SetParamNames("id")
	c.SetParamValues("movie_1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp movieResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PosterURL != "https://storage.example.com/signed/key.png" {
		t.Fatalf("poster url missing: %q", resp.PosterURL)
	}
	if resp.User == nil || resp.User.Name != "Ana" || resp.User.Email != "ana@example.com" {
		t.Fatalf("owner projection missing from response: %+v", resp.User)
	}
}

func TestMovieHandler_Update_PartialPatch(t *testing.T) {
	svc := &stubMovieService{updateDetail: sampleDetail()}
	h := NewMovieHandler(svc)

	c, rec := newMovieContext(http.MethodPatch, "/movies/movie_1", `{"title":"Renamed"}`, "user_1")
	c.SetParamNames("id")
	c.SetParamValues("movie_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.updatePatch.Title == nil || *svc.updatePatch.Title != "Renamed" {
		t.Fatalf("title patch not forwarded: %+v", svc.updatePatch)
	}
	// Absent fields stay nil so the patch does not clobber them.
	if svc.updatePatch.Duration != nil || svc.updatePatch.Description != nil {
		t.Fatalf("absent fields should stay nil: %+v", svc.updatePatch)
	}
}

func TestMovieHandler_Update_BareDate(t *testing.T) {
	svc := &stubMovieService{updateDetail: sampleDetail()}
	h := NewMovieHandler(svc)

	c, rec := newMovieContext(http.MethodPatch, "/movies/movie_1", `{"releaseDate":"2001-06-30"}`, "user_1")
	c.SetParamNames("id")
	c.SetParamValues("movie_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for bare date, got %d (%s)", rec.Code, rec.Body.String())
	}

	want := time.Date(2001, 6, 30, 0, 0, 0, 0, time.UTC)
	if svc.updatePatch.ReleaseDate == nil || !svc.updatePatch.ReleaseDate.Equal(want) {
		t.Fatalf("release date patch %v, want %v", svc.updatePatch.ReleaseDate, want)
	}
}

func TestMovieHandler_Update_MalformedDate(t *testing.T) {
	h := NewMovieHandler(&stubMovieService{})

	c, rec := newMovieContext(http.MethodPatch, "/movies/movie_1", `{"releaseDate":"soon"}`, "user_1")
	c.SetParamNames("id")
	c.SetParamValues("movie_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", rec.Code)
	}
}

func TestMovieHandler_Update_NotFoundPropagates(t *testing.T) {
	svc := &stubMovieService{updateErr: domain.ErrMovieNotFound}
	h := NewMovieHandler(svc)

	c, _ := newMovieContext(http.MethodPatch, "/movies/missing", `{"title":"X"}`, "user_1")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.Update(c)
	if !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound to propagate, got %v", err)
	}
}

func TestMovieHandler_Remove_Success(t *testing.T) {
	deletedAt := time.Now().UTC()
	svc := &stubMovieService{
		removeResult: &ports.RemoveMovieResult{Message: "movie deleted successfully", DeletedAt: deletedAt},
	}
	h := NewMovieHandler(svc)

	c, rec := newMovieContext(http.MethodDelete, "/movies/movie_1", "", "user_1")
	c.SetParamNames("id")
	c.SetParamValues("movie_1")

	if err := h.Remove(c); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.removedID != "movie_1" {
		t.Fatalf("wrong id forwarded: %q", svc.removedID)
	}

	var resp removeMovieResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message == "" || resp.DeletedAt.IsZero() {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMovieHandler_Remove_ForbiddenPropagates(t *testing.T) {
	svc := &stubMovieService{removeErr: domain.ErrForbidden}
	h := NewMovieHandler(svc)

	c, _ := newMovieContext(http.MethodDelete, "/movies/movie_1", "", "user_2")
	c.SetParamNames("id")
	c.SetParamValues("movie_1")

	err := h.Remove(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}
