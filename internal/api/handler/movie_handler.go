package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/movie-catalog/internal/api/metrics"
	"github.com/cinevault/movie-catalog/internal/core/ports"
)

// MovieHandler handles HTTP requests for movie operations. The Auth
// middleware runs before every route registered on it.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// Create handles POST /movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMovieRequest  true  "Movie fields"
// @Success      201   {object}  movieResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createMovieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	input, err := toCreateInput(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid release date"})
	}

	detail, err := h.service.CreateMovie(c.Request().Context(), input, userID)
	if err != nil {
		return err
	}

	metrics.MoviesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toMovieResponse(detail))
}

// List handles GET /movies with filtering and pagination.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size"
// @Param        search       query     string  false  "Substring match on title or original title"
// @Param        minDuration  query     int     false  "Minimum duration (inclusive)"
// @Param        maxDuration  query     int     false  "Maximum duration (inclusive)"
// @Param        startDate    query     string  false  "Release date lower bound (YYYY-MM-DD)"
// @Param        endDate      query     string  false  "Release date upper bound (YYYY-MM-DD)"
// @Param        genre        query     string  false  "Substring match on genre"
// @Success      200          {object}  listMoviesResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var q listMoviesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	filter, err := toListFilter(&q)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date filter"})
	}

	start := time.Now()
	result, err := h.service.ListMovies(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	metrics.ListDuration.Observe(time.Since(start).Seconds())

	movies := make([]movieResponse, 0, len(result.Movies))
	for i := range result.Movies {
		movies = append(movies, toMovieResponse(&result.Movies[i]))
	}

	return c.JSON(http.StatusOK, listMoviesResponse{
		Movies: movies,
		Pagination: paginationResponse{
			Page:  result.Pagination.Page,
			Limit: result.Pagination.Limit,
			Total: result.Pagination.Total,
			Pages: result.Pagination.Pages,
		},
	})
}

// Get handles GET /movies/:id.
//
// @Summary      Get a movie by id
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  movieResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetMovie(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMovieResponse(detail))
}

// Update handles PATCH /movies/:id.
//
// @Summary      Partially update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Movie id"
// @Param        body  body      updateMovieRequest  true  "Fields to change"
// @Success      200   {object}  movieResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /movies/{id} [patch]
func (h *MovieHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateMovieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	patch, err := toUpdatePatch(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid release date"})
	}

	detail, err := h.service.UpdateMovie(c.Request().Context(), c.Param("id"), patch, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMovieResponse(detail))
}

// Remove handles DELETE /movies/:id (soft delete).
//
// @Summary      Soft-delete a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  removeMovieResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.RemoveMovie(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}

	metrics.MoviesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, removeMovieResponse{
		Message:   result.Message,
		DeletedAt: result.DeletedAt,
	})
}
