package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/movie-catalog/internal/core/ports"
)

const maxPosterSize = 2 << 20 // 2MB

var allowedPosterTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
}

// UploadHandler handles poster uploads to object storage.
type UploadHandler struct {
	store ports.PosterStore
}

func NewUploadHandler(store ports.PosterStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadPoster handles POST /movies/upload-poster.
//
// The response carries the storage key under "url"; the client sends it back
// as the movie's posterUrl field and reads get a signed URL in its place.
//
// @Summary      Upload a movie poster
// @Tags         movies
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        poster  formData  file  true  "Poster image (png/jpg/jpeg, max 2MB)"
// @Success      201     {object}  uploadPosterResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /movies/upload-poster [post]
func (h *UploadHandler) UploadPoster(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	file, err := c.FormFile("poster")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "poster file is required"})
	}

	if file.Size > maxPosterSize {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "poster must not exceed 2MB"})
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedPosterTypes[contentType]; !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "poster must be a png or jpeg image"})
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// Size was checked against the multipart header; the limit reader guards
	// against a lying Content-Length.
	body, err := io.ReadAll(io.LimitReader(src, maxPosterSize+1))
	if err != nil {
		return err
	}
	if len(body) > maxPosterSize {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "poster must not exceed 2MB"})
	}

	key, err := h.store.Upload(c.Request().Context(), ports.UploadPosterInput{
		Filename:    file.Filename,
		ContentType: contentType,
		Body:        body,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadPosterResponse{URL: key})
}
