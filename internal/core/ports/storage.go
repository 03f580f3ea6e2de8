package ports

import "context"

// UploadPosterInput carries a poster binary to store.
type UploadPosterInput struct {
	Filename    string
	ContentType string
	Body        []byte
}

// PosterStore abstracts the object-storage backend. Upload returns the
// storage key (not a URL); PresignURL exchanges a key for a time-limited
// signed read URL. Neither operation retries: infrastructure errors
// propagate to the caller.
type PosterStore interface {
	Upload(ctx context.Context, input UploadPosterInput) (string, error)
	PresignURL(ctx context.Context, key string) (string, error)
}
