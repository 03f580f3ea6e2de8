// Package storage implements the poster store on any S3-compatible backend
// (R2, MinIO, AWS) through the MinIO SDK. Uploads go in under a uuid-prefixed
// key; reads go out as presigned URLs with a fixed 1h expiry.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/cinevault/movie-catalog/internal/api/metrics"
	"github.com/cinevault/movie-catalog/internal/core/ports"
)

const presignExpiry = time.Hour

// Config captures the settings for the S3-compatible backend.
type Config struct {
	Endpoint  string // may carry a scheme; https is assumed when absent
	AccessKey string
	SecretKey string
	Bucket    string
}

// URLCache is the optional cache consulted before signing. A nil cache
// disables caching; cache errors degrade to signing, never to failure.
type URLCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, url string) error
}

// S3Store implements ports.PosterStore.
type S3Store struct {
	client *minio.Client
	bucket string
	cache  URLCache
}

var _ ports.PosterStore = (*S3Store)(nil)

// New builds an S3Store from cfg. cache may be nil.
func New(cfg Config, cache URLCache) (*S3Store, error) {
	endpoint := cfg.Endpoint
	secure := true
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		secure = u.Scheme != "http"
		endpoint = u.Host
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init client: %w", err)
	}

	return &S3Store{client: client, bucket: cfg.Bucket, cache: cache}, nil
}

// Upload stores the poster under a globally unique key and returns the key.
func (s *S3Store) Upload(ctx context.Context, input ports.UploadPosterInput) (string, error) {
	key := uuid.NewString() + "-" + sanitizeFilename(input.Filename)

	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(input.Body), int64(len(input.Body)),
		minio.PutObjectOptions{ContentType: input.ContentType})
	if err != nil {
		metrics.PosterUploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}

	metrics.PosterUploadsTotal.WithLabelValues("ok").Inc()
	return key, nil
}

// PresignURL exchanges a storage key for a time-limited signed GET URL,
// reusing a cached signature when one is still fresh.
func (s *S3Store) PresignURL(ctx context.Context, key string) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			metrics.PosterPresignCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.PosterPresignCacheTotal.WithLabelValues("miss").Inc()
	}

	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("storage: presign %s: %w", key, err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, signed.String())
	}
	return signed.String(), nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeFilename strips path components and replaces anything outside a
// conservative character set.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		return "poster"
	}
	return name
}
