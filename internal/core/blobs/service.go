package blobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
)

// Validation errors surfaced to API clients as 400s.
var (
	// ErrEmptyBlob is returned for zero-length uploads
	ErrEmptyBlob = errors.New("image data is empty")

	// ErrBlobTooLarge is returned when the upload exceeds MaxBlobSize
	ErrBlobTooLarge = fmt.Errorf("image exceeds maximum size of %d bytes", MaxBlobSize)

	// ErrUnsupportedMimeType is returned for non-image uploads
	ErrUnsupportedMimeType = errors.New("unsupported image type (allowed: image/jpeg, image/png, image/webp, image/gif)")
)

// IsValidationError checks if an error is a client-caused upload error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyBlob) ||
		errors.Is(err, ErrBlobTooLarge) ||
		errors.Is(err, ErrUnsupportedMimeType)
}

// Service defines the interface for blob storage. Store validates and
// persists an image, returning the URL path it is retrievable at.
type Service interface {
	Store(ctx context.Context, data []byte, mimeType string) (string, error)
}

// fsStore writes blobs to a local directory served statically under
// urlPrefix. Filenames are random UUIDs, so stored blobs never collide and
// client-supplied names never reach the filesystem.
type fsStore struct {
	dir       string
	urlPrefix string
	logger    *slog.Logger
}

// NewFSStore creates a filesystem blob store rooted at dir. Stored blobs are
// addressed as urlPrefix/<name> (e.g. /uploads/ab12….png).
func NewFSStore(dir, urlPrefix string, logger *slog.Logger) (Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &fsStore{
		dir:       dir,
		urlPrefix: "/" + trimSlashes(urlPrefix),
		logger:    logger,
	}, nil
}

// Store validates the image and writes it to disk.
func (s *fsStore) Store(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyBlob
	}
	if len(data) > MaxBlobSize {
		return "", ErrBlobTooLarge
	}

	ext := ExtensionFor(mimeType)
	if ext == "" {
		return "", ErrUnsupportedMimeType
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate blob name: %w", err)
	}
	name := id.String() + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	s.logger.Info("blob stored", "name", name, "size", len(data), "mime_type", NormalizeMimeType(mimeType))

	return s.urlPrefix + "/" + name, nil
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
