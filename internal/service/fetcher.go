package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andresuchdata/material-price-dispatch/internal/domain"
	"github.com/andresuchdata/material-price-dispatch/internal/storage"
	"github.com/andresuchdata/material-price-dispatch/pkg/logger"
)

// ObjectFetcher downloads the source object into a scratch file.
type ObjectFetcher struct {
	storage    storage.ObjectStorage
	scratchDir string
}

// NewObjectFetcher creates an ObjectFetcher writing into scratchDir
// (the OS temp dir when empty).
func NewObjectFetcher(store storage.ObjectStorage, scratchDir string) *ObjectFetcher {
	return &ObjectFetcher{storage: store, scratchDir: scratchDir}
}

// ValidateLocation reports a ConfigurationError when bucket or key is empty.
func ValidateLocation(loc domain.ObjectLocation) error {
	if loc.Bucket == "" {
		return domain.NewConfigurationError("AWS_S3_BUCKET", "")
	}
	if loc.Key == "" {
		return domain.NewConfigurationError("AWS_S3_FILE_KEY", "")
	}
	return nil
}

// Fetch downloads loc and returns the scratch file path. The scratch file
// keeps the object key's extension so the upload carries a matching suffix.
func (f *ObjectFetcher) Fetch(ctx context.Context, loc domain.ObjectLocation) (string, error) {
	if err := ValidateLocation(loc); err != nil {
		return "", err
	}

	if f.scratchDir != "" {
		if err := os.MkdirAll(f.scratchDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create scratch dir %s: %w", f.scratchDir, err)
		}
	}

	tmp, err := os.CreateTemp(f.scratchDir, "dispatch-*"+filepath.Ext(loc.Key))
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	path := tmp.Name()
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close scratch file %s: %w", path, err)
	}

	if err := f.storage.DownloadObject(ctx, loc.Bucket, loc.Key, path); err != nil {
		// Best effort: the run aborts here, nothing else will touch the file.
		_ = os.Remove(path)
		return "", &domain.StorageError{Bucket: loc.Bucket, Key: loc.Key, Err: err}
	}

	logger.Log.Info().
		Str("source", loc.String()).
		Str("path", path).
		Msg("downloaded file from storage")
	return path, nil
}
