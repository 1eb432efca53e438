package storage

import "context"

// ObjectStorage captures the S3-compatible download the dispatcher needs.
type ObjectStorage interface {
	// DownloadObject writes the full content of bucket/key to destPath,
	// replacing whatever is there.
	DownloadObject(ctx context.Context, bucket, key, destPath string) error
}
