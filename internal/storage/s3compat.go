package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chartmuseum/storage"
)

// S3CompatConfig encapsulates the connection info for S3-compatible services
// (Sevalla, Wasabi, self-hosted gateways) that need path-style addressing.
type S3CompatConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// S3CompatClient implements ObjectStorage on chartmuseum's Amazon storage backend.
type S3CompatClient struct {
	endpoint string
	region   string

	mu       sync.Mutex
	backends map[string]storage.Backend
	newFn    func(bucket string) storage.Backend
}

// NewS3CompatClient builds a new S3CompatClient.
func NewS3CompatClient(cfg S3CompatConfig) (*S3CompatClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3compat endpoint must be provided")
	}

	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		scheme := "https"
		if !cfg.UseSSL {
			scheme = "http"
		}
		endpoint = fmt.Sprintf("%s://%s", scheme, strings.TrimPrefix(cfg.Endpoint, "//"))
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "ap-south-1"
	}

	// chartmuseum's Amazon backend takes no credentials argument and only
	// reads them from the process environment, so explicit keys are exported.
	env := map[string]string{
		"AWS_REGION":         region,
		"AWS_DEFAULT_REGION": region,
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		env["AWS_ACCESS_KEY_ID"] = cfg.AccessKey
		env["AWS_SECRET_ACCESS_KEY"] = cfg.SecretKey
	}
	for key, value := range env {
		if err := os.Setenv(key, value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	c := &S3CompatClient{
		endpoint: endpoint,
		region:   region,
		backends: make(map[string]storage.Backend),
	}
	c.newFn = c.newAmazonBackend
	return c, nil
}

func (c *S3CompatClient) newAmazonBackend(bucket string) storage.Backend {
	return storage.NewAmazonS3BackendWithOptions(
		bucket,
		"", // no prefix
		c.region,
		c.endpoint,
		"",
		&storage.AmazonS3Options{
			S3ForcePathStyle: awsBool(true),
		},
	)
}

func (c *S3CompatClient) backend(bucket string) storage.Backend {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.backends[bucket]
	if !ok {
		b = c.newFn(bucket)
		c.backends[bucket] = b
	}
	return b
}

// DownloadObject downloads an object to the provided destination path.
func (c *S3CompatClient) DownloadObject(ctx context.Context, bucket, key, destPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	object, err := c.backend(bucket).GetObject(key)
	if err != nil {
		return fmt.Errorf("s3compat get %s/%s failed: %w", bucket, key, err)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed creating directory for %s: %w", destPath, err)
	}
	if err := os.WriteFile(destPath, object.Content, 0o644); err != nil {
		return fmt.Errorf("failed writing %s: %w", destPath, err)
	}
	return nil
}

var _ ObjectStorage = (*S3CompatClient)(nil)

func awsBool(v bool) *bool {
	return &v
}
