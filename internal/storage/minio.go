package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig encapsulates the connection info for AWS S3 through minio-go.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	PathStyle bool
}

// MinioClient implements ObjectStorage on minio-go.
type MinioClient struct {
	client *minio.Client
}

// NewMinioClient builds a MinioClient. Static keys are used when both are
// set; otherwise credentials come from the AWS environment variables, the
// shared credentials file or the instance role, in that order.
func NewMinioClient(cfg MinioConfig) (*MinioClient, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "ap-south-1"
	}

	var creds *credentials.Credentials
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	}

	lookup := minio.BucketLookupAuto
	if cfg.PathStyle {
		lookup = minio.BucketLookupPath
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        creds,
		Secure:       cfg.UseSSL,
		Region:       region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioClient{client: client}, nil
}

// DownloadObject streams the object straight into destPath.
func (c *MinioClient) DownloadObject(ctx context.Context, bucket, key, destPath string) error {
	if err := c.client.FGetObject(ctx, bucket, key, destPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("minio get %s/%s failed: %w", bucket, key, err)
	}
	return nil
}

var _ ObjectStorage = (*MinioClient)(nil)
