package storage

import "fmt"

// Options selects and configures a storage driver.
type Options struct {
	Driver    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// New returns the ObjectStorage for opts.Driver ("minio" or "s3compat").
func New(opts Options) (ObjectStorage, error) {
	switch opts.Driver {
	case "", "minio":
		return NewMinioClient(MinioConfig{
			Endpoint:  opts.Endpoint,
			AccessKey: opts.AccessKey,
			SecretKey: opts.SecretKey,
			Region:    opts.Region,
			UseSSL:    opts.UseSSL,
		})
	case "s3compat":
		return NewS3CompatClient(S3CompatConfig{
			Endpoint:  opts.Endpoint,
			AccessKey: opts.AccessKey,
			SecretKey: opts.SecretKey,
			Region:    opts.Region,
			UseSSL:    opts.UseSSL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}
