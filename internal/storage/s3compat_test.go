package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chartmuseum/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	storage.Backend
	objects map[string][]byte
	gets    []string
}

func (f *fakeBackend) GetObject(path string) (storage.Object, error) {
	f.gets = append(f.gets, path)
	content, ok := f.objects[path]
	if !ok {
		return storage.Object{}, errors.New("NoSuchKey: object does not exist")
	}
	return storage.Object{Path: path, Content: content}, nil
}

func newTestS3CompatClient(t *testing.T, backend *fakeBackend) *S3CompatClient {
	t.Helper()
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	client, err := NewS3CompatClient(S3CompatConfig{Endpoint: "storage.example.com", Region: "eu-central-1"})
	require.NoError(t, err)
	client.newFn = func(bucket string) storage.Backend {
		assert.Equal(t, "prices", bucket)
		return backend
	}
	return client
}

func TestNewS3CompatClient(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	_, err := NewS3CompatClient(S3CompatConfig{})
	assert.Error(t, err)

	client, err := NewS3CompatClient(S3CompatConfig{Endpoint: "storage.example.com", UseSSL: false})
	require.NoError(t, err)
	assert.Equal(t, "http://storage.example.com", client.endpoint)
	assert.Equal(t, "ap-south-1", client.region)

	client, err = NewS3CompatClient(S3CompatConfig{Endpoint: "https://storage.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com", client.endpoint)
}

func TestNewS3CompatClient_ExportsCredentials(t *testing.T) {
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"} {
		t.Setenv(key, "")
	}

	_, err := NewS3CompatClient(S3CompatConfig{
		Endpoint:  "storage.example.com",
		AccessKey: "access",
		SecretKey: "secret",
		Region:    "eu-central-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "access", os.Getenv("AWS_ACCESS_KEY_ID"))
	assert.Equal(t, "secret", os.Getenv("AWS_SECRET_ACCESS_KEY"))
	assert.Equal(t, "eu-central-1", os.Getenv("AWS_DEFAULT_REGION"))
}

func TestNewS3CompatClient_InvalidCredentialValue(t *testing.T) {
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"} {
		t.Setenv(key, "")
	}

	client, err := NewS3CompatClient(S3CompatConfig{
		Endpoint:  "storage.example.com",
		AccessKey: "bad\x00key",
		SecretKey: "secret",
	})
	assert.Nil(t, client)
	assert.ErrorContains(t, err, "AWS_ACCESS_KEY_ID")
}

func TestS3CompatClient_DownloadObject(t *testing.T) {
	backend := &fakeBackend{objects: map[string][]byte{"daily/chart.png": []byte("png")}}
	client := newTestS3CompatClient(t, backend)

	dest := filepath.Join(t.TempDir(), "nested", "chart.png")
	require.NoError(t, client.DownloadObject(context.Background(), "prices", "daily/chart.png", dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))

	// backend is built once per bucket
	require.NoError(t, client.DownloadObject(context.Background(), "prices", "daily/chart.png", dest))
	assert.Len(t, client.backends, 1)
	assert.Equal(t, []string{"daily/chart.png", "daily/chart.png"}, backend.gets)
}

func TestS3CompatClient_DownloadObject_Error(t *testing.T) {
	client := newTestS3CompatClient(t, &fakeBackend{objects: map[string][]byte{}})

	dest := filepath.Join(t.TempDir(), "chart.png")
	err := client.DownloadObject(context.Background(), "prices", "daily/chart.png", dest)
	assert.ErrorContains(t, err, "NoSuchKey")
	assert.NoFileExists(t, dest)
}

func TestNew(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	s, err := New(Options{Driver: "minio", Endpoint: "s3.amazonaws.com", UseSSL: true})
	require.NoError(t, err)
	assert.IsType(t, &MinioClient{}, s)

	s, err = New(Options{Driver: "s3compat", Endpoint: "storage.example.com"})
	require.NoError(t, err)
	assert.IsType(t, &S3CompatClient{}, s)

	_, err = New(Options{Driver: "gcs"})
	assert.Error(t, err)
}
