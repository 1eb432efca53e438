package service

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/andresuchdata/material-price-dispatch/internal/cliq"
	"github.com/andresuchdata/material-price-dispatch/internal/domain"
)

// MockTokenRefresher is a mock implementation of auth.TokenRefresher
type MockTokenRefresher struct {
	mock.Mock
}

func (m *MockTokenRefresher) Refresh(ctx context.Context, creds domain.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

// MockStorage is a mock implementation of storage.ObjectStorage. When the
// call succeeds, Content is written to destPath.
type MockStorage struct {
	mock.Mock
	Content []byte
}

func (m *MockStorage) DownloadObject(ctx context.Context, bucket, key, destPath string) error {
	args := m.Called(ctx, bucket, key, destPath)
	if err := args.Error(0); err != nil {
		return err
	}
	return os.WriteFile(destPath, m.Content, 0o600)
}

// MockUploader is a mock implementation of cliq.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadFile(ctx context.Context, req cliq.UploadRequest) domain.UploadResult {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.UploadResult)
}
