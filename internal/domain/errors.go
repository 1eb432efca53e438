package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError
var ErrConfiguration = errors.New("configuration error")

// ErrAuth is matched by every *AuthError
var ErrAuth = errors.New("auth error")

// ErrStorage is matched by every *StorageError
var ErrStorage = errors.New("storage error")

// ErrUpload is matched by every *UploadError
var ErrUpload = errors.New("upload error")

// ConfigurationError reports a missing or empty required setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration error: %s must be set", e.Field)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NewConfigurationError builds a ConfigurationError for field.
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// AuthError reports a failed or malformed token refresh.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("auth error: token endpoint returned %d: %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("auth error: %v", e.Err)
	default:
		return "auth error: " + e.Body
	}
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// StorageError reports a failed object download.
type StorageError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: download s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// UploadError is the typed view of a failed upload entry. It is recorded, never raised.
type UploadError struct {
	Recipient  RecipientID
	StatusCode int
	Body       string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload to %s failed with status %d: %s", e.Recipient, e.StatusCode, e.Body)
}

func (e *UploadError) Is(target error) bool { return target == ErrUpload }
