package domain

import "net/http"

// Upload outcome labels used in logs and metrics.
const (
	UploadStatusSuccess   = "success"
	UploadStatusRejected  = "rejected"
	UploadStatusTransport = "transport_error"
)

// UploadStatusLabel classifies an upload result. A zero status code means
// the request never got an HTTP response.
func UploadStatusLabel(r UploadResult) string {
	if r.Success {
		return UploadStatusSuccess
	}
	if r.StatusCode == 0 {
		return UploadStatusTransport
	}
	return UploadStatusRejected
}

// IsUploadAccepted reports whether the messaging API accepted the file.
// Only an exact 200 counts; other 2xx codes are treated as failures.
func IsUploadAccepted(statusCode int) bool {
	return statusCode == http.StatusOK
}
