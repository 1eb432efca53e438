// internal/domain/models.go
package domain

import (
	"encoding/json"
	"strings"
)

// Credentials holds the long-lived Zoho OAuth material used to mint access tokens.
type Credentials struct {
	RefreshToken string
	ClientID     string
	ClientSecret string
}

// ObjectLocation identifies the source object in the storage bucket.
type ObjectLocation struct {
	Bucket string
	Key    string
}

// String renders the location as an s3:// URI.
func (l ObjectLocation) String() string {
	return "s3://" + l.Bucket + "/" + strings.TrimPrefix(l.Key, "/")
}

// RecipientID identifies a Cliq user the bot delivers to.
type RecipientID string

// UploadResult is the outcome of a single upload attempt.
type UploadResult struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"status_code"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Body       string          `json:"error,omitempty"`
}

// AsError returns the failure as an *UploadError, or nil when the upload succeeded.
func (r UploadResult) AsError(recipient RecipientID) *UploadError {
	if r.Success {
		return nil
	}
	return &UploadError{Recipient: recipient, StatusCode: r.StatusCode, Body: r.Body}
}

// RecipientResult pairs a recipient with its upload outcome.
type RecipientResult struct {
	Recipient RecipientID  `json:"user_id"`
	Result    UploadResult `json:"result"`
}

// RunReport is the ordered list of per-recipient outcomes of one run.
type RunReport struct {
	Results []RecipientResult `json:"results"`
}

// Add appends an outcome, preserving recipient order.
func (r *RunReport) Add(recipient RecipientID, result UploadResult) {
	r.Results = append(r.Results, RecipientResult{Recipient: recipient, Result: result})
}

// Total returns the number of attempted uploads.
func (r *RunReport) Total() int {
	return len(r.Results)
}

// Successful returns the number of uploads that succeeded.
func (r *RunReport) Successful() int {
	n := 0
	for _, res := range r.Results {
		if res.Result.Success {
			n++
		}
	}
	return n
}

// Failed returns the failed entries in recipient order.
func (r *RunReport) Failed() []RecipientResult {
	var failed []RecipientResult
	for _, res := range r.Results {
		if !res.Result.Success {
			failed = append(failed, res)
		}
	}
	return failed
}
