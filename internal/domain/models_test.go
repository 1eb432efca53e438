package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReport(t *testing.T) {
	report := &RunReport{}
	report.Add("1", UploadResult{Success: true, StatusCode: http.StatusOK})
	report.Add("2", UploadResult{StatusCode: http.StatusInternalServerError, Body: "boom"})
	report.Add("3", UploadResult{Success: true, StatusCode: http.StatusOK})

	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 2, report.Successful())
	assert.Equal(t, []RecipientResult{{Recipient: "2", Result: UploadResult{StatusCode: 500, Body: "boom"}}}, report.Failed())

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"user_id":"2"`)
	assert.Contains(t, string(raw), `"error":"boom"`)
}

func TestUploadStatusLabel(t *testing.T) {
	assert.Equal(t, UploadStatusSuccess, UploadStatusLabel(UploadResult{Success: true, StatusCode: 200}))
	assert.Equal(t, UploadStatusRejected, UploadStatusLabel(UploadResult{StatusCode: 403}))
	assert.Equal(t, UploadStatusTransport, UploadStatusLabel(UploadResult{}))
}

func TestIsUploadAccepted(t *testing.T) {
	assert.True(t, IsUploadAccepted(http.StatusOK))
	assert.False(t, IsUploadAccepted(http.StatusCreated))
	assert.False(t, IsUploadAccepted(http.StatusNoContent))
	assert.False(t, IsUploadAccepted(http.StatusBadRequest))
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("NoSuchKey")

	storageErr := error(&StorageError{Bucket: "prices", Key: "a.png", Err: cause})
	assert.ErrorIs(t, storageErr, ErrStorage)
	assert.ErrorIs(t, storageErr, cause)
	assert.NotErrorIs(t, storageErr, ErrAuth)
	assert.Equal(t, "storage error: download s3://prices/a.png: NoSuchKey", storageErr.Error())

	cfgErr := error(NewConfigurationError("ZOHO_CLIENT_ID", ""))
	assert.ErrorIs(t, cfgErr, ErrConfiguration)
	assert.Equal(t, "configuration error: ZOHO_CLIENT_ID must be set", cfgErr.Error())

	authErr := error(&AuthError{StatusCode: 400, Body: `{"error":"invalid_code"}`})
	assert.ErrorIs(t, authErr, ErrAuth)
	assert.Contains(t, authErr.Error(), "400")

	uploadErr := UploadResult{StatusCode: 500, Body: "boom"}.AsError("7")
	require.NotNil(t, uploadErr)
	assert.ErrorIs(t, uploadErr, ErrUpload)
	assert.Equal(t, "upload to 7 failed with status 500: boom", uploadErr.Error())
	assert.Nil(t, UploadResult{Success: true}.AsError("7"))
}

func TestObjectLocationString(t *testing.T) {
	assert.Equal(t, "s3://prices/daily/chart.png", ObjectLocation{Bucket: "prices", Key: "/daily/chart.png"}.String())
}
