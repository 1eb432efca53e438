// Package cliq talks to the Zoho Cliq bot files API.
package cliq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andresuchdata/material-price-dispatch/internal/domain"
)

// DefaultAPIURL is the Cliq REST base for the India data center.
const DefaultAPIURL = "https://cliq.zoho.in/api/v2"

// DefaultComments is sent when the caller does not supply any.
var DefaultComments = []string{"Server image"}

// UploadRequest describes one file delivery to one user.
type UploadRequest struct {
	Token    string
	FilePath string
	UserID   domain.RecipientID
	BotName  string
	Comments []string
}

// Uploader delivers a local file to a Cliq user.
type Uploader interface {
	UploadFile(ctx context.Context, req UploadRequest) domain.UploadResult
}

// Client is a client for the Cliq bot files endpoint.
type Client struct {
	httpClient *http.Client
	filesURL   string
}

// NewClient creates a Client posting to {apiURL}/bots/{botUniqueName}/files.
// A zero timeout means uploads are bounded only by ctx.
func NewClient(apiURL, botUniqueName string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout < 0 {
		timeout = 0
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 15 * time.Second,
	}
	if timeout > 0 {
		transport.ResponseHeaderTimeout = timeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		filesURL: fmt.Sprintf("%s/bots/%s/files", strings.TrimSuffix(apiURL, "/"), url.PathEscape(botUniqueName)),
	}
}

// FilesURL returns the endpoint uploads are posted to.
func (c *Client) FilesURL() string {
	return c.filesURL
}

// UploadFile posts the file as multipart form data. It never returns an
// error: every failure is reported in the result with its status code
// (0 when no response was received) and body.
func (c *Client) UploadFile(ctx context.Context, req UploadRequest) domain.UploadResult {
	start := time.Now()
	result := c.upload(ctx, req)
	recordUpload(domain.UploadStatusLabel(result), time.Since(start).Seconds())
	return result
}

func (c *Client) upload(ctx context.Context, req UploadRequest) domain.UploadResult {
	body, contentType, err := buildMultipartBody(req)
	if err != nil {
		return domain.UploadResult{Body: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.filesURL, body)
	if err != nil {
		return domain.UploadResult{Body: fmt.Sprintf("failed to create request: %v", err)}
	}
	httpReq.Header.Set("Authorization", "Zoho-oauthtoken "+req.Token)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.UploadResult{Body: sanitize(fmt.Sprintf("failed to perform request: %v", err), req.Token)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.UploadResult{StatusCode: resp.StatusCode, Body: fmt.Sprintf("failed to read response: %v", err)}
	}

	if !domain.IsUploadAccepted(resp.StatusCode) {
		return domain.UploadResult{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	result := domain.UploadResult{Success: true, StatusCode: resp.StatusCode}
	if json.Valid(respBody) {
		result.Payload = json.RawMessage(respBody)
	}
	return result
}

// buildMultipartBody opens the file for this request only and closes it
// once the body is assembled.
func buildMultipartBody(req UploadRequest) (*bytes.Buffer, string, error) {
	comments := req.Comments
	if len(comments) == 0 {
		comments = DefaultComments
	}
	encodedComments, err := json.Marshal(comments)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode comments: %w", err)
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", req.FilePath, err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", req.FilePath, err)
	}

	fields := [][2]string{
		{"comments", string(encodedComments)},
		{"user_id", string(req.UserID)},
		{"bot_name", req.BotName},
	}
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f[0], err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

func sanitize(msg, token string) string {
	if token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, token, "[REDACTED]")
}

var _ Uploader = (*Client)(nil)
