// Package relay uploads attachments to the shared drive folder through the
// upload relay, a small web endpoint that accepts base64 file bodies and
// answers with the stored file's URL.
package relay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eudistrict/chancery/internal/metrics"
)

// DefaultTimeout bounds one upload when no other timeout is configured.
const DefaultTimeout = 60 * time.Second

// maxResponseBytes caps how much of a relay reply is read.
const maxResponseBytes = 1 << 20

// ErrInvalidUpload is returned before any network call when the upload is
// missing its file name or content.
var ErrInvalidUpload = errors.New("invalid upload")

// Upload is one file to store.
type Upload struct {
	Filename string
	MimeType string
	Content  []byte
}

// Error reports a failed upload: a non-200 reply, a reply whose status is
// not "success", or a transport failure (StatusCode 0).
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("file relay: %s: %v", e.Message, e.Err)
	case e.StatusCode != 0 && e.StatusCode != http.StatusOK:
		return fmt.Sprintf("file relay: HTTP %d: %s", e.StatusCode, e.Message)
	default:
		return "file relay: " + e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

type uploadRequest struct {
	FolderID   string `json:"folder_id"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	FileBase64 string `json:"fileBase64"`
}

type uploadResponse struct {
	Status  string `json:"status"`
	FileURL string `json:"fileUrl"`
	Message string `json:"message"`
}

// Client posts uploads to one relay endpoint and folder.
type Client struct {
	endpoint string
	folderID string
	http     *http.Client
	metrics  *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout is left alone.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-upload timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

// WithMetrics counts uploads by outcome.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the relay at endpoint, storing into folderID.
func New(endpoint, folderID string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		folderID: folderID,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload sends u to the relay and returns the stored file's URL. Nothing is
// retried.
func (c *Client) Upload(ctx context.Context, u Upload) (string, error) {
	url, err := c.upload(ctx, u)
	if c.metrics != nil && !errors.Is(err, ErrInvalidUpload) {
		c.metrics.RelayUploads.WithLabelValues(metrics.Outcome(err)).Inc()
	}
	if err != nil {
		return "", err
	}
	slog.Info("File uploaded", "filename", u.Filename, "bytes", len(u.Content), "url", url)
	return url, nil
}

func (c *Client) upload(ctx context.Context, u Upload) (string, error) {
	filename := strings.TrimSpace(u.Filename)
	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", ErrInvalidUpload)
	}
	if len(u.Content) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrInvalidUpload, filename)
	}
	mimeType := u.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(u.Content)
	}

	body, err := json.Marshal(uploadRequest{
		FolderID:   c.folderID,
		Filename:   filename,
		MimeType:   mimeType,
		FileBase64: base64.StdEncoding.EncodeToString(u.Content),
	})
	if err != nil {
		return "", &Error{Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &Error{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &Error{StatusCode: resp.StatusCode, Message: "malformed response", Err: err}
	}
	if out.Status != "success" {
		msg := out.Message
		if msg == "" {
			msg = fmt.Sprintf("status %q", out.Status)
		}
		return "", &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	if out.FileURL == "" {
		return "", &Error{StatusCode: resp.StatusCode, Message: "response has no fileUrl"}
	}
	return out.FileURL, nil
}
