// Package upload forwards images to the hosted image CDN.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrNotConfigured = errors.New("image upload is not configured")
	ErrEmptyFile     = errors.New("empty file")
)

type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("image host returned status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	endpoint string
	preset   string
	http     *http.Client
	log      logrus.FieldLogger
}

func NewClient(endpoint, preset string, log logrus.FieldLogger) *Client {
	return &Client{
		endpoint: endpoint,
		preset:   preset,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log.WithField("component", "upload_client"),
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload sends file as multipart form data and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if c.endpoint == "" {
		return "", ErrNotConfigured
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	n, err := io.Copy(part, file)
	if err != nil {
		return "", fmt.Errorf("copy file: %w", err)
	}
	if n == 0 {
		return "", ErrEmptyFile
	}
	if c.preset != "" {
		if err := mw.WriteField("upload_preset", c.preset); err != nil {
			return "", fmt.Errorf("write preset: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WithField("status", resp.StatusCode).Warn("image upload rejected")
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out uploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.SecureURL == "" {
		return "", errors.New("upload response has no secure_url")
	}
	return out.SecureURL, nil
}
