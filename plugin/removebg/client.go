// Package removebg provides a client for the remove.bg background-removal
// API. The endpoint accepts a multipart request with the image bytes, a size
// parameter, a format parameter, and an API key header; it returns either the
// processed image bytes or a JSON error body.
package removebg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Size is the API's output resolution parameter.
type Size string

const (
	// SizeAuto lets the API pick the best resolution for the account plan.
	SizeAuto Size = "auto"
	// Size4K requests maximum-resolution output. Requires paid credits.
	Size4K Size = "4k"
)

// Format is the API's output container parameter.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

const (
	headerAPIKey = "X-Api-Key"

	fieldImageFile = "image_file"
	fieldSize      = "size"
	fieldFormat    = "format"

	// FallbackReason is reported when the error payload carries no usable title.
	FallbackReason = "Authorization failed"
)

// Config holds the remove.bg client configuration.
type Config struct {
	// APIKey authorizes requests.
	APIKey string
	// BaseURL is the API root (e.g. https://api.remove.bg/v1.0).
	BaseURL string
	// Timeout bounds one removal call end to end.
	Timeout time.Duration
	// RequestsPerMinute caps outbound calls; the public API allows 500/min.
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://api.remove.bg/v1.0",
		Timeout:           45 * time.Second,
		RequestsPerMinute: 450,
	}
}

// Client calls the remove.bg API.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new remove.bg client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = DefaultConfig().RequestsPerMinute
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm/10+1),
	}
}

// APIError is a non-success response from the endpoint. Reason is the
// human-readable title extracted from the error payload, or FallbackReason
// when the payload is malformed or absent.
type APIError struct {
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("remove.bg returned status %d: %s", e.StatusCode, e.Reason)
}

type errorPayload struct {
	Errors []struct {
		Title string `json:"title"`
	} `json:"errors"`
}

// RemoveBackground submits image bytes for background removal and returns the
// processed image. A non-success status is returned as *APIError; no retries
// are performed.
func (c *Client) RemoveBackground(ctx context.Context, image []byte, size Size, format Format) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(fieldImageFile, "image.jpg")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create form file")
	}
	if _, err := part.Write(image); err != nil {
		return nil, errors.Wrap(err, "failed to write image bytes")
	}
	if err := writer.WriteField(fieldSize, string(size)); err != nil {
		return nil, errors.Wrap(err, "failed to write size field")
	}
	if err := writer.WriteField(fieldFormat, string(format)); err != nil {
		return nil, errors.Wrap(err, "failed to write format field")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/removebg", &body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(headerAPIKey, c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Reason:     extractReason(resp.Body),
		}
	}

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return result, nil
}

// extractReason pulls the first error title out of the structured payload.
// Malformed or empty payloads yield FallbackReason rather than an error.
func extractReason(r io.Reader) string {
	var payload errorPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return FallbackReason
	}
	if len(payload.Errors) == 0 || payload.Errors[0].Title == "" {
		return FallbackReason
	}
	return payload.Errors[0].Title
}
