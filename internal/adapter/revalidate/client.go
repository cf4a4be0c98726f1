package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client signals the front-end cache that tagged content changed.
type Client interface {
	Invalidate(ctx context.Context, tags ...string) error
}

// HTTPClient implements Client against the front-end revalidation endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type request struct {
	Tags []string `json:"tags"`
}

// NewHTTPClient creates revalidation client with default timeout.
func NewHTTPClient(endpoint string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse revalidate url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("revalidate url must be absolute")
	}
	return &HTTPClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Invalidate posts the tag list. Failures are reported to the caller, which
// only ever logs them; revalidation never blocks or fails a write.
func (c *HTTPClient) Invalidate(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	body, err := json.Marshal(request{Tags: tags})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		c.logger.Error("cache revalidation failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)))
		return fmt.Errorf("revalidate error: %s", resp.Status)
	}

	c.logger.Info("cache revalidation triggered", slog.Any("tags", tags))
	return nil
}
