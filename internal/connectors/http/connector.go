package httpconnector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"gamemaster/internal/config"
)

type Connector struct {
	url        string
	httpClient *http.Client
	maxRetries uint64
	backoff    time.Duration
}

func NewConnector(cfg config.Config) (*Connector, error) {
	if err := cfg.Require("GAME_MASTER_URL", cfg.GameMasterURL); err != nil {
		return nil, err
	}
	backoff := time.Duration(cfg.FetchBackoffMs) * time.Millisecond
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	retries := cfg.FetchMaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Connector{
		url:        strings.TrimSpace(cfg.GameMasterURL),
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		maxRetries: uint64(retries),
		backoff:    backoff,
	}, nil
}

func (c *Connector) Name() string {
	return c.url
}

// Fetch retries transport errors and 429/5xx responses with exponential
// backoff; any other non-2xx status fails immediately.
func (c *Connector) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte
	b := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		body, err = c.fetchOnce(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.url, err)
	}
	return body, nil
}

func (c *Connector) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, retry.RetryableError(err)
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, retry.RetryableError(readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("status %d", resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			return nil, retry.RetryableError(statusErr)
		}
		return nil, statusErr
	}
	return body, nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
