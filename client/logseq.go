// Package client implements the HTTP transport to the Logseq API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/skridlevsky/pkmthulhu/types"
)

const (
	defaultAPIURL  = "http://127.0.0.1:12315"
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// ErrUnauthorized is returned when Logseq rejects the API token. It is
// permanent: the call is not retried.
var ErrUnauthorized = errors.New("logseq API rejected the token")

// Client communicates with the Logseq HTTP API.
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a new Logseq API client.
// Reads LOGSEQ_URL and LOGSEQ_API_KEY from environment if not provided.
func New(apiURL, token string, log zerolog.Logger) *Client {
	if apiURL == "" {
		apiURL = os.Getenv("LOGSEQ_URL")
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if token == "" {
		token = os.Getenv("LOGSEQ_API_KEY")
	}

	return &Client{
		apiURL: apiURL,
		token:  token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: log,
	}
}

// call makes a POST request to the Logseq API with retry and backoff.
// Authentication rejections and other 4xx responses are permanent; 5xx and
// network failures are retried.
func (c *Client) call(ctx context.Context, method string, args ...any) (json.RawMessage, error) {
	reqBody := types.LogseqAPIRequest{
		Method: method,
		Args:   args,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug().Str("method", method).Int("attempt", attempt+1).Err(lastErr).Msg("retrying logseq API call")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/api", bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("logseq API %s (attempt %d): %w", method, attempt+1, err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response %s (attempt %d): %w", method, attempt+1, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("logseq API %s: %w", method, ErrUnauthorized)
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("logseq API %s returned %d: %s", method, resp.StatusCode, string(respBody))
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("logseq API %s returned %d: %s", method, resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, lastErr
}

// callTyped makes a Logseq API call and unmarshals the response into T.
func callTyped[T any](c *Client, ctx context.Context, method string, args ...any) (T, error) {
	var zero T
	raw, err := c.call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return zero, fmt.Errorf("unmarshal %s response: %w", method, err)
	}
	return result, nil
}

// Q executes a Logseq DSL query and returns the flat block records it
// matches. The API returns "null" for queries with no results; that decodes
// to an empty slice.
func (c *Client) Q(ctx context.Context, dsl string) ([]types.BlockEntity, error) {
	return callTyped[[]types.BlockEntity](c, ctx, "logseq.DB.q", dsl)
}

// Ping checks if the Logseq API is reachable and the token accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, "logseq.App.getCurrentGraph")
	return err
}
