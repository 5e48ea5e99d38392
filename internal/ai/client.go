package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/pkg/telemetry/correlation"
	"go.uber.org/zap"
)

var (
	// ErrRateLimited maps the upstream 429: the user should slow down.
	ErrRateLimited = errors.New("ai_rate_limited")
	// ErrUnavailable maps the upstream 503: the service is down, try later.
	ErrUnavailable = errors.New("ai_unavailable")
	// ErrGenerationFailed covers every other upstream failure.
	ErrGenerationFailed = errors.New("ai_generation_failed")
)

// Client talks to the external generation service over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.AIServiceURL), "/"),
		token:   strings.TrimSpace(cfg.AIServiceToken),
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log.Named("ai.client"),
	}
}

// Configured reports whether an upstream endpoint was provided.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

type generateResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Post sends a capability request and returns the raw data document.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrUnavailable
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	ctx, cid := correlation.EnsureCorrelationID(ctx)
	req = req.WithContext(ctx)
	req.Header.Set("X-Correlation-Id", cid)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("ai request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusServiceUnavailable:
		return nil, ErrUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: upstream status %d", ErrGenerationFailed, resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response", ErrGenerationFailed)
	}
	if !decoded.Success {
		message := strings.TrimSpace(decoded.Error)
		if message == "" {
			message = "request failed"
		}
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, message)
	}
	return decoded.Data, nil
}

// Health probes the upstream health endpoint.
func (c *Client) Health(ctx context.Context) error {
	if !c.Configured() {
		return ErrUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrUnavailable
	}
	return nil
}
