// Package api is the REST client for the finance API. Every response is
// normalized into either decoded data or one of the common error kinds.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

const maxResponseBytes = 4 << 20

// Credentials supplies the bearer token for authenticated calls.
type Credentials interface {
	BearerToken() (string, bool)
}

// Config configures a Client.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
}

// Client talks to the finance API.
type Client struct {
	httpClient *http.Client
	creds      Credentials
	baseURL    string
}

// NewClient creates a client. The credentials are read on every
// authenticated call and never modified.
func NewClient(cfg Config, creds Credentials) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: api base url %q", common.ErrInvalidConfig, cfg.BaseURL)
	}
	if creds == nil {
		return nil, fmt.Errorf("%w: credentials are required", common.ErrMissingConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		creds:      creds,
		baseURL:    base.String(),
	}, nil
}

// envelope covers both the {success,data} shape and the bare auth shape.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type request struct {
	body   any
	out    any
	method string
	path   string
	auth   bool
}

func (c *Client) do(ctx context.Context, r request) error {
	var token string
	if r.auth {
		var ok bool
		token, ok = c.creds.BearerToken()
		if !ok {
			return &common.AuthError{Message: "Please log in to continue"}
		}
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request canceled: %w", ctxErr)
		}
		slog.Debug("API request failed", "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		return &common.NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request canceled: %w", ctxErr)
		}
		return &common.NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	slog.Debug("API request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	return decode(resp.StatusCode, raw, r.out)
}

func decode(status int, raw []byte, out any) error {
	var env envelope
	trimmed := bytes.TrimSpace(raw)
	isObject := len(trimmed) > 0 && trimmed[0] == '{'
	if isObject {
		_ = json.Unmarshal(trimmed, &env)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		msg := env.message()
		if msg == "" {
			msg = "Your session has expired, please log in again"
		}
		return &common.AuthError{Message: msg}
	case status < 200 || status > 299:
		msg := env.message()
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &common.APIError{Status: status, Message: msg}
	case env.Success != nil && !*env.Success:
		msg := env.message()
		if msg == "" {
			msg = "Request failed"
		}
		return &common.APIError{Status: status, Message: msg}
	}

	if out == nil {
		return nil
	}

	hasData := len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null"))
	if isObject && env.Success != nil && !hasData {
		// An acknowledged envelope without data must not decode into a
		// zero value.
		return &common.APIError{Status: status, Message: "Empty response from server"}
	}

	data := trimmed
	if isObject && hasData {
		data = env.Data
	}
	if len(data) == 0 {
		return &common.APIError{Status: status, Message: "Empty response from server"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &common.APIError{Status: status, Message: "Unexpected response from server"}
	}
	return nil
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
