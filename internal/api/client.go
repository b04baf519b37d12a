package api

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

	"taskvvts-cli/internal/session"

	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
	sess       session.Session
	log        *zap.Logger
	lang       string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLanguage sets Accept-Language so server messages come back localized.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = strings.TrimSpace(lang) }
}

// New returns a client for baseURL (e.g. http://localhost:8080/api/v1).
// Protected calls read the token from sess at call time.
func New(baseURL string, sess session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		sess:       sess,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	op     string
	method string
	path   string
	auth   bool
	body   any
}

// do performs one call. The response body, if any, is decoded into out
// (out may be nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	raw, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: r.op, Kind: KindTransport, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// send performs the request and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	var token string
	if r.auth {
		tok, ok := c.sess.Token()
		if !ok {
			return nil, &Error{Op: r.op, Kind: KindNoSession, Err: session.ErrNoToken}
		}
		token = tok
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, &Error{Op: r.op, Kind: KindUnknown, Err: fmt.Errorf("marshal request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, &Error{Op: r.op, Kind: KindUnknown, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			zap.String("op", r.op),
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, &Error{Op: r.op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	c.log.Debug("api request",
		zap.String("op", r.op),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	if readErr != nil {
		return nil, &Error{Op: r.op, Kind: KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("read response body: %w", readErr)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Op:      r.op,
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}
	return raw, nil
}

// errorMessage extracts {"message": ...} (or {"error": ...}) from an error
// body, falling back to the trimmed text.
func errorMessage(raw []byte) string {
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	if raw[0] == '{' || raw[0] == '[' || raw[0] == '<' {
		return ""
	}
	return string(raw)
}

// decodeList accepts a JSON array or a JSON string that itself holds an array.
func decodeList[T any](op string, raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, &Error{Op: op, Kind: KindTransport, Err: fmt.Errorf("decode response: %w", err)}
		}
		raw = []byte(inner)
		if len(bytes.TrimSpace(raw)) == 0 {
			return []T{}, nil
		}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// IsTimeout reports whether a transport failure was a deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
