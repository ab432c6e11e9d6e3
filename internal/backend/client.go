// Package backend talks to the tracker backend that verifies solves against
// the judge.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ascent-cf/ascent/internal/handle"
)

// Op names a backend operation for errors and logs.
type Op string

const (
	OpDaily  Op = "daily"
	OpSubmit Op = "submit"
	OpSync   Op = "sync"
)

const (
	// maxErrorBody caps how much of a rejection body is read. Markers are
	// matched anywhere in what is read, so keep this well above real bodies.
	maxErrorBody = 1 << 20
	// maxPayload caps a daily problem response.
	maxPayload = 64 << 10
)

// DailyProblem is the backend's problem recommendation.
type DailyProblem struct {
	ID     string
	Name   string
	Rating int
	Tags   []string
}

// Submission is the body of a verification request.
type Submission struct {
	ProblemID        string `json:"problem_id"`
	TimeSpentMinutes int    `json:"time_spent_minutes"`
}

// Client is the backend collaborator.
type Client interface {
	// Daily requests one problem recommendation for the handle.
	Daily(ctx context.Context, h handle.Handle) (*DailyProblem, error)

	// Submit claims a solve. A nil error means the backend accepted it.
	Submit(ctx context.Context, h handle.Handle, sub Submission) error

	// Sync asks the backend to reconcile the handle's solve history.
	Sync(ctx context.Context, h handle.Handle) error
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(hc *HTTPClient) { hc.httpClient = c }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(hc *HTTPClient) { hc.httpClient = &http.Client{Timeout: d} }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(hc *HTTPClient) { hc.userAgent = ua }
}

// New creates an HTTPClient rooted at baseURL.
func New(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  "ascent",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dailyPayload accepts both "id" and the older "problem_id" key.
type dailyPayload struct {
	ID        string   `json:"id"`
	ProblemID string   `json:"problem_id"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

func (c *HTTPClient) Daily(ctx context.Context, h handle.Handle) (*DailyProblem, error) {
	if !h.Valid() {
		return nil, handle.ErrMissingHandle
	}

	u := c.baseURL + "/api/daily?" + url.Values{"handle": {h.String()}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req, OpDaily)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !ok(resp.StatusCode) {
		return nil, statusError(OpDaily, resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, &TransportError{Op: OpDaily, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := validateDaily(raw); err != nil {
		return nil, &DecodeError{Op: OpDaily, Err: err}
	}

	var payload dailyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &DecodeError{Op: OpDaily, Err: err}
	}

	id := payload.ID
	if id == "" {
		id = payload.ProblemID
	}
	return &DailyProblem{
		ID:     id,
		Name:   payload.Name,
		Rating: payload.Rating,
		Tags:   payload.Tags,
	}, nil
}

func (c *HTTPClient) Submit(ctx context.Context, h handle.Handle, sub Submission) error {
	if !h.Valid() {
		return handle.ErrMissingHandle
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	u := c.baseURL + "/api/submit/" + url.PathEscape(h.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.expectOK(req, OpSubmit)
}

func (c *HTTPClient) Sync(ctx context.Context, h handle.Handle) error {
	if !h.Valid() {
		return handle.ErrMissingHandle
	}

	u := c.baseURL + "/api/sync/" + url.PathEscape(h.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.expectOK(req, OpSync)
}

func (c *HTTPClient) expectOK(req *http.Request, op Op) error {
	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !ok(resp.StatusCode) {
		return statusError(op, resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayload))
	return nil
}

func (c *HTTPClient) do(req *http.Request, op Op) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return resp, nil
}

func statusError(op Op, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(data)}
}

func ok(code int) bool {
	return code >= 200 && code <= 299
}
