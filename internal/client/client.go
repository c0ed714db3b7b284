package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
	"github.com/devfolio/portfolio-backend/internal/projects/validate"
)

// ErrTokenAcquisition marks a client-side failure to obtain or refresh a
// credential. It is reported before any call to the API is made.
var ErrTokenAcquisition = errors.New("could not acquire authentication token")

// TokenSource supplies the caller's bearer token. identity.Session satisfies
// this.
type TokenSource interface {
	IDToken(ctx context.Context, forceRefresh bool) (string, error)
}

// Result is the decoded structured outcome of a mutation.
type Result struct {
	OK        bool                `json:"ok"`
	ProjectID string              `json:"project_id,omitempty"`
	Message   string              `json:"message,omitempty"`
	Error     string              `json:"error,omitempty"`
	Issues    map[string][]string `json:"issues,omitempty"`
}

// Client drives the project operations the way the admin surface does: every
// mutation force-refreshes the identity token first so a stale credential
// fails verification server-side instead of silently riding through, then
// interprets the structured result. A successful mutation fires the refetch
// hook asynchronously.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	onMutated func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRefetch registers a hook fired after each successful mutation,
// fire-and-forget: its outcome never changes the mutation's reported result.
func WithRefetch(fn func()) Option {
	return func(c *Client) { c.onMutated = fn }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddProject creates a project from form input.
func (c *Client) AddProject(ctx context.Context, in validate.Input) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/api/v1/projects", in)
}

// UpdateProject overwrites the project identified by id.
func (c *Client) UpdateProject(ctx context.Context, id string, in validate.Input) (*Result, error) {
	return c.mutate(ctx, http.MethodPut, "/api/v1/projects/"+id, in)
}

// DeleteProject removes the project identified by id.
func (c *Client) DeleteProject(ctx context.Context, id string) (*Result, error) {
	return c.mutate(ctx, http.MethodDelete, "/api/v1/projects/"+id, nil)
}

// ListProjects fetches the public listing. No token involved.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/projects", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		OK       bool             `json:"ok"`
		Projects []domain.Project `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return out.Projects, nil
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) (*Result, error) {
	// Force-refresh so the mutation never rides on an expired credential.
	// Acquisition failures are reported before any network call to the API.
	token, err := c.tokens.IDToken(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenAcquisition, err)
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	if res.OK && c.onMutated != nil {
		go c.onMutated()
	}
	return &res, nil
}
