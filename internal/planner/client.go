// Package planner talks to the study-planning backend.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/idilsaglam/studyplan/internal/apperrors"
	"github.com/idilsaglam/studyplan/internal/logging"
	"github.com/idilsaglam/studyplan/internal/model"
)

// SessionCookie is the backend's session cookie name.
const SessionCookie = "session"

type Client struct {
	baseURL string
	http    *http.Client
	session string
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithSession attaches a previously issued session cookie to every request.
func WithSession(value string) Option { return func(c *Client) { c.session = value } }

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = logging.Component(l, "planner") }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Session returns the current session cookie value, if any.
func (c *Client) Session() string { return c.session }

// Plan requests a schedule. Every failure, transport or HTTP status, is
// reported as apperrors.ErrOffline.
func (c *Client) Plan(ctx context.Context, req model.PlanRequest) (model.PlanResponse, error) {
	start := time.Now()
	var out model.PlanResponse
	status, err := c.do(ctx, http.MethodPost, "/api/plan", req, &out)
	if err != nil {
		c.log.Warn("plan_failed", "status", status, "error", err)
		return model.PlanResponse{}, fmt.Errorf("%w: %v", apperrors.ErrOffline, err)
	}
	if out.Plan == nil {
		out.Plan = []model.PlanDay{}
	}
	c.log.Info("plan_received", "days", len(out.Plan), "duration_ms", time.Since(start).Milliseconds())
	return out, nil
}

// Me returns the signed-in user. Any failure means not signed in.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	if _, err := c.do(ctx, http.MethodGet, "/api/me", nil, &u); err != nil {
		c.log.Debug("me_unavailable", "error", err)
		return model.User{}, apperrors.ErrNotSignedIn
	}
	return u, nil
}

// Logout ends the server session. The response is ignored.
func (c *Client) Logout(ctx context.Context) {
	if _, err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		c.log.Debug("logout_failed", "error", err)
	}
	c.session = ""
}

func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/login", body)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (model.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/api/register", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (model.User, error) {
	var u model.User
	if _, err := c.do(ctx, http.MethodPost, path, body, &u); err != nil {
		return model.User{}, err
	}
	if c.session == "" {
		return model.User{}, errors.New("server did not issue a session")
	}
	c.log.Info("signed_in", "user", u.Email)
	return u, nil
}

// Health checks /api/health.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("health: unexpected status %q", out.Status)
	}
	return nil
}

// APIError is a non-2xx answer. Message carries the backend's "error" field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: c.session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie {
			c.session = ck.Value
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); len(b) > 0 {
			if json.Unmarshal(b, &payload) == nil {
				apiErr.Message = payload.Error
			}
		}
		return resp.StatusCode, apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
