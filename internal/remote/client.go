// Package remote is the stateless HTTP client for the AssetGuard API.
// No caching, no retries: every failure surfaces to the caller, which is what
// the store's rollback logic and the poller's skip-a-tick policy rely on.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

// TokenSource supplies the session token attached to every request.
// An empty token means "unauthenticated"; the server rejects what it must.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client talks to the AssetGuard HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:4000"
	defaultUserAgent = "assetguard-agent/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL ("host:port" or full URL).
func NewClient(apiURL string, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		tokens:    tokens,
		userAgent: defaultUserAgent,
	}, nil
}

// --- assets ---

func (c *Client) Assets(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	if err := c.do(ctx, http.MethodGet, "/api/assets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveAsset(ctx context.Context, a models.Asset) error {
	return c.do(ctx, http.MethodPost, "/api/assets", a, nil)
}

func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/assets/"+url.PathEscape(id), nil, nil)
}

// --- employees ---

func (c *Client) Employees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveEmployee(ctx context.Context, e models.Employee) error {
	return c.do(ctx, http.MethodPost, "/api/employees", e, nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil, nil)
}

// --- assignments ---

func (c *Client) Assignments(ctx context.Context) ([]models.Assignment, error) {
	var out []models.Assignment
	if err := c.do(ctx, http.MethodGet, "/api/assignments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveAssignment(ctx context.Context, a models.Assignment) error {
	return c.do(ctx, http.MethodPost, "/api/assignments", a, nil)
}

// --- maintenance ---

func (c *Client) MaintenanceLogs(ctx context.Context) ([]models.MaintenanceLog, error) {
	var out []models.MaintenanceLog
	if err := c.do(ctx, http.MethodGet, "/api/maintenance", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveMaintenanceLog(ctx context.Context, m models.MaintenanceLog) error {
	return c.do(ctx, http.MethodPost, "/api/maintenance", m, nil)
}

// --- requests + messages ---

func (c *Client) Requests(ctx context.Context) ([]models.AssetRequest, error) {
	var out []models.AssetRequest
	if err := c.do(ctx, http.MethodGet, "/api/requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveRequest(ctx context.Context, r models.AssetRequest) error {
	return c.do(ctx, http.MethodPost, "/api/requests", r, nil)
}

func (c *Client) Messages(ctx context.Context, requestID string) ([]models.TicketMessage, error) {
	var out []models.TicketMessage
	path := "/api/requests/" + url.PathEscape(requestID) + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, requestID, text string) (models.TicketMessage, error) {
	var out models.TicketMessage
	path := "/api/requests/" + url.PathEscape(requestID) + "/messages"
	in := map[string]string{"message": text}
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return models.TicketMessage{}, err
	}
	return out, nil
}

// --- auth ---

// Login authenticates and returns the profile plus the session token.
// The token source is not consulted here.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthProfile, string, error) {
	in := map[string]string{"email": email, "password": password}
	var out struct {
		User  models.AuthProfile `json:"user"`
		Token string             `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return models.AuthProfile{}, "", err
	}
	return out.User, out.Token, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s %s returned status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
