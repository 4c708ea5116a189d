// Package directory is the HTTP client of the Event Directory Service, the
// remote API that stores accounts and events.
package directory

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
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is where a local development server listens.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	maxDetailBytes = 4096
)

// ErrUnauthorized is matched by service errors caused by rejected credentials
// or a rejected token.
var ErrUnauthorized = errors.New("unauthorized")

// ServiceError reports a failed call to the directory service. StatusCode is
// zero when no response was received.
type ServiceError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

// Error renders the operation, status and detail of the failure.
func (e *ServiceError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, ": status %d", e.StatusCode)
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrUnauthorized) {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes ErrUnauthorized or the transport error.
func (e *ServiceError) Unwrap() error { return e.Err }

// User is the account behind a session token.
type User struct {
	ID       int    `json:"pk"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Client talks to the directory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{"username": {username}, "password": {password}}
	var out struct {
		Key string `json:"key"`
	}
	if err := c.doForm(ctx, "login", "/auth/login/", form, &out); err != nil {
		return "", err
	}
	if out.Key == "" {
		return "", &ServiceError{Op: "login", StatusCode: http.StatusOK, Detail: "response carries no key"}
	}
	return out.Key, nil
}

// Register creates an account and returns its session token, if the service
// issues one on registration.
func (c *Client) Register(ctx context.Context, username, email, password, password2 string) (string, error) {
	form := url.Values{
		"username":  {username},
		"email":     {email},
		"password1": {password},
		"password2": {password2},
	}
	var out struct {
		Key string `json:"key"`
	}
	if err := c.doForm(ctx, "register", "/auth/registration/", form, &out); err != nil {
		return "", err
	}
	return out.Key, nil
}

// CurrentUser resolves the account that owns token.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var u User
	err := c.do(ctx, "current user", http.MethodGet, "/auth/user/", token, nil, "", &u)
	return u, err
}

// ListEvents returns every event visible to token.
func (c *Client) ListEvents(ctx context.Context, token string) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, "list events", http.MethodGet, "/events/", token, nil, "", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateEvent stores r and returns the record as saved by the service.
func (c *Client) CreateEvent(ctx context.Context, token string, r Record) (Record, error) {
	body, err := json.Marshal(r.forCreate())
	if err != nil {
		return Record{}, fmt.Errorf("encoding event: %w", err)
	}
	var saved Record
	err = c.do(ctx, "create event", http.MethodPost, "/events/", token, bytes.NewReader(body), "application/json", &saved)
	return saved, err
}

// DeleteEvent removes the event with the given id.
func (c *Client) DeleteEvent(ctx context.Context, token string, id int) error {
	return c.do(ctx, "delete event", http.MethodDelete, "/events/"+strconv.Itoa(id)+"/", token, nil, "", nil)
}

// Logout invalidates token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout/", token, nil, "", nil)
}

func (c *Client) doForm(ctx context.Context, op, path string, form url.Values, out any) error {
	return c.do(ctx, op, http.MethodPost, path, "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	requestID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("directory request failed", "op", op, "request_id", requestID, "error", err)
		return &ServiceError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("directory request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start))

	if !slices.Contains([]int{http.StatusOK, http.StatusCreated, http.StatusNoContent}, resp.StatusCode) {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailBytes))
		serr := &ServiceError{Op: op, StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(detail))}
		switch {
		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			serr.Err = ErrUnauthorized
		case resp.StatusCode == http.StatusBadRequest && op == "login":
			serr.Err = ErrUnauthorized
		}
		return serr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
