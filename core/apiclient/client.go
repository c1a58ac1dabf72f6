package apiclient

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
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neurogrid/storefront/core/logger"
)

// Endpoint paths relative to the base URL.
const (
	PathMe       = "/auth/me"
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathCapture  = "/email/capture"
	PathCheckout = "/payments/checkout/session"
	PathHealth   = "/health"
)

// HeaderRequestID carries a per-request correlation id.
const HeaderRequestID = "X-Request-ID"

const maxErrorBody = 64 << 10

// Client talks to the storefront backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	requestID  func() string
	logger     *slog.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRequestIDGenerator sets the X-Request-ID generator (default: UUID v4).
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.requestID = gen
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the backend rooted at baseURL (e.g. "https://example.com/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "storefront-client/1.0",
		requestID:  uuid.NewString,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken attaches the bearer credential to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken detaches the bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// HasToken reports whether a credential is attached.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Me resolves the user owning the attached token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, PathMe, nil, &u); err != nil {
		return User{}, err
	}
	if u.ID == uuid.Nil {
		return User{}, fmt.Errorf("%w: user id missing", ErrMalformedResponse)
	}
	return u, nil
}

// Login exchanges credentials for a bearer token. It does not attach the token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (Token, error) {
	var tok Token
	if err := c.do(ctx, http.MethodPost, PathLogin, req, &tok); err != nil {
		return Token{}, err
	}
	if tok.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: access_token missing", ErrMalformedResponse)
	}
	return tok, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Registration, error) {
	var reg Registration
	if err := c.do(ctx, http.MethodPost, PathRegister, req, &reg); err != nil {
		return Registration{}, err
	}
	return reg, nil
}

// CaptureEmail subscribes an address to the newsletter.
func (c *Client) CaptureEmail(ctx context.Context, req EmailCaptureRequest) (EmailCaptureResponse, error) {
	var resp EmailCaptureResponse
	if err := c.do(ctx, http.MethodPost, PathCapture, req, &resp); err != nil {
		return EmailCaptureResponse{}, err
	}
	return resp, nil
}

// CreateCheckoutSession requests a hosted payment page for an item.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	var sess CheckoutSession
	if err := c.do(ctx, http.MethodPost, PathCheckout, req, &sess); err != nil {
		return CheckoutSession{}, err
	}
	u, err := url.Parse(sess.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return CheckoutSession{}, fmt.Errorf("%w: invalid checkout url %q", ErrMalformedResponse, sess.URL)
	}
	return sess, nil
}

// ServiceStatus reports backend health.
func (c *Client) ServiceStatus(ctx context.Context) (ServiceStatus, error) {
	var st ServiceStatus
	if err := c.do(ctx, http.MethodGet, PathHealth, nil, &st); err != nil {
		return ServiceStatus{}, err
	}
	return st, nil
}

// Health fails unless the backend reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	st, err := c.ServiceStatus(ctx)
	if err != nil {
		return err
	}
	if st.Status != StatusHealthy {
		return fmt.Errorf("%w: service status %q", ErrUnhealthy, st.Status)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Join(ErrRequestEncoding, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Join(ErrRequestEncoding, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	reqID := c.requestID()
	req.Header.Set(HeaderRequestID, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			logger.Component("apiclient"),
			logger.Method(method),
			logger.Path(path),
			logger.RequestID(reqID),
			logger.Elapsed(start),
			logger.Error(err),
		)
		return errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		logger.Component("apiclient"),
		logger.Method(method),
		logger.Path(path),
		logger.RequestID(reqID),
		logger.StatusCode(resp.StatusCode),
		logger.Elapsed(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Message: detailMessage(data)}
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Join(ErrMalformedResponse, err)
	}
	return nil
}

// detailMessage extracts a human-readable message from an error body.
// The backend answers {"detail": "..."} or, for validation failures,
// {"detail": [{"msg": "..."}]}; some proxies answer {"message": "..."}.
func detailMessage(data []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}

	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
