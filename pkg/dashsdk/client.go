package dashsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a homeroom daemon. It performs the unauthenticated calls
// and creates authenticated Sessions through Login or ResumeSession.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the daemon at baseURL, usually a loopback
// address on the same workstation.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates against the daemon and returns a Session carrying the
// bearer token. Credentials go over the wire exactly as given.
//
// Failures come back as *APIError: ErrorCodeInvalidCredentials means the
// input is wrong, ErrorCodeUnavailable means the store was unreachable and
// the same input may work on a retry.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	payload, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/session", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &Session{client: c, token: loginResp.Token, user: loginResp.User}, nil
}

// ResumeSession rebuilds a Session from a token kept from an earlier login.
// No call is made here; the first authenticated request tells whether the
// daemon still honours the token.
func (c *Client) ResumeSession(token string, user SessionUser) *Session {
	return &Session{client: c, token: token, user: user}
}

// SessionStatus reports the daemon's session phase and, while
// authenticated, the account it belongs to. It needs no token, so a
// dashboard can render the right screen before logging in.
func (c *Client) SessionStatus(ctx context.Context) (SessionStatusResponse, error) {
	var status SessionStatusResponse

	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/session", nil, nil)
	if err != nil {
		return status, err
	}

	err = decodeJSON(resp, &status, http.StatusOK)
	return status, err
}

// Livez reports basic daemon health.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse

	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return health, err
	}

	err = decodeJSON(resp, &health, http.StatusOK)
	return health, err
}

// Readyz reports whether the daemon can reach its store. A degraded
// response comes back as an *APIError with the health payload discarded.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse

	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return health, err
	}

	err = decodeJSON(resp, &health, http.StatusOK)
	return health, err
}
