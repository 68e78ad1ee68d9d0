package upstream

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
)

// TokenSource supplies and persists the credential pair for one session. The
// client never stores tokens itself: after a successful refresh it hands the
// new pair back through UpdateTokens, keeping the session store the single
// writer.
type TokenSource interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	UpdateTokens(ctx context.Context, access, refresh string) error
}

// Client is a typed client for the Causa Justa REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given API base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// request describes one upstream call. Bodies are kept as bytes so a request
// can be replayed after a token refresh.
type request struct {
	method      string
	path        string
	query       url.Values
	json        interface{}
	raw         []byte
	contentType string
}

type response struct {
	status int
	body   []byte
}

func (c *Client) buildRequest(ctx context.Context, req request, token string) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.path, "/")
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := req.contentType
	if req.json != nil {
		payload, err := json.Marshal(req.json)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	} else if req.raw != nil {
		body = bytes.NewReader(req.raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

func (c *Client) send(httpReq *http.Request) (*response, error) {
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &response{status: resp.StatusCode, body: body}, nil
}

// public performs an unauthenticated request and decodes a 2xx body into out.
func (c *Client) public(ctx context.Context, req request, out interface{}) error {
	httpReq, err := c.buildRequest(ctx, req, "")
	if err != nil {
		return err
	}
	resp, err := c.send(httpReq)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// authed performs an authenticated request. On 401/403 it refreshes the token
// pair once through the source and replays the original request in place; a
// failed refresh surfaces ErrSessionExpired.
func (c *Client) authed(ctx context.Context, ts TokenSource, req request, out interface{}) error {
	access, refresh, err := ts.Tokens(ctx)
	if err != nil {
		return err
	}

	httpReq, err := c.buildRequest(ctx, req, access)
	if err != nil {
		return err
	}
	resp, err := c.send(httpReq)
	if err != nil {
		return err
	}

	if resp.status != http.StatusUnauthorized && resp.status != http.StatusForbidden {
		return decode(resp, out)
	}

	pair, err := c.Refresh(ctx, refresh)
	if err != nil {
		return ErrSessionExpired
	}
	if err := ts.UpdateTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("store refreshed tokens: %w", err)
	}

	httpReq, err = c.buildRequest(ctx, req, pair.AccessToken)
	if err != nil {
		return err
	}
	resp, err = c.send(httpReq)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(resp *response, out interface{}) error {
	if resp.status < 200 || resp.status >= 300 {
		return newError(resp.status, resp.body)
	}
	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
