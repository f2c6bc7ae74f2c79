// AngelaMos | 2026
// client.go

// Package client is a typed Go client for the asset management API. A
// Client is built from a Config and a Session; it keeps no package-level
// state.
package client

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
	"strconv"
	"strings"
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
	session *Session
	cache   *QueryCache
	logger  *slog.Logger
}

func New(cfg Config, session *Session) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if session == nil {
		session, err = NewSession(nil)
		if err != nil {
			return nil, err
		}
	}

	cfg = cfg.withDefaults()

	c := &Client{
		baseURL: base,
		http:    cfg.HTTPClient,
		session: session,
		logger:  cfg.Logger,
	}
	if !cfg.Isolated {
		c.cache = NewQueryCache(cfg.CacheTTL)
	}
	return c, nil
}

func (c *Client) Session() *Session { return c.session }

// Cache is the shared read cache, nil when the client is isolated.
func (c *Client) Cache() *QueryCache { return c.cache }

// Subscribe forwards to the shared cache. On an isolated client it never
// fires.
func (c *Client) Subscribe(prefix string, fn func(prefix string)) func() {
	if c.cache == nil {
		return func() {}
	}
	return c.cache.Subscribe(prefix, fn)
}

func (c *Client) invalidate(prefixes ...string) {
	if c.cache == nil {
		return
	}
	for _, p := range prefixes {
		c.cache.Invalidate(p)
	}
}

// MintToken exchanges an identity provider ID token for a session token.
// The API takes the email from the verified ID token.
func (c *Client) MintToken(ctx context.Context, idToken string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/jwt",
		body:   map[string]string{"id_token": idToken},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("client: empty token in response")
	}
	return out.Token, nil
}

// Login signs in through idp and stores the minted token in the session.
// Cached reads from a previous identity are dropped.
func (c *Client) Login(ctx context.Context, idp IdentityProvider) error {
	if err := c.session.Login(ctx, idp, c); err != nil {
		return err
	}
	c.invalidate("")
	c.logger.Info("signed in", "email", c.session.Email())
	return nil
}

// Logout revokes the token server side and clears the session. The local
// session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	var serverErr error
	if c.session.Active() {
		serverErr = c.do(ctx, request{
			method: http.MethodPost,
			path:   "/logout",
			authed: true,
		}, nil)
		if errors.Is(serverErr, ErrUnauthorized) {
			serverErr = nil
		}
	}

	c.invalidate("")
	if err := c.session.Clear(); err != nil {
		return err
	}
	return serverErr
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	authed bool
	accept string
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	var token string
	if r.authed {
		token = c.session.Token()
		if token == "" {
			return nil, ErrNoSession
		}
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	apiErr := &APIError{Status: resp.StatusCode}
	var env errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &env) == nil {
		apiErr.Code, apiErr.Message = env.Error.Code, env.Error.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = strings.ReplaceAll(strings.ToUpper(http.StatusText(resp.StatusCode)), " ", "_")
	}

	c.logger.Debug("api error",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"code", apiErr.Code,
	)
	return nil, apiErr
}

// selfPath builds a route ending in the signed-in email.
func (c *Client) selfPath(prefix string) (string, string, error) {
	email := c.session.Email()
	if email == "" {
		return "", "", ErrNoSession
	}
	return prefix + email, email, nil
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}
