package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/quest_academy/pkg/logging"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
)

// CredentialSource is read before every request and cleared on 401.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type Options struct {
	// BaseURL is the API root, e.g. http://localhost:5173/api.
	BaseURL     string
	Credentials CredentialSource
	// Navigator is optional; without one a 401 only clears state.
	Navigator Navigator
	Timeout   time.Duration
	// Transport defaults to a pooled http.Transport.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

type Client struct {
	baseURL    string
	origin     *url.URL
	httpClient *http.Client
	creds      CredentialSource
	nav        Navigator
	log        *slog.Logger

	mu    sync.RWMutex
	hooks []func()
}

func New(opts Options) (*Client, error) {
	if opts.Credentials == nil {
		return nil, errors.New("gateway: credentials are required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", opts.BaseURL)
	}

	base := opts.Transport
	if base == nil {
		base = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	}

	l := opts.Logger
	if l == nil {
		l = logging.Discard()
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		origin:  &url.URL{Scheme: u.Scheme, Host: u.Host},
		creds:   opts.Credentials,
		nav:     opts.Navigator,
		log:     l.With("component", "gateway"),
	}
	c.httpClient = &http.Client{
		Timeout:   opts.Timeout,
		Transport: &authTransport{base: base, client: c},
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// sameOrigin reports whether u points at the API host. Credentials and the
// 401 handling apply to nothing else, redirects included.
func (c *Client) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, c.origin.Scheme) && strings.EqualFold(u.Host, c.origin.Host)
}

// OnUnauthorized registers fn to run after a 401 has cleared the credentials
// and before the redirect to the login screen.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

func (c *Client) expire(ctx context.Context, l *slog.Logger) {
	if err := c.creds.Clear(context.WithoutCancel(ctx)); err != nil {
		l.Error("clear credentials after 401", "error", err)
	}

	c.mu.RLock()
	hooks := append([]func(){}, c.hooks...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}

	if c.nav == nil {
		return
	}
	if loc := c.nav.Location(); !IsPublicPath(loc) {
		l.Info("session expired, redirecting", "from", loc, "to", LoginPath)
		c.nav.Navigate(LoginPath)
	}
}

// Request describes one call. Header entries replace the defaults
// (Content-Type, Accept) but never the Authorization header.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   io.Reader
	Header http.Header
}

func (c *Client) URL(path string, q url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Do sends r and decodes a JSON response into out when out is non-nil.
// Non-2xx responses come back as *HTTPError; nothing is retried.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.Method, c.URL(r.Path, r.Query), r.Body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", MIMEApplicationJSON)
	if r.Body != nil {
		req.Header.Set("Content-Type", MIMEApplicationJSON)
	}
	for k, vs := range r.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, q url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: q}, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// PostForm sends a url-encoded body, as the login endpoints expect.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   strings.NewReader(form.Encode()),
		Header: http.Header{"Content-Type": {MIMEApplicationForm}},
	}, out)
}

// Upload posts content as a single multipart file field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   &buf,
		Header: http.Header{"Content-Type": {mw.FormDataContentType()}},
	}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.Do(ctx, Request{Method: method, Path: path, Body: body}, out)
}
