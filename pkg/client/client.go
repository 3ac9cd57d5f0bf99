package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to an advisor server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	authToken  string
}

type Option func(*Client)

// WithAuthToken sets the bearer token sent with every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(server string, opts ...Option) (*Client, error) {
	if server == "" {
		return nil, fmt.Errorf("server address is required")
	}
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("parsing server address: %w", err)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type urlBuilder struct {
	base       url.URL
	path       string
	pathParams map[string]string
	query      url.Values
}

func (c *Client) url() *urlBuilder {
	return &urlBuilder{
		base:       *c.baseURL,
		pathParams: map[string]string{},
		query:      url.Values{},
	}
}

func (b *urlBuilder) setPath(path string) *urlBuilder {
	b.path = path
	return b
}

func (b *urlBuilder) setPathParam(name, value string) *urlBuilder {
	b.pathParams[name] = value
	return b
}

func (b *urlBuilder) addQueryParam(name string, value any) *urlBuilder {
	b.query.Add(name, fmt.Sprint(value))
	return b
}

func (b *urlBuilder) build() string {
	path, rawPath := b.path, b.path
	for name, value := range b.pathParams {
		path = strings.ReplaceAll(path, "{"+name+"}", value)
		rawPath = strings.ReplaceAll(rawPath, "{"+name+"}", url.PathEscape(value))
	}
	u := b.base
	u.RawPath = strings.TrimSuffix(u.EscapedPath(), "/") + rawPath
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(b.query) > 0 {
		u.RawQuery = b.query.Encode()
	}
	return u.String()
}
