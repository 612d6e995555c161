/*
Package repoapi implements a client for the Reposition slot marketplace REST API (https://api.reposition.it/).

Requests made while a session exists carry its access token in the Auth-Token header. Authentication
failures (401, 403 and 422 responses) trigger a token refresh shared by all concurrent callers, after which
the failed request is replayed once; when the refresh or the replay fails, the session is removed.
*/
package repoapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Config represents a configuration for the API client
type Config struct {
	BaseURL           string `toml:"base_url,omitempty"`
	TimeoutSeconds    int    `toml:"timeout,omitempty"`
	RefreshDebounceMS int    `toml:"refresh_debounce_ms,omitempty"`
}

// Session is the token holder the client authenticates with
// the tokens are read on every request, so changes made by other components are picked up immediately
type Session interface {
	oauth2.TokenSource
	Exist() bool
	SetAccessToken(ctx context.Context, accessToken string) error
	RemoveTokens(ctx context.Context) error
}

// Client represents a Reposition API client bound to a Session
type Client struct {
	baseURL *url.URL
	http    *http.Client
	session Session
	timeout time.Duration
}

// NewClient initializes an API client with the given configuration and session
// transport may be nil, in which case http.DefaultTransport is used
func NewClient(config Config, s Session, transport http.RoundTripper) (*Client, error) {
	rawURL := config.BaseURL
	if rawURL == "" {
		rawURL = DefaultBaseURL
	}
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "repoapi: invalid base URL")
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	timeout := defaultRequestTimeout
	if config.TimeoutSeconds > 0 {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	debounce := defaultRefreshDebounce
	if config.RefreshDebounceMS > 0 {
		debounce = time.Duration(config.RefreshDebounceMS) * time.Millisecond
	}

	r := &refresher{
		client:  &http.Client{Transport: transport},
		url:     baseURL.ResolveReference(&url.URL{Path: refreshTokenPath}).String(),
		session: s,
		window:  debounce,
		now:     time.Now,
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &authTransport{
				base:    transport,
				session: s,
				refresh: r.refresh,
			},
		},
		session: s,
		timeout: timeout,
	}, nil
}
