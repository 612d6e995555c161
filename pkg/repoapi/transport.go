package repoapi

import (
	"context"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// authStatusCodes are the response status codes which trigger a token refresh
var authStatusCodes = map[int]bool{
	http.StatusUnauthorized:        true,
	http.StatusForbidden:           true,
	http.StatusUnprocessableEntity: true,
}

// IsAuthStatus reports whether the given response status code is related to authentication
func IsAuthStatus(statusCode int) bool {
	return authStatusCodes[statusCode]
}

type skipTokenRefreshKey struct{}

// WithoutTokenRefresh returns a context marking requests made with it as not eligible for a token refresh:
// an authentication failure on such request removes the session straight away
func WithoutTokenRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipTokenRefreshKey{}, true)
}

func skipTokenRefresh(ctx context.Context) bool {
	skip, _ := ctx.Value(skipTokenRefreshKey{}).(bool)
	return skip
}

// authTransport is an http.RoundTripper that authenticates requests with the session's access token,
// refreshing it and replaying the request once on authentication failures
type authTransport struct {
	base    http.RoundTripper
	session Session
	refresh func(ctx context.Context) error
}

// RoundTrip implements the http.RoundTripper interface
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	exist := t.session.Exist()
	resp, err := t.base.RoundTrip(t.authenticate(req, exist))
	if err != nil || !exist || !IsAuthStatus(resp.StatusCode) {
		return resp, err
	}

	logger := log.WithFields(log.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": resp.StatusCode,
	})
	ctx := req.Context()
	if skipTokenRefresh(ctx) {
		logger.Info("authentication failed after token refresh, removing session")
		t.expire(ctx)
		return resp, nil
	}

	if err = t.refresh(ctx); err != nil {
		logger.Infof("failed to refresh token, removing session: %v", err)
		t.expire(ctx)
		return resp, nil
	}

	retry, err := replayable(req)
	if err != nil {
		logger.Errorf("failed to replay request: %v", err)
		t.expire(ctx)
		return resp, nil
	}
	drain(resp)
	return t.RoundTrip(retry.WithContext(WithoutTokenRefresh(ctx)))
}

// authenticate returns a copy of the request with the auth header set to the current access token,
// or removed when there's no session
func (t *authTransport) authenticate(req *http.Request, exist bool) *http.Request {
	r := req.Clone(req.Context())
	r.Header.Del(AuthTokenHeader)
	if !exist {
		return r
	}

	token, err := t.session.Token()
	if err != nil || token.AccessToken == "" {
		return r
	}
	r.Header.Set(AuthTokenHeader, token.AccessToken)
	return r
}

// expire removes the session, the failed response is still returned to the caller
func (t *authTransport) expire(ctx context.Context) {
	if err := t.session.RemoveTokens(ctx); err != nil {
		log.Errorf("failed to remove session: %v", err)
	}
}

// replayable returns a copy of the request with a fresh body
func replayable(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return r, nil
	}
	if req.GetBody == nil {
		return nil, errNotReplayable
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	r.Body = body
	return r, nil
}

// drain discards and closes a response body so that its connection can be reused
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
