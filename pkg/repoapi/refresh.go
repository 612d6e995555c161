package repoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// refresher refreshes the session's access token
// concurrent callers share one in-flight refresh, and callers arriving within the debounce window after it
// completed get its result instead of issuing another refresh request
type refresher struct {
	client  *http.Client
	url     string
	session Session
	window  time.Duration
	now     func() time.Time

	group    singleflight.Group
	mu       sync.Mutex
	lastDone time.Time
	lastErr  error
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
	Data        struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

func (r refreshTokenResponse) token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Data.AccessToken
}

// refresh refreshes the access token, or waits for the refresh already in progress
func (r *refresher) refresh(ctx context.Context) error {
	r.mu.Lock()
	if !r.lastDone.IsZero() && r.now().Sub(r.lastDone) < r.window {
		err := r.lastErr
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	_, err, shared := r.group.Do(refreshTokenPath, func() (interface{}, error) {
		err := r.do(ctx)
		r.mu.Lock()
		r.lastDone = r.now()
		r.lastErr = err
		r.mu.Unlock()
		return nil, err
	})
	if shared {
		log.Debug("joined an in-flight token refresh")
	}
	return err
}

// do makes the refresh request and stores the new access token in the session
func (r *refresher) do(ctx context.Context) error {
	token, err := r.session.Token()
	if err != nil {
		return errors.Wrap(err, "repoapi: error reading session")
	}
	if token.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	payload, err := json.Marshal(refreshTokenRequest{RefreshToken: token.RefreshToken})
	if err != nil {
		return errors.Wrap(err, "repoapi: error encoding refresh request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "repoapi: error creating refresh request")
	}
	req.Header.Set("Content-Type", jsonMimeType)
	req.Header.Set("Accept", jsonMimeType)

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "repoapi: error making refresh request")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "repoapi: error reading refresh response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	var res refreshTokenResponse
	if err = json.Unmarshal(body, &res); err != nil {
		return errors.Wrap(err, "repoapi: error parsing refresh response")
	}
	if res.token() == "" {
		return ErrRefreshFailed
	}
	return r.session.SetAccessToken(ctx, res.token())
}
