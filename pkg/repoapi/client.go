package repoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// APIError represents a non-2xx API response
type APIError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("repoapi: bad response (%d): %s", e.StatusCode, string(e.Body))
}

// IsAuthError reports whether the given error is an API authentication failure
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && IsAuthStatus(apiErr.StatusCode)
}

// IsNotFound reports whether the given error is an API "not found" response
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// envelope represents the standard API request and response body wrapper
type envelope struct {
	Data interface{} `json:"data"`
}

// request makes a request to the API using the given HTTP method, path and query,
// sending `in` wrapped in the data envelope (if not nil) and decoding the response's data into `out` (if not nil)
func (c *Client) request(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(envelope{Data: in})
		if err != nil {
			return errors.Wrap(err, "repoapi: error encoding request")
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "repoapi: error creating request")
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", jsonMimeType)
	req.Header.Set(requestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", jsonMimeType)
	}

	logger := log.WithFields(log.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "repoapi: error making request")
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "repoapi: error reading response body")
	}
	logger.WithField("status", resp.StatusCode).Debugf("request done in %s", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err = json.Unmarshal(respBody, &envelope{Data: out}); err != nil {
		return errors.Wrapf(err, "repoapi: error parsing response of %s %s", method, path)
	}
	return nil
}

// Session returns the session the client authenticates with
func (c *Client) Session() Session {
	return c.session
}
