// Package client is a Go client for the Vlossom API. It keeps the session
// cookies issued by the server in a cookie jar, echoes the CSRF cookie on
// state-changing requests, and transparently refreshes an expired access
// token once before surfacing a 401 to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	csrfCookieName = "vlossom_csrf"
	csrfHeaderName = "X-CSRF-Token"

	codeTokenExpired = "TOKEN_EXPIRED"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client

	base *url.URL
}

func New(baseURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: base.String(),
		HTTP:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
		base:    base,
	}, nil
}

// csrfToken returns the CSRF token the server set as a cookie, if any.
func (c *Client) csrfToken() string {
	for _, ck := range c.HTTP.Jar.Cookies(c.base) {
		if ck.Name == csrfCookieName {
			return ck.Value
		}
	}
	return ""
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// do issues one request and decodes the response into out (when non-nil).
// When the server answers 401 TOKEN_EXPIRED it refreshes the session and
// retries the original request exactly once.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	err := c.doOnce(ctx, method, path, body, out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || apiErr.Code != codeTokenExpired {
		return err
	}

	if refreshErr := c.doOnce(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, nil); refreshErr != nil {
		return err
	}
	return c.doOnce(ctx, method, path, body, out)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && method != http.MethodHead {
		if token := c.csrfToken(); token != "" {
			req.Header.Set(csrfHeaderName, token)
		}
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		apiErr := &APIError{Status: res.StatusCode, Code: "UNKNOWN"}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
