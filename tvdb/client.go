package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents an authenticated TheTVDB API session
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	maxPages   int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient logs in with the API key and returns a client bound to the session token
func NewClient(ctx context.Context, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	client := &Client{
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		userAgent:  o.userAgent,
		maxPages:   o.maxPages,
		httpClient: httpClient,
		logger:     logger,
	}

	token, err := client.login(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	client.token = token

	return client, nil
}

// Token returns the session token obtained at login
func (c *Client) Token() string {
	return c.token
}

// login exchanges the API key for a session token
func (c *Client) login(ctx context.Context, apiKey string) (string, error) {
	const endpoint = "/login"

	body, err := json.Marshal(loginRequest{APIKey: apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("Login rejected")
		return "", ErrInvalidAPIKey
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return "", &DecodeError{Endpoint: endpoint, Err: err}
	}
	if login.Token == "" {
		return "", &DecodeError{Endpoint: endpoint, Err: errors.New("missing token field")}
	}

	c.logger.Debug().Msg("Authenticated with TheTVDB")
	return login.Token, nil
}

// newRequest builds an authenticated request; params and language are only sent when present
func (c *Client) newRequest(ctx context.Context, method, endpoint string, params url.Values, language string) (*http.Request, error) {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if language != "" {
		req.Header.Set("Accept-Language", language)
	}

	return req, nil
}

// do sends the request and decodes a 200 body into out
func (c *Client) do(req *http.Request, out any) error {
	endpoint := req.URL.Path

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Msg("TheTVDB API request")

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Endpoint: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	if body, ok := out.(envelope); ok {
		if err := body.validate(); err != nil {
			return &DecodeError{Endpoint: endpoint, Err: err}
		}
	}

	return nil
}
