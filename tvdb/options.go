package tvdb

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the TheTVDB v3 API root.
	DefaultBaseURL = "https://api.thetvdb.com"
	// DefaultTimeout bounds every single HTTP call.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxPages caps the episode paginator.
	DefaultMaxPages = 1000
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	maxPages   int
	httpClient *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: "tvdb-episodes/dev",
		maxPages:  DefaultMaxPages,
	}
}

// WithBaseURL overrides the API root, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets the identifying user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithMaxPages sets the maximum number of episode pages fetched per series.
// Values below 1 keep DefaultMaxPages; the ceiling cannot be turned off.
func WithMaxPages(pages int) Option {
	return func(o *clientOptions) {
		if pages >= 1 {
			o.maxPages = pages
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its timeout wins over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
