package tvdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "session-token"

// newTestServer serves /login and delegates everything else to handler after checking auth
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.APIKey != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": testToken})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "tvdb-episodes/test", r.Header.Get("User-Agent"))
		handler(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := newTestServer(t, handler)
	opts = append([]Option{WithBaseURL(server.URL), WithUserAgent("tvdb-episodes/test")}, opts...)
	client, err := NewClient(context.Background(), "good-key", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("valid key", func(t *testing.T) {
		server := newTestServer(t, nil)

		client, err := NewClient(context.Background(), "good-key", logger, WithBaseURL(server.URL))
		require.NoError(t, err)
		assert.Equal(t, testToken, client.Token())
		assert.Equal(t, server.URL, client.baseURL)
	})

	t.Run("rejected key", func(t *testing.T) {
		server := newTestServer(t, nil)

		client, err := NewClient(context.Background(), "bad-key", logger, WithBaseURL(server.URL))
		require.ErrorIs(t, err, ErrInvalidAPIKey)
		assert.Nil(t, client)
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewClient(context.Background(), "", logger)
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "API key is required")
	})

	t.Run("login body without token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"other":"value"}`))
		}))
		defer server.Close()

		_, err := NewClient(context.Background(), "good-key", logger, WithBaseURL(server.URL))
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "/login", decodeErr.Endpoint)
	})

	t.Run("login body not json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		_, err := NewClient(context.Background(), "good-key", logger, WithBaseURL(server.URL))
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.False(t, errors.Is(err, ErrInvalidAPIKey))
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		closedURL := server.URL
		server.Close()

		_, err := NewClient(context.Background(), "good-key", logger, WithBaseURL(closedURL))
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
	})
}

func TestClientOptions(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(context.Background(), "good-key", zerolog.Nop(), WithBaseURL(server.URL), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("default timeout", func(t *testing.T) {
		client, err := NewClient(context.Background(), "good-key", zerolog.Nop(), WithBaseURL(server.URL))
		require.NoError(t, err)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
		assert.Equal(t, DefaultMaxPages, client.maxPages)
	})

	t.Run("with max pages", func(t *testing.T) {
		client, err := NewClient(context.Background(), "good-key", zerolog.Nop(), WithBaseURL(server.URL), WithMaxPages(3))
		require.NoError(t, err)
		assert.Equal(t, 3, client.maxPages)
	})

	t.Run("zero max pages keeps the ceiling", func(t *testing.T) {
		client, err := NewClient(context.Background(), "good-key", zerolog.Nop(), WithBaseURL(server.URL), WithMaxPages(0))
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxPages, client.maxPages)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(context.Background(), "good-key", zerolog.Nop(), WithBaseURL(server.URL), WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient(context.Background(), "good-key", zerolog.Nop(), WithBaseURL(server.URL+"/"))
		require.NoError(t, err)
		assert.Equal(t, server.URL, client.baseURL)
	})
}

func TestNewRequest(t *testing.T) {
	client := &Client{baseURL: "https://api.example.com", token: "abc", userAgent: "tvdb-episodes/1.0.0"}

	t.Run("without params or language", func(t *testing.T) {
		req, err := client.newRequest(context.Background(), http.MethodGet, "/series/42", nil, "")
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/series/42", req.URL.String())
		assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
		assert.Equal(t, "tvdb-episodes/1.0.0", req.Header.Get("User-Agent"))
		_, hasLanguage := req.Header["Accept-Language"]
		assert.False(t, hasLanguage)
	})

	t.Run("with params and language", func(t *testing.T) {
		params := url.Values{}
		params.Set("page", "3")

		req, err := client.newRequest(context.Background(), http.MethodGet, "/series/42/episodes", params, "fr")
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/series/42/episodes?page=3", req.URL.String())
		assert.Equal(t, "fr", req.Header.Get("Accept-Language"))
	})
}

func TestSearchSeries(t *testing.T) {
	t.Run("name only", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/series", r.URL.Path)
			assert.Equal(t, "Firefly", r.URL.Query().Get("name"))
			assert.NotContains(t, r.URL.Query(), "imdbId")
			assert.NotContains(t, r.URL.Query(), "zap2itId")
			assert.NotContains(t, r.URL.Query(), "slug")
			assert.Equal(t, "de", r.Header.Get("Accept-Language"))
			w.Write([]byte(`{"data":[{"id":78874,"seriesName":"Firefly"},{"id":1,"seriesName":"Firefly Lane"}]}`))
		})

		results, err := client.SearchSeries(context.Background(), SearchParams{Name: "Firefly", Language: "de"})
		require.NoError(t, err)
		assert.Equal(t, []Series{
			{ID: 78874, SeriesName: "Firefly"},
			{ID: 1, SeriesName: "Firefly Lane"},
		}, results)
	})

	t.Run("all filters", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "tt0303461", q.Get("imdbId"))
			assert.Equal(t, "EP00524463", q.Get("zap2itId"))
			assert.Equal(t, "firefly", q.Get("slug"))
			assert.Empty(t, r.Header.Get("Accept-Language"))
			w.Write([]byte(`{"data":[]}`))
		})

		results, err := client.SearchSeries(context.Background(), SearchParams{
			IMDbID:   "tt0303461",
			Zap2itID: "EP00524463",
			Slug:     "firefly",
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("error body with status 200", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Error":"Resource not found"}`))
		})

		results, err := client.SearchSeries(context.Background(), SearchParams{Name: "nothing"})
		assert.Nil(t, results)
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "/search/series", decodeErr.Endpoint)
		assert.Contains(t, decodeErr.Error(), "missing data field")
	})

	t.Run("match without id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"seriesName":"Firefly"}]}`))
		})

		_, err := client.SearchSeries(context.Background(), SearchParams{Name: "firefly"})
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Contains(t, decodeErr.Error(), "missing id field")
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"Error":"Resource not found"}`))
		})

		results, err := client.SearchSeries(context.Background(), SearchParams{Name: "nothing"})
		assert.Nil(t, results)
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.True(t, httpErr.IsNotFound())
		assert.Equal(t, "/search/series", httpErr.Endpoint)
		assert.Equal(t, "404 Not Found", httpErr.Status)
		assert.Contains(t, httpErr.Error(), "/search/series: response code 404 Not Found")
	})
}

func TestGetSeries(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/series/78874", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			assert.Equal(t, "en", r.Header.Get("Accept-Language"))
			w.Write([]byte(`{"data":{"id":78874,"seriesName":"Firefly"}}`))
		})

		series, err := client.GetSeries(context.Background(), 78874, "en")
		require.NoError(t, err)
		assert.Equal(t, &SeriesDetail{ID: 78874, SeriesName: "Firefly"}, series)
	})

	t.Run("unparseable body is not an http error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"id":"not-a-number"}}`))
		})

		_, err := client.GetSeries(context.Background(), 78874, "")
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		var httpErr *HTTPError
		assert.False(t, errors.As(err, &httpErr))
	})

	t.Run("wrong shape", func(t *testing.T) {
		tests := []struct {
			name    string
			body    string
			wantErr string
		}{
			{name: "error body", body: `{"Error":"Resource not found"}`, wantErr: "missing data field"},
			{name: "empty object", body: `{}`, wantErr: "missing data field"},
			{name: "null data", body: `{"data":null}`, wantErr: "missing data field"},
			{name: "no name", body: `{"data":{"id":78874}}`, wantErr: "missing seriesName field"},
			{name: "no id", body: `{"data":{"seriesName":"Firefly"}}`, wantErr: "missing id field"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(tt.body))
				})

				series, err := client.GetSeries(context.Background(), 78874, "")
				assert.Nil(t, series)
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, "/series/78874", decodeErr.Endpoint)
				assert.Contains(t, decodeErr.Error(), tt.wantErr)
			})
		}
	})

	t.Run("expired token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.GetSeries(context.Background(), 78874, "")
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.True(t, httpErr.IsUnauthorized())
		assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		assert.Contains(t, err.Error(), "401")
	})
}
