package tvdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SearchSeries searches series by name, IMDb ID, Zap2it ID or slug.
// Filters are passed through as-is and combined by the server.
func (c *Client) SearchSeries(ctx context.Context, params SearchParams) ([]Series, error) {
	query := url.Values{}
	if params.Name != "" {
		query.Set("name", params.Name)
	}
	if params.IMDbID != "" {
		query.Set("imdbId", params.IMDbID)
	}
	if params.Zap2itID != "" {
		query.Set("zap2itId", params.Zap2itID)
	}
	if params.Slug != "" {
		query.Set("slug", params.Slug)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/search/series", query, params.Language)
	if err != nil {
		return nil, err
	}

	var response seriesSearchResponse
	if err := c.do(req, &response); err != nil {
		return nil, fmt.Errorf("failed to search series: %w", err)
	}

	c.logger.Debug().Int("count", len(*response.Data)).Msg("Retrieved series search results")
	return *response.Data, nil
}

// GetSeries retrieves a single series by ID
func (c *Client) GetSeries(ctx context.Context, seriesID uint64, language string) (*SeriesDetail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/series/%d", seriesID), nil, language)
	if err != nil {
		return nil, err
	}

	var response seriesDetailResponse
	if err := c.do(req, &response); err != nil {
		return nil, fmt.Errorf("failed to get series %d: %w", seriesID, err)
	}

	return response.Data, nil
}
