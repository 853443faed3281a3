package tvdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

// GetEpisodePage retrieves one page of a series' episodes. Pages start at 1.
func (c *Client) GetEpisodePage(ctx context.Context, seriesID, page uint64) (*EpisodePage, error) {
	params := url.Values{}
	params.Set("page", strconv.FormatUint(page, 10))

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/series/%d/episodes", seriesID), params, "")
	if err != nil {
		return nil, err
	}

	var response episodePageResponse
	if err := c.do(req, &response); err != nil {
		return nil, err
	}

	return &EpisodePage{Data: *response.Data, Links: *response.Links}, nil
}

// GetSeriesEpisodes retrieves all episodes of a series, following the page cursor
func (c *Client) GetSeriesEpisodes(ctx context.Context, seriesID uint64) ([]Episode, error) {
	return collectEpisodes(ctx, c, seriesID, c.maxPages, c.logger)
}

// collectEpisodes drains the cursor sequence starting at page 1.
// Any failure discards everything fetched so far.
func collectEpisodes(ctx context.Context, pager EpisodePager, seriesID uint64, maxPages int, logger zerolog.Logger) ([]Episode, error) {
	allEpisodes := []Episode{}
	page := uint64(1)

	for fetched := 1; ; fetched++ {
		if fetched > maxPages {
			return nil, fmt.Errorf("series %d: %w (%d)", seriesID, ErrTooManyPages, maxPages)
		}

		response, err := pager.GetEpisodePage(ctx, seriesID, page)
		if err != nil {
			return nil, fmt.Errorf("failed to get episodes page %d of series %d: %w", page, seriesID, err)
		}

		allEpisodes = append(allEpisodes, response.Data...)

		logger.Debug().
			Uint64("series", seriesID).
			Uint64("page", page).
			Int("count", len(response.Data)).
			Int("total", len(allEpisodes)).
			Msg("Retrieved episode page")

		if response.Links.Next == nil {
			break
		}
		next := *response.Links.Next
		if next <= page {
			return nil, fmt.Errorf("series %d: %w (page %d -> %d)", seriesID, ErrCursorNotProgressing, page, next)
		}
		page = next
	}

	return allEpisodes, nil
}
