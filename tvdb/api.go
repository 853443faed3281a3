package tvdb

import (
	"context"
)

// API defines the TheTVDB operations used to build an episode listing
type API interface {
	// SearchSeries finds series matching the given filters
	SearchSeries(ctx context.Context, params SearchParams) ([]Series, error)

	// GetSeries looks up a single series by ID
	GetSeries(ctx context.Context, seriesID uint64, language string) (*SeriesDetail, error)

	// GetSeriesEpisodes fetches every episode page of a series and merges them
	GetSeriesEpisodes(ctx context.Context, seriesID uint64) ([]Episode, error)
}

// EpisodePager fetches a single page of a series' episodes
type EpisodePager interface {
	GetEpisodePage(ctx context.Context, seriesID, page uint64) (*EpisodePage, error)
}

var (
	_ API          = (*Client)(nil)
	_ EpisodePager = (*Client)(nil)
)
