// Package listing resolves a series and builds its printable episode lines.
package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/tvdb-episodes/episode"
	"github.com/s0up4200/tvdb-episodes/filter"
	"github.com/s0up4200/tvdb-episodes/tvdb"
)

var (
	// ErrAborted is returned by a Chooser when the user declines to pick a series
	ErrAborted = errors.New("series selection aborted")
	// ErrNoMatches means the name search returned no series
	ErrNoMatches = errors.New("no series matched the search")
	// ErrNoSeries means neither an ID nor a name was given
	ErrNoSeries = errors.New("a series name or ID is required")
)

// Chooser picks one series ID among several search matches.
// It is only called when a search returns more than one match.
type Chooser func(ctx context.Context, matches []tvdb.Series) (uint64, error)

// Request describes which series to list and how
type Request struct {
	SeriesID uint64
	Name     string
	Language string
	Ordering episode.Ordering
	Filter   *filter.ExprFilter
}

// Service builds episode listings on top of the TheTVDB API
type Service struct {
	api    tvdb.API
	logger zerolog.Logger
}

// NewService creates a listing service
func NewService(api tvdb.API, logger zerolog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

// ResolveSeriesID returns the requested ID, or searches by name and
// asks choose to disambiguate when more than one series matches.
func (s *Service) ResolveSeriesID(ctx context.Context, req Request, choose Chooser) (uint64, error) {
	if req.SeriesID != 0 {
		return req.SeriesID, nil
	}
	if req.Name == "" {
		return 0, ErrNoSeries
	}

	matches, err := s.api.SearchSeries(ctx, tvdb.SearchParams{Name: req.Name, Language: req.Language})
	if err != nil {
		return 0, err
	}

	s.logger.Debug().Str("name", req.Name).Int("matches", len(matches)).Msg("Searched series")

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%w: %q", ErrNoMatches, req.Name)
	case 1:
		return matches[0].ID, nil
	}

	if choose == nil {
		return 0, fmt.Errorf("%d series match %q, pick one with --id", len(matches), req.Name)
	}
	return choose(ctx, matches)
}

// Entries fetches and normalizes every episode of the requested series
func (s *Service) Entries(ctx context.Context, req Request, choose Chooser) ([]episode.Entry, error) {
	seriesID, err := s.ResolveSeriesID(ctx, req, choose)
	if err != nil {
		return nil, err
	}

	series, err := s.api.GetSeries(ctx, seriesID, req.Language)
	if err != nil {
		return nil, err
	}

	episodes, err := s.api.GetSeriesEpisodes(ctx, series.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint64("series_id", series.ID).
		Str("series", series.SeriesName).
		Int("episodes", len(episodes)).
		Str("ordering", req.Ordering.String()).
		Msg("Fetched episode listing")

	entries := episode.Normalize(series.SeriesName, episodes, req.Ordering)

	if req.Filter != nil {
		entries, err = req.Filter.Apply(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to apply filter: %w", err)
		}
		s.logger.Debug().Str("filter", req.Filter.String()).Int("kept", len(entries)).Msg("Filtered episodes")
	}

	return entries, nil
}

// Lines returns the display labels of Entries
func (s *Service) Lines(ctx context.Context, req Request, choose Chooser) ([]string, error) {
	entries, err := s.Entries(ctx, req, choose)
	if err != nil {
		return nil, err
	}
	return episode.Labels(entries), nil
}
