package tvdb

import (
	"encoding/json"
	"errors"
)

// Series is a single search match
type Series struct {
	ID         uint64 `json:"id"`
	SeriesName string `json:"seriesName"`
}

// SeriesDetail is the result of a direct series lookup
type SeriesDetail struct {
	ID         uint64 `json:"id"`
	SeriesName string `json:"seriesName"`
}

// Episode is one entry of a series' episode collection.
// DVD numbering and the title are optional on the wire.
type Episode struct {
	AiredSeason        int64   `json:"airedSeason"`
	AiredEpisodeNumber int64   `json:"airedEpisodeNumber"`
	DVDSeason          *int64  `json:"dvdSeason"`
	DVDEpisodeNumber   *int64  `json:"dvdEpisodeNumber"`
	EpisodeName        *string `json:"episodeName"`
}

// SearchParams selects the series search filters. Empty fields are not sent.
type SearchParams struct {
	Name     string
	IMDbID   string
	Zap2itID string
	Slug     string
	Language string
}

// EpisodePage is one page of a series' episode collection
type EpisodePage struct {
	Data  []Episode `json:"data"`
	Links Links     `json:"links"`
}

// Links holds the pagination cursor; Next is nil on the last page
type Links struct {
	Next *uint64 `json:"next"`
}

type loginRequest struct {
	APIKey string `json:"apikey"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// seriesFields is the wire form shared by search matches and series lookups
type seriesFields struct {
	ID         *uint64 `json:"id"`
	SeriesName *string `json:"seriesName"`
}

func (f *seriesFields) decode(data []byte) error {
	if err := json.Unmarshal(data, f); err != nil {
		return err
	}
	if f.ID == nil {
		return errors.New("series: missing id field")
	}
	if f.SeriesName == nil {
		return errors.New("series: missing seriesName field")
	}
	return nil
}

// UnmarshalJSON rejects series objects without an id or name
func (s *Series) UnmarshalJSON(data []byte) error {
	var fields seriesFields
	if err := fields.decode(data); err != nil {
		return err
	}
	*s = Series{ID: *fields.ID, SeriesName: *fields.SeriesName}
	return nil
}

// UnmarshalJSON rejects series objects without an id or name
func (s *SeriesDetail) UnmarshalJSON(data []byte) error {
	var fields seriesFields
	if err := fields.decode(data); err != nil {
		return err
	}
	*s = SeriesDetail{ID: *fields.ID, SeriesName: *fields.SeriesName}
	return nil
}

// UnmarshalJSON requires the aired numbering; everything else is optional
func (e *Episode) UnmarshalJSON(data []byte) error {
	var wire struct {
		AiredSeason        *int64  `json:"airedSeason"`
		AiredEpisodeNumber *int64  `json:"airedEpisodeNumber"`
		DVDSeason          *int64  `json:"dvdSeason"`
		DVDEpisodeNumber   *int64  `json:"dvdEpisodeNumber"`
		EpisodeName        *string `json:"episodeName"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.AiredSeason == nil {
		return errors.New("episode: missing airedSeason field")
	}
	if wire.AiredEpisodeNumber == nil {
		return errors.New("episode: missing airedEpisodeNumber field")
	}

	*e = Episode{
		AiredSeason:        *wire.AiredSeason,
		AiredEpisodeNumber: *wire.AiredEpisodeNumber,
		DVDSeason:          wire.DVDSeason,
		DVDEpisodeNumber:   wire.DVDEpisodeNumber,
		EpisodeName:        wire.EpisodeName,
	}
	return nil
}

// envelope is implemented by response bodies that check their own shape after decoding
type envelope interface {
	validate() error
}

var errMissingData = errors.New("missing data field")

type seriesSearchResponse struct {
	Data *[]Series `json:"data"`
}

func (r *seriesSearchResponse) validate() error {
	if r.Data == nil {
		return errMissingData
	}
	return nil
}

type seriesDetailResponse struct {
	Data *SeriesDetail `json:"data"`
}

func (r *seriesDetailResponse) validate() error {
	if r.Data == nil {
		return errMissingData
	}
	return nil
}

type episodePageResponse struct {
	Data  *[]Episode `json:"data"`
	Links *Links     `json:"links"`
}

func (r *episodePageResponse) validate() error {
	if r.Data == nil {
		return errMissingData
	}
	if r.Links == nil {
		return errors.New("missing links field")
	}
	return nil
}
