// Package episode turns raw TheTVDB episode records into a stable,
// file-name-safe listing.
package episode

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/s0up4200/tvdb-episodes/tvdb"
)

// Entry is one normalized line of the listing
type Entry struct {
	Season  int64
	Number  int64
	Title   string
	Label   string
	Episode tvdb.Episode
}

// Label formats "{series} - sXXeYY", adding " - {title}" when the title is not empty
func Label(series string, season, number int64, title string) string {
	label := fmt.Sprintf("%s - s%02de%02d", series, season, number)
	if title != "" {
		label += " - " + title
	}
	return label
}

// Normalize sorts a copy of episodes and builds their display entries.
// The series name and every title go through Sanitize.
func Normalize(seriesName string, episodes []tvdb.Episode, ordering Ordering) []Entry {
	sorted := slices.Clone(episodes)
	Sort(sorted)

	series := Sanitize(seriesName)
	return lo.Map(sorted, func(ep tvdb.Episode, _ int) Entry {
		season, number := Numbers(ep, ordering)
		title := Sanitize(lo.FromPtr(ep.EpisodeName))
		return Entry{
			Season:  season,
			Number:  number,
			Title:   title,
			Label:   Label(series, season, number, title),
			Episode: ep,
		}
	})
}

// Labels extracts the display lines from entries
func Labels(entries []Entry) []string {
	return lo.Map(entries, func(e Entry, _ int) string {
		return e.Label
	})
}
