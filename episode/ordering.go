package episode

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/s0up4200/tvdb-episodes/tvdb"
)

// Ordering selects which season/episode pair is displayed. It never changes the sort order.
type Ordering int

const (
	// Aired uses the broadcast numbering
	Aired Ordering = iota
	// DVD uses the DVD release numbering, falling back to aired numbers field by field
	DVD
)

// String returns the flag value for the ordering
func (o Ordering) String() string {
	switch o {
	case Aired:
		return "aired"
	case DVD:
		return "dvd"
	default:
		return "unknown"
	}
}

// ParseOrdering parses "aired" or "dvd", case-insensitively
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aired":
		return Aired, nil
	case "dvd":
		return DVD, nil
	default:
		return Aired, fmt.Errorf("invalid ordering: %s (must be 'aired' or 'dvd')", s)
	}
}

// Numbers returns the season and episode number displayed for ep under the ordering
func Numbers(ep tvdb.Episode, ordering Ordering) (season, number int64) {
	if ordering == DVD {
		return lo.FromPtrOr(ep.DVDSeason, ep.AiredSeason), lo.FromPtrOr(ep.DVDEpisodeNumber, ep.AiredEpisodeNumber)
	}
	return ep.AiredSeason, ep.AiredEpisodeNumber
}
