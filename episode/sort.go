package episode

import (
	"cmp"
	"slices"

	"github.com/s0up4200/tvdb-episodes/tvdb"
)

// Compare orders episodes by (aired season, aired number, dvd season, dvd number, title).
// A missing optional field sorts before any present value.
func Compare(a, b tvdb.Episode) int {
	if c := cmp.Compare(a.AiredSeason, b.AiredSeason); c != 0 {
		return c
	}
	if c := cmp.Compare(a.AiredEpisodeNumber, b.AiredEpisodeNumber); c != 0 {
		return c
	}
	if c := compareOptional(a.DVDSeason, b.DVDSeason); c != 0 {
		return c
	}
	if c := compareOptional(a.DVDEpisodeNumber, b.DVDEpisodeNumber); c != 0 {
		return c
	}
	return compareOptional(a.EpisodeName, b.EpisodeName)
}

func compareOptional[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

// Sort sorts episodes in place by Compare
func Sort(episodes []tvdb.Episode) {
	slices.SortStableFunc(episodes, Compare)
}
