// Package matchid decodes legacy Oracle's Elixir style match identifiers.
//
// A series game is stored as "{baseID}_{gameNumber}". Base IDs may themselves
// contain underscores, so every decoder splits on the LAST separator. An ID
// without any separator is a standalone (Bo1) match.
package matchid

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

const (
	// Separator joins the base series ID and the game number.
	Separator = "_"

	MinGame = 1
	MaxGame = 7
)

// IsSeriesMatch reports whether id carries a game-number suffix.
func IsSeriesMatch(id string) bool {
	return strings.Contains(id, Separator)
}

// BaseMatchID returns the series ID that id belongs to. Non-series IDs are
// returned unchanged.
func BaseMatchID(id string) string {
	i := strings.LastIndex(id, Separator)
	if i < 0 {
		return id
	}
	return id[:i]
}

// GameNumber returns the 1-based position of the game inside its series.
//
// A missing, unparseable or out-of-range suffix falls back to the number of
// separator-delimited segments. The result is always >= 1.
func GameNumber(id string) int {
	i := strings.LastIndex(id, Separator)
	if i < 0 {
		return 1
	}

	suffix := id[i+len(Separator):]
	n, err := strconv.Atoi(suffix)
	if err == nil && n >= MinGame && n <= MaxGame {
		return n
	}

	positional := len(strings.Split(id, Separator))
	slog.Warn("Unusable game number suffix, using positional fallback",
		"match_id", id, "suffix", suffix, "game_number", positional)
	return positional
}

// Compose builds the identifier of game n in series baseID.
func Compose(baseID string, n int) string {
	return fmt.Sprintf("%s%s%d", baseID, Separator, n)
}
