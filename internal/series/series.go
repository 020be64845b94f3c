// Package series reconstructs best-of-N series from per-game match records
// and computes running scores between the two teams.
//
// Games are grouped by the base of their "{baseID}_{gameNumber}" identifier.
// Because the grouping is inferred from a naming convention, a base ID that
// matches a single game is treated as a Bo1 and one that matches more games
// than any standard format allows is treated as an identifier collision.
package series

import (
	"context"
	"log/slog"
	"sort"

	"github.com/albapepper/lolstats/internal/matchid"
	"github.com/albapepper/lolstats/internal/model"
)

// GameSource fetches every persisted game whose ID starts with "{baseID}_",
// ordered by ID ascending.
type GameSource interface {
	SeriesGames(ctx context.Context, baseID string) ([]model.SeriesGame, error)
}

// Thresholds bound how many games a base ID may match and still count as a
// real series.
type Thresholds struct {
	MinGames int
	MaxGames int
}

// DefaultThresholds returns the Bo3/Bo5/Bo7 compatible bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{MinGames: 2, MaxGames: 7}
}

// CollisionFormat is reported for groupings too long to be a real series.
const CollisionFormat = 3

type class int

const (
	classEmpty class = iota
	classSingle
	classStandard
	classCollision
)

func (t Thresholds) classify(n int) class {
	switch {
	case n == 0:
		return classEmpty
	case n < t.MinGames:
		return classSingle
	case n > t.MaxGames:
		return classCollision
	default:
		return classStandard
	}
}

// NearestFormat returns the shortest standard series length that can hold n
// games.
func NearestFormat(n int) int {
	switch {
	case n <= 3:
		return 3
	case n <= 5:
		return 5
	default:
		return 7
	}
}

// Series is a derived grouping of games sharing one base ID.
type Series struct {
	BaseID     string             `json:"base_id"`
	Games      []model.SeriesGame `json:"games"`
	Format     int                `json:"format"`
	IsStandard bool               `json:"is_standard"`
}

// Scorable returns the games that count toward the series score. Groupings
// that are not standard series have none.
func (s Series) Scorable() []model.SeriesGame {
	if !s.IsStandard {
		return nil
	}
	return s.Games
}

// Score is the number of games won by each supplied team.
type Score struct {
	Blue int `json:"blue"`
	Red  int `json:"red"`
}

// Service answers series questions against a GameSource. All methods are
// total: fetch failures are logged and reported as zero values.
type Service struct {
	src    GameSource
	th     Thresholds
	logger *slog.Logger
}

// NewService creates a series service.
func NewService(src GameSource, th Thresholds, logger *slog.Logger) *Service {
	if th.MinGames <= 0 || th.MaxGames < th.MinGames {
		th = DefaultThresholds()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{src: src, th: th, logger: logger}
}

// load fetches and classifies the games of baseID.
func (s *Service) load(ctx context.Context, baseID string) (Series, error) {
	games, err := s.src.SeriesGames(ctx, baseID)
	if err != nil {
		return Series{BaseID: baseID}, err
	}
	sort.SliceStable(games, func(i, j int) bool { return games[i].ID < games[j].ID })

	ser := Series{BaseID: baseID, Games: games}
	switch s.th.classify(len(games)) {
	case classEmpty:
	case classSingle:
		ser.Format = 1
	case classCollision:
		ser.Format = CollisionFormat
		s.logger.Warn("Series grouping exceeds maximum length, treating as ID collision",
			"base_id", baseID, "games", len(games), "max_games", s.th.MaxGames)
	case classStandard:
		ser.Format = NearestFormat(len(games))
		ser.IsStandard = true
	}
	return ser, nil
}

// Lookup returns the derived series for baseID. ok is false when no games
// match or the fetch failed.
func (s *Service) Lookup(ctx context.Context, baseID string) (Series, bool) {
	ser, err := s.load(ctx, baseID)
	if err != nil {
		s.logger.Error("Failed to fetch series games", "base_id", baseID, "error", err)
		return Series{BaseID: baseID}, false
	}
	return ser, len(ser.Games) > 0
}

// IsStandardSeries reports whether matchID belongs to a genuine Bo3/Bo5/Bo7.
// Non-series IDs are answered without a query.
func (s *Service) IsStandardSeries(ctx context.Context, matchID string) bool {
	if !matchid.IsSeriesMatch(matchID) {
		return false
	}
	ser, ok := s.Lookup(ctx, matchid.BaseMatchID(matchID))
	return ok && ser.IsStandard
}

// FormatOf returns the series length of baseID: 1 for a lone game, 3/5/7 for
// a standard series and CollisionFormat when the grouping is unreliable.
// ok is false when no games exist.
func (s *Service) FormatOf(ctx context.Context, baseID string) (int, bool) {
	ser, ok := s.Lookup(ctx, baseID)
	if !ok {
		return 0, false
	}
	return ser.Format, true
}

// SeriesScore tallies wins for blueID and redID across every game of baseID.
func (s *Service) SeriesScore(ctx context.Context, baseID, blueID, redID string) Score {
	ser, ok := s.Lookup(ctx, baseID)
	if !ok {
		return Score{}
	}
	return s.tally(ser, blueID, redID, func(model.SeriesGame) bool { return true })
}

// SeriesScoreUpToGame tallies wins over the games played before
// currentGame, excluding that game's own result.
func (s *Service) SeriesScoreUpToGame(ctx context.Context, baseID string, currentGame int, blueID, redID string) Score {
	ser, ok := s.Lookup(ctx, baseID)
	if !ok {
		return Score{}
	}
	return s.scoreBefore(ser, currentGame, blueID, redID)
}

func (s *Service) scoreBefore(ser Series, currentGame int, blueID, redID string) Score {
	return s.tally(ser, blueID, redID, func(g model.SeriesGame) bool {
		return matchid.GameNumber(g.ID) < currentGame
	})
}

func (s *Service) tally(ser Series, blueID, redID string, include func(model.SeriesGame) bool) Score {
	var score Score
	for _, g := range ser.Scorable() {
		if !include(g) {
			continue
		}
		winner := g.Winner()
		switch {
		case winner == "":
		case blueID != "" && winner == blueID:
			score.Blue++
		case redID != "" && winner == redID:
			score.Red++
		default:
			s.logger.Warn("Series game winner matches neither team",
				"base_id", ser.BaseID, "match_id", g.ID, "winner", winner,
				"team_blue_id", blueID, "team_red_id", redID)
		}
	}
	return score
}
