// Package timeline averages per-player snapshot statistics at the fixed
// in-game checkpoints.
package timeline

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/albapepper/lolstats/internal/cache"
	"github.com/albapepper/lolstats/internal/model"
)

const (
	// resourceDefault is reported for gold, XP, CS and their diffs when no
	// row has data.
	resourceDefault = 0
	// skirmishDefault is reported for kills, deaths and assists when no row
	// has data.
	skirmishDefault = 1
)

// RowSource fetches player match statistic rows.
type RowSource interface {
	PlayerRows(ctx context.Context, playerID string) ([]model.PlayerMatchStats, error)
	TeamRows(ctx context.Context, teamID string) ([]model.PlayerMatchStats, error)
}

// StatPoint holds the averages at one checkpoint. Each metric is averaged
// over the rows that recorded it, so metrics may cover different row counts.
type StatPoint struct {
	AvgGold     float64 `json:"avg_gold"`
	AvgXP       float64 `json:"avg_xp"`
	AvgCS       float64 `json:"avg_cs"`
	AvgGoldDiff float64 `json:"avg_gold_diff"`
	AvgCSDiff   float64 `json:"avg_cs_diff"`
	AvgKills    float64 `json:"avg_kills"`
	AvgDeaths   float64 `json:"avg_deaths"`
	AvgAssists  float64 `json:"avg_assists"`
}

// Calculate builds the checkpoint map, keyed "10", "15", "20", "25".
func Calculate(rows []model.PlayerMatchStats) map[string]StatPoint {
	out := make(map[string]StatPoint, len(model.Checkpoints))
	for _, minute := range model.Checkpoints {
		out[strconv.Itoa(minute)] = calculateAt(rows, minute)
	}
	return out
}

func calculateAt(rows []model.PlayerMatchStats, minute int) StatPoint {
	var gold, xp, cs, goldDiff, csDiff, kills, deaths, assists []*float64
	for _, r := range rows {
		s := r.At(minute)
		gold = appendSet(gold, s.Gold)
		xp = appendSet(xp, s.XP)
		cs = appendSet(cs, s.CS)
		goldDiff = appendSet(goldDiff, s.GoldDiff)
		csDiff = appendSet(csDiff, s.CSDiff)
		kills = appendSet(kills, s.Kills)
		deaths = appendSet(deaths, s.Deaths)
		assists = appendSet(assists, s.Assists)
	}

	return StatPoint{
		AvgGold:     roundTo(CalculateAverage(gold, resourceDefault), 0),
		AvgXP:       roundTo(CalculateAverage(xp, resourceDefault), 0),
		AvgCS:       roundTo(CalculateAverage(cs, resourceDefault), 0),
		AvgGoldDiff: roundTo(CalculateAverage(goldDiff, resourceDefault), 0),
		AvgCSDiff:   roundTo(CalculateAverage(csDiff, resourceDefault), 0),
		AvgKills:    roundTo(CalculateAverage(kills, skirmishDefault), 1),
		AvgDeaths:   roundTo(CalculateAverage(deaths, skirmishDefault), 1),
		AvgAssists:  roundTo(CalculateAverage(assists, skirmishDefault), 1),
	}
}

func appendSet(dst []*float64, v *float64) []*float64 {
	if v == nil {
		return dst
	}
	return append(dst, v)
}

// Aggregator serves timeline stats for players and teams, memoizing row
// fetches in a shared cache.
type Aggregator struct {
	src    RowSource
	rows   *cache.Rows[model.PlayerMatchStats]
	logger *slog.Logger
}

// NewAggregator creates an aggregator. rows may be nil to disable caching.
func NewAggregator(src RowSource, rows *cache.Rows[model.PlayerMatchStats], logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{src: src, rows: rows, logger: logger}
}

// TeamTimelineStats averages every player row recorded for teamID. ok is
// false when there are no rows or the fetch failed.
func (a *Aggregator) TeamTimelineStats(ctx context.Context, teamID string) (map[string]StatPoint, bool) {
	return a.stats(ctx, cache.TeamKey(teamID), func(ctx context.Context) ([]model.PlayerMatchStats, error) {
		return a.src.TeamRows(ctx, teamID)
	})
}

// PlayerTimelineStats averages the rows of a single player.
func (a *Aggregator) PlayerTimelineStats(ctx context.Context, playerID string) (map[string]StatPoint, bool) {
	return a.stats(ctx, cache.PlayerKey(playerID), func(ctx context.Context) ([]model.PlayerMatchStats, error) {
		return a.src.PlayerRows(ctx, playerID)
	})
}

func (a *Aggregator) stats(ctx context.Context, key string, fetch cache.FetchFunc[model.PlayerMatchStats]) (map[string]StatPoint, bool) {
	rows, err := a.rows.GetWithCache(ctx, key, fetch)
	if err != nil {
		a.logger.Error("Failed to fetch timeline rows", "key", key, "error", err)
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}
	return Calculate(rows), true
}

// ClearCache drops every memoized row set.
func (a *Aggregator) ClearCache() {
	a.rows.Clear()
}
