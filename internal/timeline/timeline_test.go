package timeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/albapepper/lolstats/internal/cache"
	"github.com/albapepper/lolstats/internal/model"
)

func f(v float64) *float64 { return &v }

type stubRowSource struct {
	player map[string][]model.PlayerMatchStats
	team   map[string][]model.PlayerMatchStats
	err    error
	calls  int
}

func (s *stubRowSource) PlayerRows(ctx context.Context, playerID string) ([]model.PlayerMatchStats, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.player[playerID], nil
}

func (s *stubRowSource) TeamRows(ctx context.Context, teamID string) ([]model.PlayerMatchStats, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.team[teamID], nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rowAt(minute int, s model.Snapshot) model.PlayerMatchStats {
	return model.PlayerMatchStats{Checkpoints: map[int]model.Snapshot{minute: s}}
}

func TestCalculateAverage(t *testing.T) {
	if got := CalculateAverage([]any{}, 7); got != 7 {
		t.Errorf("empty: got %v, want 7", got)
	}
	if got := CalculateAverage([]any{nil, nil, 5, "3"}, 0); got != 4 {
		t.Errorf("mixed: got %v, want 4", got)
	}
	if got := CalculateAverage([]any{"abc", math.NaN(), struct{}{}}, 1); got != 1 {
		t.Errorf("non-numeric only: got %v, want default 1", got)
	}
	var nilPtr *float64
	if got := CalculateAverage([]*float64{nilPtr, f(2), f(4)}, 0); got != 3 {
		t.Errorf("pointers: got %v, want 3", got)
	}
	if got := CalculateAverage([]int{1, 2}, 0); got != 1.5 {
		t.Errorf("ints: got %v, want 1.5", got)
	}
}

func TestSparseGoldAverage(t *testing.T) {
	rows := []model.PlayerMatchStats{
		rowAt(10, model.Snapshot{Gold: f(3000)}),
		rowAt(10, model.Snapshot{Gold: nil}),
		rowAt(10, model.Snapshot{Gold: f(3400)}),
	}
	got := Calculate(rows)["10"]
	if got.AvgGold != 3200 {
		t.Errorf("AvgGold = %v, want 3200", got.AvgGold)
	}
}

func TestCalculateDefaultsAndRounding(t *testing.T) {
	rows := []model.PlayerMatchStats{
		rowAt(15, model.Snapshot{
			Gold: f(5000.4), XP: f(6000.6), CS: f(120), GoldDiff: f(-250.5), CSDiff: f(3),
			Kills: f(1), Deaths: f(0), Assists: f(2),
		}),
		rowAt(15, model.Snapshot{Kills: f(2), Deaths: f(1)}),
		rowAt(15, model.Snapshot{Kills: f(2)}),
	}
	out := Calculate(rows)

	if len(out) != len(model.Checkpoints) {
		t.Fatalf("expected %d checkpoints, got %d", len(model.Checkpoints), len(out))
	}
	for _, key := range []string{"10", "15", "20", "25"} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing checkpoint %q", key)
		}
	}

	p := out["15"]
	if p.AvgGold != 5000 || p.AvgXP != 6001 || p.AvgCS != 120 || p.AvgCSDiff != 3 {
		t.Errorf("resource averages wrong: %+v", p)
	}
	if p.AvgGoldDiff != -250 {
		t.Errorf("AvgGoldDiff = %v, want -250 (half up)", p.AvgGoldDiff)
	}
	if p.AvgKills != 1.7 {
		t.Errorf("AvgKills = %v, want 1.7", p.AvgKills)
	}
	if p.AvgDeaths != 0.5 {
		t.Errorf("AvgDeaths = %v, want 0.5", p.AvgDeaths)
	}
	if p.AvgAssists != 2 {
		t.Errorf("AvgAssists = %v, want 2", p.AvgAssists)
	}

	empty := out["25"]
	if empty.AvgGold != 0 || empty.AvgGoldDiff != 0 {
		t.Errorf("resource defaults should be 0, got %+v", empty)
	}
	if empty.AvgKills != 1 || empty.AvgDeaths != 1 || empty.AvgAssists != 1 {
		t.Errorf("skirmish defaults should be 1, got %+v", empty)
	}
}

func TestTeamTimelineStatsNoRows(t *testing.T) {
	agg := NewAggregator(&stubRowSource{}, cache.NewRows[model.PlayerMatchStats](true), quietLogger())
	if out, ok := agg.TeamTimelineStats(context.Background(), "T1"); ok || out != nil {
		t.Errorf("expected nil, false; got %v, %v", out, ok)
	}
}

func TestPlayerTimelineStatsCached(t *testing.T) {
	src := &stubRowSource{player: map[string][]model.PlayerMatchStats{
		"faker": {rowAt(10, model.Snapshot{Gold: f(3500)})},
	}}
	rows := cache.NewRows[model.PlayerMatchStats](true)
	agg := NewAggregator(src, rows, quietLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		out, ok := agg.PlayerTimelineStats(ctx, "faker")
		if !ok {
			t.Fatal("expected stats")
		}
		if out["10"].AvgGold != 3500 {
			t.Errorf("AvgGold = %v", out["10"].AvgGold)
		}
	}
	if src.calls != 1 {
		t.Errorf("expected 1 fetch, got %d", src.calls)
	}

	agg.ClearCache()
	agg.PlayerTimelineStats(ctx, "faker")
	if src.calls != 2 {
		t.Errorf("expected refetch after ClearCache, got %d", src.calls)
	}
}

func TestTeamAndPlayerKeysDoNotCollide(t *testing.T) {
	src := &stubRowSource{
		player: map[string][]model.PlayerMatchStats{"x": {rowAt(10, model.Snapshot{Gold: f(1)})}},
		team:   map[string][]model.PlayerMatchStats{"x": {rowAt(10, model.Snapshot{Gold: f(2)})}},
	}
	agg := NewAggregator(src, cache.NewRows[model.PlayerMatchStats](true), quietLogger())
	ctx := context.Background()

	p, _ := agg.PlayerTimelineStats(ctx, "x")
	tm, _ := agg.TeamTimelineStats(ctx, "x")
	if p["10"].AvgGold != 1 || tm["10"].AvgGold != 2 {
		t.Errorf("player/team results mixed up: %v %v", p["10"].AvgGold, tm["10"].AvgGold)
	}
}

func TestFetchFailure(t *testing.T) {
	agg := NewAggregator(&stubRowSource{err: errors.New("timeout")}, nil, quietLogger())
	if out, ok := agg.PlayerTimelineStats(context.Background(), "p"); ok || out != nil {
		t.Errorf("expected nil, false on failure")
	}
}
