package series

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/albapepper/lolstats/internal/matchid"
	"github.com/albapepper/lolstats/internal/model"
)

type stubGameSource struct {
	mu    sync.Mutex
	games []model.SeriesGame
	err   error
	calls int
}

func (s *stubGameSource) SeriesGames(ctx context.Context, baseID string) ([]model.SeriesGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []model.SeriesGame
	for _, g := range s.games {
		if strings.HasPrefix(g.ID, baseID+matchid.Separator) {
			out = append(out, g)
		}
	}
	return out, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func game(id, blue, red, winner string) model.SeriesGame {
	g := model.SeriesGame{ID: id, TeamBlueID: blue, TeamRedID: red}
	if winner != "" {
		g.WinnerTeamID = &winner
	}
	return g
}

func newTestService(games ...model.SeriesGame) (*Service, *stubGameSource) {
	src := &stubGameSource{games: games}
	return NewService(src, DefaultThresholds(), quietLogger()), src
}

// bestOfThree is match-001: A wins games 1 and 3, B wins game 2.
func bestOfThree() []model.SeriesGame {
	return []model.SeriesGame{
		game("match-001_1", "A", "B", "A"),
		game("match-001_2", "B", "A", "B"),
		game("match-001_3", "A", "B", "A"),
	}
}

func TestSeriesScoreScenario(t *testing.T) {
	svc, _ := newTestService(bestOfThree()...)
	ctx := context.Background()

	got := svc.SeriesScore(ctx, "match-001", "A", "B")
	if got != (Score{Blue: 2, Red: 1}) {
		t.Errorf("SeriesScore = %+v, want {2 1}", got)
	}

	before := svc.SeriesScoreUpToGame(ctx, "match-001", 3, "A", "B")
	if before != (Score{Blue: 1, Red: 1}) {
		t.Errorf("SeriesScoreUpToGame(3) = %+v, want {1 1}", before)
	}

	first := svc.SeriesScoreUpToGame(ctx, "match-001", 1, "A", "B")
	if first != (Score{}) {
		t.Errorf("SeriesScoreUpToGame(1) = %+v, want zero", first)
	}

	if !svc.IsStandardSeries(ctx, "match-001_2") {
		t.Error("expected match-001_2 to be part of a standard series")
	}
	if f, ok := svc.FormatOf(ctx, "match-001"); !ok || f != 3 {
		t.Errorf("FormatOf = %d, %v, want 3, true", f, ok)
	}
}

func TestLoneGameIsBestOfOne(t *testing.T) {
	svc, _ := newTestService(game("match-002_1", "X", "Y", "X"))
	ctx := context.Background()

	if svc.IsStandardSeries(ctx, "match-002_1") {
		t.Error("single game must not be a standard series")
	}
	if f, ok := svc.FormatOf(ctx, "match-002"); !ok || f != 1 {
		t.Errorf("FormatOf = %d, %v, want 1, true", f, ok)
	}
	if got := svc.SeriesScore(ctx, "match-002", "X", "Y"); got != (Score{}) {
		t.Errorf("SeriesScore on Bo1 = %+v, want zero", got)
	}
	if got := svc.SeriesScoreUpToGame(ctx, "match-002", 2, "X", "Y"); got != (Score{}) {
		t.Errorf("SeriesScoreUpToGame on Bo1 = %+v, want zero", got)
	}
}

func TestNoGames(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if f, ok := svc.FormatOf(ctx, "ghost"); ok || f != 0 {
		t.Errorf("FormatOf = %d, %v, want 0, false", f, ok)
	}
	if got := svc.SeriesScore(ctx, "ghost", "A", "B"); got != (Score{}) {
		t.Errorf("SeriesScore = %+v, want zero", got)
	}
	if svc.IsStandardSeries(ctx, "ghost_1") {
		t.Error("expected false with no games")
	}
}

func TestCollisionRejected(t *testing.T) {
	var games []model.SeriesGame
	for i := 1; i <= 9; i++ {
		games = append(games, game(fmt.Sprintf("big_%d", i), "A", "B", "A"))
	}
	svc, _ := newTestService(games...)
	ctx := context.Background()

	if svc.IsStandardSeries(ctx, "big_1") {
		t.Error("more than 7 games must not be a standard series")
	}
	if f, _ := svc.FormatOf(ctx, "big"); f != CollisionFormat {
		t.Errorf("FormatOf = %d, want %d", f, CollisionFormat)
	}
	if got := svc.SeriesScore(ctx, "big", "A", "B"); got != (Score{}) {
		t.Errorf("SeriesScore on collision = %+v, want zero", got)
	}
}

func TestNearestFormat(t *testing.T) {
	cases := map[int]int{2: 3, 3: 3, 4: 5, 5: 5, 6: 7, 7: 7}
	for n, want := range cases {
		var games []model.SeriesGame
		for i := 1; i <= n; i++ {
			games = append(games, game(matchid.Compose("s", i), "A", "B", ""))
		}
		svc, _ := newTestService(games...)
		got, ok := svc.FormatOf(context.Background(), "s")
		if !ok || got != want {
			t.Errorf("%d games: FormatOf = %d, want %d", n, got, want)
		}
	}
}

func TestScoreIgnoresUnknownWinnerAndPending(t *testing.T) {
	svc, _ := newTestService(
		game("m_1", "A", "B", "A"),
		game("m_2", "A", "B", "C"),
		game("m_3", "A", "B", ""),
	)
	got := svc.SeriesScore(context.Background(), "m", "A", "B")
	if got != (Score{Blue: 1}) {
		t.Errorf("SeriesScore = %+v, want {1 0}", got)
	}
	if got.Blue+got.Red > 3 {
		t.Errorf("score exceeds game count")
	}
}

func TestMismatchedTeamIDsScoreZero(t *testing.T) {
	svc, _ := newTestService(bestOfThree()...)
	if got := svc.SeriesScore(context.Background(), "match-001", "X", "Y"); got != (Score{}) {
		t.Errorf("SeriesScore = %+v, want zero", got)
	}
}

func TestFetchFailureDegradesToZero(t *testing.T) {
	src := &stubGameSource{err: errors.New("connection refused")}
	svc := NewService(src, DefaultThresholds(), quietLogger())
	ctx := context.Background()

	if got := svc.SeriesScore(ctx, "match-001", "A", "B"); got != (Score{}) {
		t.Errorf("SeriesScore = %+v, want zero", got)
	}
	if got := svc.SeriesScoreUpToGame(ctx, "match-001", 3, "A", "B"); got != (Score{}) {
		t.Errorf("SeriesScoreUpToGame = %+v, want zero", got)
	}
	if svc.IsStandardSeries(ctx, "match-001_1") {
		t.Error("expected false on fetch failure")
	}
	if _, ok := svc.FormatOf(ctx, "match-001"); ok {
		t.Error("expected ok=false on fetch failure")
	}
}

func TestNonSeriesSkipsQuery(t *testing.T) {
	svc, src := newTestService(bestOfThree()...)
	if svc.IsStandardSeries(context.Background(), "standalone") {
		t.Error("expected false for non-series id")
	}
	if src.calls != 0 {
		t.Errorf("expected no query, got %d", src.calls)
	}
}

func TestSummary(t *testing.T) {
	svc, src := newTestService(bestOfThree()...)
	info := svc.Summary(context.Background(), "match-001_3")

	if !info.IsSeries || !info.IsStandard {
		t.Fatalf("expected standard series, got %+v", info)
	}
	if info.BaseID != "match-001" || info.GameNumber != 3 || info.Format != 3 || info.GamesPlayed != 3 {
		t.Errorf("unexpected identity fields: %+v", info)
	}
	if info.TeamBlueID != "A" || info.TeamRedID != "B" {
		t.Errorf("expected sides from game 3, got blue=%s red=%s", info.TeamBlueID, info.TeamRedID)
	}
	if info.Score != (Score{Blue: 2, Red: 1}) {
		t.Errorf("Score = %+v", info.Score)
	}
	if info.ScoreBeforeGame != (Score{Blue: 1, Red: 1}) {
		t.Errorf("ScoreBeforeGame = %+v", info.ScoreBeforeGame)
	}
	if src.calls != 1 {
		t.Errorf("expected a single fetch, got %d", src.calls)
	}

	solo := svc.Summary(context.Background(), "standalone")
	if solo.IsSeries || solo.Format != 1 || solo.GameNumber != 1 {
		t.Errorf("unexpected standalone summary: %+v", solo)
	}
}

func TestGamesSortedByID(t *testing.T) {
	svc, _ := newTestService(
		game("m_3", "A", "B", "A"),
		game("m_1", "A", "B", "B"),
		game("m_2", "A", "B", "B"),
	)
	ser, ok := svc.Lookup(context.Background(), "m")
	if !ok {
		t.Fatal("expected series")
	}
	for i, g := range ser.Games {
		if want := matchid.Compose("m", i+1); g.ID != want {
			t.Errorf("Games[%d] = %s, want %s", i, g.ID, want)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	src := &stubGameSource{games: []model.SeriesGame{
		game("m_1", "A", "B", "A"),
		game("m_2", "A", "B", "A"),
		game("m_3", "A", "B", "A"),
	}}
	svc := NewService(src, Thresholds{MinGames: 2, MaxGames: 2}, quietLogger())
	if svc.IsStandardSeries(context.Background(), "m_1") {
		t.Error("3 games should exceed a max of 2")
	}
}
