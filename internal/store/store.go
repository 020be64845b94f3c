// Package store reads match and player statistic rows from the relational
// database. Postgres is the hosted production store; SQLite backs local runs
// and tests. The two schema files define the same tables.
package store

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/albapepper/lolstats/internal/matchid"
	"github.com/albapepper/lolstats/internal/model"
)

var (
	//go:embed schema_postgres.sql
	postgresSchema string

	//go:embed schema_sqlite.sql
	sqliteSchema string
)

// Table names, matching the schema files.
const (
	MatchesTable          = "matches"
	PlayerMatchStatsTable = "player_match_stats"
)

// Store is the row-fetching collaborator consumed by the series and timeline
// packages.
type Store interface {
	SeriesGames(ctx context.Context, baseID string) ([]model.SeriesGame, error)
	PlayerRows(ctx context.Context, playerID string) ([]model.PlayerMatchStats, error)
	TeamRows(ctx context.Context, teamID string) ([]model.PlayerMatchStats, error)
	Ping(ctx context.Context) error
}

// scanner is satisfied by pgx.Rows, pgx.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const gameColumns = "id, team_blue_id, team_red_id, winner_team_id, date, league, patch"

func scanGame(sc scanner) (model.SeriesGame, error) {
	var g model.SeriesGame
	err := sc.Scan(&g.ID, &g.TeamBlueID, &g.TeamRedID, &g.WinnerTeamID, &g.Date, &g.League, &g.Patch)
	return g, err
}

// statColumns lists the player_match_stats columns in scanStats order.
func statColumns() string {
	cols := []string{"id", "match_id", "player_id", "team_id", "champion", "role", "kills", "deaths", "assists"}
	for _, minute := range model.Checkpoints {
		cols = append(cols, model.SnapshotColumns(minute)...)
	}
	return strings.Join(cols, ", ")
}

func scanStats(sc scanner) (model.PlayerMatchStats, error) {
	var p model.PlayerMatchStats
	snaps := make([]model.Snapshot, len(model.Checkpoints))

	dest := []any{&p.ID, &p.MatchID, &p.PlayerID, &p.TeamID, &p.Champion, &p.Role, &p.Kills, &p.Deaths, &p.Assists}
	for i := range snaps {
		dest = append(dest, snaps[i].ScanTargets()...)
	}
	if err := sc.Scan(dest...); err != nil {
		return p, err
	}

	p.Checkpoints = make(map[int]model.Snapshot, len(snaps))
	for i, minute := range model.Checkpoints {
		p.Checkpoints[minute] = snaps[i]
	}
	return p, nil
}

// escapeLike escapes LIKE metacharacters with a backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// seriesPattern matches every "{baseID}_..." identifier literally.
func seriesPattern(baseID string) string {
	return escapeLike(baseID+matchid.Separator) + "%"
}

// insertStatsSQL returns a "?" placeholder insert for every column but id.
func insertStatsSQL() string {
	cols := strings.TrimPrefix(statColumns(), "id, ")
	n := strings.Count(cols, ",") + 1
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		PlayerMatchStatsTable, cols, strings.TrimSuffix(strings.Repeat("?, ", n), ", "))
}

func statsArgs(p model.PlayerMatchStats) []any {
	args := []any{p.MatchID, p.PlayerID, p.TeamID, p.Champion, p.Role, p.Kills, p.Deaths, p.Assists}
	for _, minute := range model.Checkpoints {
		s := p.At(minute)
		args = append(args, s.Gold, s.XP, s.CS, s.GoldDiff, s.CSDiff, s.Kills, s.Deaths, s.Assists)
	}
	return args
}
