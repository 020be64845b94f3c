package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/lolstats/internal/model"
)

// Prepared statement names registered on every pool connection.
const (
	stmtSeriesGames   = "series_games"
	stmtStatsByPlayer = "player_stats_by_player"
	stmtStatsByTeam   = "player_stats_by_team"
)

// Statements returns the prepared statements the Postgres store relies on.
func Statements() map[string]string {
	stats := "SELECT " + statColumns() + " FROM " + PlayerMatchStatsTable
	return map[string]string{
		stmtSeriesGames: "SELECT " + gameColumns + " FROM " + MatchesTable +
			` WHERE id LIKE $1 ESCAPE '\' ORDER BY id COLLATE "C"`,
		stmtStatsByPlayer: stats + " WHERE player_id = $1 ORDER BY match_id, id",
		stmtStatsByTeam:   stats + " WHERE team_id = $1 ORDER BY match_id, id",
	}
}

// Postgres reads rows from the hosted database through a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pool whose connections registered Statements.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// SeriesGames returns every game whose ID starts with "{baseID}_".
func (p *Postgres) SeriesGames(ctx context.Context, baseID string) ([]model.SeriesGame, error) {
	rows, err := p.pool.Query(ctx, stmtSeriesGames, seriesPattern(baseID))
	if err != nil {
		return nil, fmt.Errorf("query series games %q: %w", baseID, err)
	}
	games, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SeriesGame, error) {
		return scanGame(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan series games %q: %w", baseID, err)
	}
	return games, nil
}

// PlayerRows returns every stats row recorded for playerID.
func (p *Postgres) PlayerRows(ctx context.Context, playerID string) ([]model.PlayerMatchStats, error) {
	return p.statRows(ctx, stmtStatsByPlayer, playerID)
}

// TeamRows returns every player stats row recorded for teamID.
func (p *Postgres) TeamRows(ctx context.Context, teamID string) ([]model.PlayerMatchStats, error) {
	return p.statRows(ctx, stmtStatsByTeam, teamID)
}

func (p *Postgres) statRows(ctx context.Context, stmt, id string) ([]model.PlayerMatchStats, error) {
	rows, err := p.pool.Query(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", stmt, id, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PlayerMatchStats, error) {
		return scanStats(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s %q: %w", stmt, id, err)
	}
	return out, nil
}

// Ping verifies the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	var n int
	return p.pool.QueryRow(ctx, "health_check").Scan(&n)
}

// ApplyPostgresSchema creates the tables and indexes when missing. It takes
// a bare connection because pool connections prepare statements against
// these tables on connect.
func ApplyPostgresSchema(ctx context.Context, conn *pgx.Conn) error {
	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
