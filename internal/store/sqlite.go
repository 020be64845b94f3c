package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/albapepper/lolstats/internal/matchid"
	"github.com/albapepper/lolstats/internal/model"
)

// SQLite is a file-backed (or in-memory) store with the production schema.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A :memory: database exists per connection.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *SQLite) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is reachable.
func (db *SQLite) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// SeriesGames returns every game whose ID starts with "{baseID}_". The prefix
// is compared with substr so underscores in baseID stay literal.
func (db *SQLite) SeriesGames(ctx context.Context, baseID string) ([]model.SeriesGame, error) {
	prefix := baseID + matchid.Separator
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+gameColumns+` FROM `+MatchesTable+`
		WHERE substr(id, 1, length(?)) = ?
		ORDER BY id`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("query series games %q: %w", baseID, err)
	}
	defer rows.Close()

	var out []model.SeriesGame
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan series game: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// PlayerRows returns every stats row recorded for playerID.
func (db *SQLite) PlayerRows(ctx context.Context, playerID string) ([]model.PlayerMatchStats, error) {
	return db.statRows(ctx, "player_id", playerID)
}

// TeamRows returns every player stats row recorded for teamID.
func (db *SQLite) TeamRows(ctx context.Context, teamID string) ([]model.PlayerMatchStats, error) {
	return db.statRows(ctx, "team_id", teamID)
}

func (db *SQLite) statRows(ctx context.Context, column, id string) ([]model.PlayerMatchStats, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+statColumns()+" FROM "+PlayerMatchStatsTable+
			" WHERE "+column+" = ? ORDER BY match_id, id", id)
	if err != nil {
		return nil, fmt.Errorf("query stats by %s %q: %w", column, id, err)
	}
	defer rows.Close()

	var out []model.PlayerMatchStats
	for rows.Next() {
		p, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player_match_stats: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InsertMatch inserts or replaces a match record.
func (db *SQLite) InsertMatch(ctx context.Context, g model.SeriesGame) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO `+MatchesTable+`(`+gameColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.TeamBlueID, g.TeamRedID, g.WinnerTeamID, g.Date, g.League, g.Patch,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", g.ID, err)
	}
	return nil
}

// InsertPlayerMatchStats bulk-inserts stats rows in a transaction.
func (db *SQLite) InsertPlayerMatchStats(ctx context.Context, stats []model.PlayerMatchStats) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertStatsSQL())
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stats {
		if _, err := stmt.ExecContext(ctx, statsArgs(s)...); err != nil {
			return fmt.Errorf("insert player_match_stats for %s/%s: %w", s.MatchID, s.PlayerID, err)
		}
	}
	return tx.Commit()
}
