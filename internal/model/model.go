// Package model holds the persisted row shapes read by the series and
// timeline packages.
package model

import "fmt"

// Checkpoints are the fixed in-game minute marks snapshot stats exist for.
var Checkpoints = []int{10, 15, 20, 25}

// SeriesGame is one persisted match record.
type SeriesGame struct {
	ID           string  `json:"id"`
	TeamBlueID   string  `json:"team_blue_id"`
	TeamRedID    string  `json:"team_red_id"`
	WinnerTeamID *string `json:"winner_team_id"`
	Date         string  `json:"date"`
	League       string  `json:"league,omitempty"`
	Patch        string  `json:"patch,omitempty"`
}

// Winner returns the winning team ID, or "" when no result is recorded.
func (g SeriesGame) Winner() string {
	if g.WinnerTeamID == nil {
		return ""
	}
	return *g.WinnerTeamID
}

// Snapshot is one player's state at a checkpoint. Nil fields were not
// recorded for that game.
type Snapshot struct {
	Gold     *float64 `json:"gold"`
	XP       *float64 `json:"xp"`
	CS       *float64 `json:"cs"`
	GoldDiff *float64 `json:"gold_diff"`
	CSDiff   *float64 `json:"cs_diff"`
	Kills    *float64 `json:"kills"`
	Deaths   *float64 `json:"deaths"`
	Assists  *float64 `json:"assists"`
}

// snapshotMetrics is the column stem order shared by SnapshotColumns and
// Snapshot.ScanTargets.
var snapshotMetrics = []string{"gold", "xp", "cs", "gold_diff", "cs_diff", "kills", "deaths", "assists"}

// SnapshotColumns returns the "{metric}_at_{minute}" column names for a
// checkpoint, in ScanTargets order.
func SnapshotColumns(minute int) []string {
	cols := make([]string, len(snapshotMetrics))
	for i, m := range snapshotMetrics {
		cols[i] = fmt.Sprintf("%s_at_%d", m, minute)
	}
	return cols
}

// ScanTargets returns pointers to every field, in SnapshotColumns order.
func (s *Snapshot) ScanTargets() []any {
	return []any{&s.Gold, &s.XP, &s.CS, &s.GoldDiff, &s.CSDiff, &s.Kills, &s.Deaths, &s.Assists}
}

// PlayerMatchStats is one player's statistics row for one game.
type PlayerMatchStats struct {
	ID          int64            `json:"id"`
	MatchID     string           `json:"match_id"`
	PlayerID    string           `json:"player_id"`
	TeamID      string           `json:"team_id"`
	Champion    string           `json:"champion"`
	Role        string           `json:"role"`
	Kills       int              `json:"kills"`
	Deaths      int              `json:"deaths"`
	Assists     int              `json:"assists"`
	Checkpoints map[int]Snapshot `json:"checkpoints"`
}

// At returns the snapshot for minute, or an empty one.
func (p PlayerMatchStats) At(minute int) Snapshot {
	return p.Checkpoints[minute]
}
