package series

import (
	"context"

	"github.com/albapepper/lolstats/internal/matchid"
	"github.com/albapepper/lolstats/internal/model"
)

// Info is everything a match page shows about the series a game belongs to.
type Info struct {
	MatchID         string `json:"match_id"`
	BaseID          string `json:"base_id"`
	GameNumber      int    `json:"game_number"`
	IsSeries        bool   `json:"is_series"`
	IsStandard      bool   `json:"is_standard"`
	Format          int    `json:"format"`
	GamesPlayed     int    `json:"games_played"`
	TeamBlueID      string `json:"team_blue_id,omitempty"`
	TeamRedID       string `json:"team_red_id,omitempty"`
	Score           Score  `json:"score"`
	ScoreBeforeGame Score  `json:"score_before_game"`
}

// Summary describes matchID's series with a single fetch. Team sides are
// taken from matchID's own record, or the first game when it is missing.
func (s *Service) Summary(ctx context.Context, matchID string) Info {
	info := Info{
		MatchID:    matchID,
		BaseID:     matchid.BaseMatchID(matchID),
		GameNumber: matchid.GameNumber(matchID),
		IsSeries:   matchid.IsSeriesMatch(matchID),
		Format:     1,
	}
	if !info.IsSeries {
		return info
	}

	ser, ok := s.Lookup(ctx, info.BaseID)
	if !ok {
		return info
	}
	info.IsStandard = ser.IsStandard
	info.Format = ser.Format
	info.GamesPlayed = len(ser.Games)

	current := ser.Games[0]
	for _, g := range ser.Games {
		if g.ID == matchID {
			current = g
			break
		}
	}
	info.TeamBlueID = current.TeamBlueID
	info.TeamRedID = current.TeamRedID

	info.Score = s.tally(ser, info.TeamBlueID, info.TeamRedID, func(model.SeriesGame) bool { return true })
	info.ScoreBeforeGame = s.scoreBefore(ser, info.GameNumber, info.TeamBlueID, info.TeamRedID)
	return info
}
