package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/lolstats/internal/api/respond"
)

// GetSeriesInfo describes the series a match belongs to.
// @Summary Get series info for a match
// @Description Returns base ID, game number, format, full score and the score entering this game. Standalone matches report format 1.
// @Tags series
// @Produce json
// @Param id path string true "Match identifier, e.g. LCK2024_T1_GEN_2"
// @Success 200 {object} series.Info
// @Router /api/v1/series/{id} [get]
func (h *Handler) GetSeriesInfo(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if matchID == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_MATCH_ID", "match ID is required")
		return
	}
	respond.WriteJSONWithETag(w, r, h.series.Summary(r.Context(), matchID))
}

// GetSeriesScore returns the wins per team for a series.
// @Summary Get series score
// @Description Tallies wins for the blue and red team IDs. With before=N only games numbered below N count.
// @Tags series
// @Produce json
// @Param id path string true "Base series identifier"
// @Param blue query string true "Blue side team ID"
// @Param red query string true "Red side team ID"
// @Param before query int false "Only count games before this game number"
// @Success 200 {object} series.Score
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/series/{id}/score [get]
func (h *Handler) GetSeriesScore(w http.ResponseWriter, r *http.Request) {
	baseID := chi.URLParam(r, "id")
	blue := r.URL.Query().Get("blue")
	red := r.URL.Query().Get("red")

	if blue == "" || red == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAMS", "blue and red query parameters are required")
		return
	}

	if b := r.URL.Query().Get("before"); b != "" {
		game, err := strconv.Atoi(b)
		if err != nil || game < 1 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_GAME",
				fmt.Sprintf("before must be a positive integer, got %q", b))
			return
		}
		respond.WriteJSONWithETag(w, r, h.series.SeriesScoreUpToGame(r.Context(), baseID, game, blue, red))
		return
	}

	respond.WriteJSONWithETag(w, r, h.series.SeriesScore(r.Context(), baseID, blue, red))
}

// GetSeriesFormat returns the best-of length of a series.
// @Summary Get series format
// @Description Returns 1 for a lone game, 3/5/7 for standard series, 3 for unreliable groupings and null when no games exist.
// @Tags series
// @Produce json
// @Param id path string true "Base series identifier"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/series/{id}/format [get]
func (h *Handler) GetSeriesFormat(w http.ResponseWriter, r *http.Request) {
	baseID := chi.URLParam(r, "id")
	var format interface{}
	if f, ok := h.series.FormatOf(r.Context(), baseID); ok {
		format = f
	}
	respond.WriteJSONWithETag(w, r, map[string]interface{}{
		"base_id": baseID,
		"format":  format,
	})
}
