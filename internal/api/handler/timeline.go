package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/lolstats/internal/api/respond"
	"github.com/albapepper/lolstats/internal/timeline"
)

// GetTimelineStats returns checkpoint averages for a player or team.
// @Summary Get timeline stats
// @Description Returns averages of gold, XP, CS, diffs and K/D/A at 10, 15, 20 and 25 minutes.
// @Tags timeline
// @Produce json
// @Param entityType path string true "Entity type" Enums(player, team)
// @Param entityID path string true "Entity ID"
// @Success 200 {object} map[string]timeline.StatPoint
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/timeline/{entityType}/{entityID} [get]
func (h *Handler) GetTimelineStats(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	id := chi.URLParam(r, "entityID")

	var (
		stats map[string]timeline.StatPoint
		ok    bool
	)
	switch entityType {
	case "player":
		stats, ok = h.timeline.PlayerTimelineStats(r.Context(), id)
	case "team":
		stats, ok = h.timeline.TeamTimelineStats(r.Context(), id)
	default:
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TYPE", "Entity type must be 'player' or 'team'")
		return
	}

	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("no timeline stats for %s %s", entityType, id))
		return
	}
	respond.WriteJSONWithETag(w, r, stats)
}
