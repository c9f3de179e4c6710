package handler

import (
	"net/http"

	"github.com/dugout-labs/dugout-data/internal/api/respond"
)

// GetTodaySchedule lists today's slate, falling back to tomorrow when the
// day's games have all gone final.
// @Summary Today's schedule
// @Description Returns today's games (or tomorrow's once today is complete), optionally filtered by team.
// @Tags schedule
// @Produce json
// @Param team query int false "Filter to one team ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/schedule/today [get]
func (h *Handler) GetTodaySchedule(w http.ResponseWriter, r *http.Request) {
	teamID := intQuery(r, "team", 0)

	games, err := h.resolver.TodaySlate(r.Context(), teamID, false)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not fetch schedule", err.Error())
		return
	}
	processed := h.players.ProcessGames(r.Context(), games)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count": len(processed),
		"games": processed,
	})
}

// GetTeamSchedule lists a team's recent games over a trailing day window.
// @Summary Team schedule history
// @Description Returns a team's games over the trailing N days.
// @Tags schedule
// @Produce json
// @Param teamID path int true "MLB team ID"
// @Param days query int false "Trailing window in days (default 7, max 60)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/schedule/team/{teamID} [get]
func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	teamID, ok := intParam(r, "teamID")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TEAM_ID", "Team ID must be an integer")
		return
	}
	days := clamp(intQuery(r, "days", 7), 1, 60)

	games, err := h.resolver.TeamHistory(r.Context(), teamID, days)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not fetch schedule", err.Error())
		return
	}
	processed := h.players.ProcessGames(r.Context(), games)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"team_id": teamID,
		"days":    days,
		"count":   len(processed),
		"games":   processed,
	})
}

// GetNextGame returns a team's next not-yet-final game.
// @Summary Next game for a team
// @Description Returns the team's next upcoming game today or tomorrow.
// @Tags schedule
// @Produce json
// @Param teamID path int true "MLB team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/schedule/next/{teamID} [get]
func (h *Handler) GetNextGame(w http.ResponseWriter, r *http.Request) {
	teamID, ok := intParam(r, "teamID")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TEAM_ID", "Team ID must be an integer")
		return
	}

	games, err := h.resolver.TodaySlate(r.Context(), teamID, true)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not fetch schedule", err.Error())
		return
	}
	if len(games) == 0 {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"team_id": teamID,
			"game":    nil,
			"message": "No upcoming game found",
		})
		return
	}
	processed := h.players.ProcessGames(r.Context(), games[:1])
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"team_id": teamID,
		"game":    processed[0],
	})
}
