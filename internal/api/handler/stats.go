package handler

import (
	"net/http"

	"github.com/dugout-labs/dugout-data/internal/api/respond"
	"github.com/dugout-labs/dugout-data/internal/game"
)

// GetTeamStats returns a team's betting summary over its last N completed
// games, or over a trailing day span when days= is given.
// @Summary Team betting summary
// @Description Returns NRFI, first-five-innings totals, and F5 win rate for a team's recent games.
// @Tags stats
// @Produce json
// @Param teamID path int true "MLB team ID"
// @Param numGames path int true "Number of completed games to analyze (max 25)"
// @Param days query int false "Analyze a trailing day span instead of last-N games"
// @Success 200 {object} game.TeamSummary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} game.TeamSummary
// @Router /api/v1/stats/team/{teamID}/{numGames} [get]
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	teamID, ok := intParam(r, "teamID")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TEAM_ID", "Team ID must be an integer")
		return
	}
	numGames, ok := intParam(r, "numGames")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_NUM_GAMES", "Number of games must be an integer")
		return
	}
	numGames = clamp(numGames, 1, 25)

	var summary game.TeamSummary
	if days := intQuery(r, "days", 0); days > 0 {
		summary = h.games.SummaryBySpanDays(r.Context(), teamID, clamp(days, 1, 60))
	} else {
		summary = h.games.SummaryByLastGames(r.Context(), teamID, numGames)
	}

	status := http.StatusOK
	if summary.Error != "" {
		status = http.StatusInternalServerError
	}
	respond.WriteJSONObject(w, status, summary)
}

// GetComparison returns the full pregame comparison for one game.
// @Summary Game comparison
// @Description Returns lineups, probable pitchers with head-to-head splits, and both teams' recent summaries.
// @Tags stats
// @Produce json
// @Param gamePk path int true "MLB game primary key"
// @Param games query int false "Lookback games per team (default 10, max 25)"
// @Success 200 {object} comparison.Result
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} comparison.Result
// @Failure 500 {object} comparison.Result
// @Router /api/v1/comparison/{gamePk} [get]
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	gamePk, ok := intParam(r, "gamePk")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GAME_PK", "Game PK must be an integer")
		return
	}
	lookback := clamp(intQuery(r, "games", 10), 1, 25)

	result := h.compare.Compare(r.Context(), gamePk, lookback)
	status := http.StatusOK
	if result.Error != "" {
		if result.NotFound() {
			status = http.StatusNotFound
		} else {
			status = http.StatusInternalServerError
		}
	}
	respond.WriteJSONObject(w, status, result)
}
