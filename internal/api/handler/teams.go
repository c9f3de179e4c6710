package handler

import (
	"net/http"

	"github.com/dugout-labs/dugout-data/internal/api/respond"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
)

// GetTeams lists all MLB clubs.
// @Summary List teams
// @Description Returns every MLB team ID and name.
// @Tags teams
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	type team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	teams := make([]team, 0, len(mlb.TeamNames))
	for id, name := range mlb.TeamNames {
		teams = append(teams, team{ID: id, Name: name})
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count": len(teams),
		"teams": teams,
	})
}

// GetTeam returns one club by ID, 404 when unknown.
// @Summary Get team
// @Description Returns a single team by MLB team ID.
// @Tags teams
// @Produce json
// @Param teamID path int true "MLB team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/teams/{teamID} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := intParam(r, "teamID")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TEAM_ID", "Team ID must be an integer")
		return
	}
	name, known := mlb.TeamNames[teamID]
	if !known {
		respond.WriteError(w, http.StatusNotFound, "TEAM_NOT_FOUND", "Unknown team ID")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"id":   teamID,
		"name": name,
	})
}

// GetStandings returns division standings for both leagues.
// @Summary League standings
// @Description Returns division standings, AL and NL by default.
// @Tags teams
// @Produce json
// @Param leagues query string false "Comma-separated league IDs (default 103,104)"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.provider.Standings(r.Context(), r.URL.Query().Get("leagues"))
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not fetch standings", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"records": standings,
	})
}
