package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dugout-labs/dugout-data/internal/api/respond"
)

// SearchPlayers searches active players by name.
// @Summary Player search
// @Description Searches active MLB players by (partial) name.
// @Tags players
// @Produce json
// @Param name path string true "Player name query"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/player/search/{name} [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_NAME", "Player name is required")
		return
	}

	results := h.players.Search(r.Context(), name)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"players": results,
	})
}

// GetPlayerStats returns a player's season and career stat cards.
// @Summary Player season stats
// @Description Returns season and career stat cards for a player, both roles for two-way players.
// @Tags players
// @Produce json
// @Param playerID path int true "MLB person ID"
// @Param season path string true "Season year, e.g. 2026"
// @Success 200 {object} player.SeasonStats
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} player.SeasonStats
// @Router /api/v1/player/stats/{playerID}/{season} [get]
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	playerID, ok := intParam(r, "playerID")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PLAYER_ID", "Player ID must be an integer")
		return
	}
	season := chi.URLParam(r, "season")

	stats := h.players.Stats(r.Context(), playerID, season)
	status := http.StatusOK
	if stats.Error != "" {
		status = http.StatusInternalServerError
	}
	respond.WriteJSONObject(w, status, stats)
}

// GetPlayerRecentStats returns per-game lines from a player's recent games.
// @Summary Player recent game lines
// @Description Returns batting or pitching lines from the player's last N games.
// @Tags players
// @Produce json
// @Param playerID path int true "MLB person ID"
// @Param numGames path int true "Number of recent games (max 15)"
// @Success 200 {object} player.RecentStats
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} player.RecentStats
// @Router /api/v1/player/recent-stats/{playerID}/{numGames} [get]
func (h *Handler) GetPlayerRecentStats(w http.ResponseWriter, r *http.Request) {
	playerID, ok := intParam(r, "playerID")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PLAYER_ID", "Player ID must be an integer")
		return
	}
	numGames, ok := intParam(r, "numGames")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_NUM_GAMES", "Number of games must be an integer")
		return
	}

	stats := h.players.Recent(r.Context(), playerID, clamp(numGames, 1, 15))
	status := http.StatusOK
	if stats.Error != "" {
		status = http.StatusInternalServerError
	}
	respond.WriteJSONObject(w, status, stats)
}

// GetPlayerBettingStats returns recent lines with over-market hit rates.
// @Summary Player betting markets
// @Description Returns recent game lines plus hit rates for common over markets.
// @Tags players
// @Produce json
// @Param playerID path int true "MLB person ID"
// @Param numGames path int true "Number of recent games (max 15)"
// @Success 200 {object} player.RecentStats
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} player.RecentStats
// @Router /api/v1/player/betting-stats/{playerID}/{numGames} [get]
func (h *Handler) GetPlayerBettingStats(w http.ResponseWriter, r *http.Request) {
	playerID, ok := intParam(r, "playerID")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PLAYER_ID", "Player ID must be an integer")
		return
	}
	numGames, ok := intParam(r, "numGames")
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_NUM_GAMES", "Number of games must be an integer")
		return
	}

	stats := h.players.BettingStats(r.Context(), playerID, clamp(numGames, 1, 15))
	status := http.StatusOK
	if stats.Error != "" {
		status = http.StatusInternalServerError
	}
	respond.WriteJSONObject(w, status, stats)
}
