// Package mlb provides a typed client for the MLB Stats API.
//
// Every call is rate limited through a shared token bucket so the fan-out in
// the batch fetcher cannot stampede the upstream. Responses are decoded into
// the typed documents in types.go; absent fields stay typed nils rather than
// untyped map lookups.
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public MLB Stats API host.
const DefaultBaseURL = "https://statsapi.mlb.com"

// Client is the shared HTTP client for all MLB Stats API endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an MLB Stats API client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), requestsPerMinute/4+1),
		logger:     logger,
	}
}

// get performs a rate-limited GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("statsapi %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Schedule fetches the flattened schedule for a date range. teamID 0 means
// all teams. Dates are inclusive on both ends.
func (c *Client) Schedule(ctx context.Context, start, end time.Time, teamID int) ([]ScheduleGame, error) {
	params := url.Values{}
	params.Set("sportId", "1")
	params.Set("startDate", start.Format("2006-01-02"))
	params.Set("endDate", end.Format("2006-01-02"))
	if teamID != 0 {
		params.Set("teamId", strconv.Itoa(teamID))
	}

	var raw scheduleResponse
	if err := c.get(ctx, "/api/v1/schedule", params, &raw); err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	var games []ScheduleGame
	for _, date := range raw.Dates {
		for _, g := range date.Games {
			games = append(games, ScheduleGame{
				GamePk:       g.GamePk,
				GameType:     g.GameType,
				Status:       g.Status.DetailedState,
				GameDatetime: g.GameDate,
				HomeID:       g.Teams.Home.Team.ID,
				HomeName:     g.Teams.Home.Team.Name,
				AwayID:       g.Teams.Away.Team.ID,
				AwayName:     g.Teams.Away.Team.Name,
				VenueName:    g.Venue.Name,
				HomeScore:    g.Teams.Home.Score,
				AwayScore:    g.Teams.Away.Score,
			})
		}
	}
	return games, nil
}

// GameFeed fetches the full live-feed document for one game.
func (c *Client) GameFeed(ctx context.Context, gamePk int) (*GameDocument, error) {
	var doc GameDocument
	path := fmt.Sprintf("/api/v1.1/game/%d/feed/live", gamePk)
	if err := c.get(ctx, path, nil, &doc); err != nil {
		return nil, fmt.Errorf("fetch game %d: %w", gamePk, err)
	}
	return &doc, nil
}

// SearchPlayers looks up players by free-text name or ID.
func (c *Client) SearchPlayers(ctx context.Context, query string) ([]PlayerRecord, error) {
	params := url.Values{}
	params.Set("names", query)
	params.Set("sportIds", "1")

	var raw struct {
		People []PlayerRecord `json:"people"`
	}
	if err := c.get(ctx, "/api/v1/people/search", params, &raw); err != nil {
		return nil, fmt.Errorf("lookup player %q: %w", query, err)
	}
	return raw.People, nil
}

// PersonWithStats fetches a person hydrated with season hitting and pitching
// splits for one season.
func (c *Client) PersonWithStats(ctx context.Context, playerID int, season string) (*PersonStats, error) {
	params := url.Values{}
	params.Set("hydrate", fmt.Sprintf("stats(group=[hitting,pitching],type=[season],season=%s),currentTeam", season))

	var raw struct {
		People []PersonStats `json:"people"`
	}
	path := fmt.Sprintf("/api/v1/people/%d", playerID)
	if err := c.get(ctx, path, params, &raw); err != nil {
		return nil, fmt.Errorf("fetch person %d: %w", playerID, err)
	}
	if len(raw.People) == 0 {
		return nil, nil
	}
	return &raw.People[0], nil
}

// PlayerGroupStats fetches one stat blob for a player. group is "hitting" or
// "pitching"; statType is "season" or "career"; season may be empty.
func (c *Client) PlayerGroupStats(ctx context.Context, playerID int, group, statType, season string) (StatLine, error) {
	params := url.Values{}
	params.Set("stats", statType)
	params.Set("group", group)
	if season != "" {
		params.Set("season", season)
	}

	var raw struct {
		Stats []StatGroupBlock `json:"stats"`
	}
	path := fmt.Sprintf("/api/v1/people/%d/stats", playerID)
	if err := c.get(ctx, path, params, &raw); err != nil {
		return nil, fmt.Errorf("fetch %s %s stats for player %d: %w", statType, group, playerID, err)
	}
	for _, block := range raw.Stats {
		if len(block.Splits) > 0 {
			return block.Splits[0].Stat, nil
		}
	}
	return nil, nil
}

// HeadToHead fetches one batter's career line against one pitcher. A matchup
// with no history returns the {PA:0, NoHistory:true} sentinel, not an error.
func (c *Client) HeadToHead(ctx context.Context, batterID, pitcherID int) (*H2HStats, error) {
	params := url.Values{}
	params.Set("stats", "vsPlayerTotal")
	params.Set("group", "hitting")
	params.Set("opposingPlayerId", strconv.Itoa(pitcherID))

	var raw struct {
		Stats []StatGroupBlock `json:"stats"`
	}
	path := fmt.Sprintf("/api/v1/people/%d/stats", batterID)
	if err := c.get(ctx, path, params, &raw); err != nil {
		return nil, fmt.Errorf("fetch h2h %d vs %d: %w", batterID, pitcherID, err)
	}

	for _, block := range raw.Stats {
		if len(block.Splits) == 0 {
			continue
		}
		stat := block.Splits[0].Stat
		return &H2HStats{
			PlateAppearances: stat.Int("plateAppearances"),
			AtBats:           stat.Int("atBats"),
			Hits:             stat.Int("hits"),
			Doubles:          stat.Int("doubles"),
			Triples:          stat.Int("triples"),
			HomeRuns:         stat.Int("homeRuns"),
			Walks:            stat.Int("baseOnBalls"),
			Strikeouts:       stat.Int("strikeOuts"),
			Avg:              stat.Str("avg", "N/A"),
			Ops:              stat.Str("ops", "N/A"),
		}, nil
	}
	return &H2HStats{NoHistory: true}, nil
}

// Standings fetches per-division team records. leagueIDs is a comma list,
// "103,104" for the AL and NL.
func (c *Client) Standings(ctx context.Context, leagueIDs string) ([]DivisionStandings, error) {
	if leagueIDs == "" {
		leagueIDs = "103,104"
	}
	params := url.Values{}
	params.Set("leagueId", leagueIDs)

	var raw standingsResponse
	if err := c.get(ctx, "/api/v1/standings", params, &raw); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}
	return raw.Records, nil
}

// --------------------------------------------------------------------------
// Small helpers
// --------------------------------------------------------------------------

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
