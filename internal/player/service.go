// Package player provides player-scoped lookups: probable pitcher info for a
// game, season and career stat cards, recent game logs, and the betting
// market percentages derived from them.
package player

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/game"
	"github.com/dugout-labs/dugout-data/internal/gather"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
)

// Source is the set of upstream operations the player service depends on.
type Source interface {
	Schedule(ctx context.Context, start, end time.Time, teamID int) ([]mlb.ScheduleGame, error)
	SearchPlayers(ctx context.Context, query string) ([]mlb.PlayerRecord, error)
	PersonWithStats(ctx context.Context, playerID int, season string) (*mlb.PersonStats, error)
	PlayerGroupStats(ctx context.Context, playerID int, group, statType, season string) (mlb.StatLine, error)
}

// Service answers player-scoped queries.
type Service struct {
	source  Source
	fetcher *game.Fetcher
	memo    *cache.Memo
	now     func() time.Time
	logger  *slog.Logger
}

// NewService creates a player Service. now may be nil and defaults to
// time.Now.
func NewService(source Source, fetcher *game.Fetcher, memo *cache.Memo, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, fetcher: fetcher, memo: memo, now: now, logger: logger}
}

// --------------------------------------------------------------------------
// Probable pitcher info
// --------------------------------------------------------------------------

// PitcherInfo is a game's probable pitchers flattened for schedule views.
// Every field falls back to "TBD" when the upstream has not posted it.
type PitcherInfo struct {
	HomePitcherID     interface{} `json:"homePitcherID"`
	HomePitcher       string      `json:"homePitcher"`
	HomePitcherHand   string      `json:"homePitcherHand"`
	HomePitcherWins   string      `json:"homePitcherWins"`
	HomePitcherLosses string      `json:"homePitcherLosses"`
	HomePitcherERA    string      `json:"homePitcherERA"`
	AwayPitcherID     interface{} `json:"awayPitcherID"`
	AwayPitcher       string      `json:"awayPitcher"`
	AwayPitcherHand   string      `json:"awayPitcherHand"`
	AwayPitcherWins   string      `json:"awayPitcherWins"`
	AwayPitcherLosses string      `json:"awayPitcherLosses"`
	AwayPitcherERA    string      `json:"awayPitcherERA"`
}

// unknownPitcherInfo is the all-TBD fallback.
func unknownPitcherInfo() PitcherInfo {
	return PitcherInfo{
		HomePitcherID: mlb.TBD, HomePitcher: mlb.TBD, HomePitcherHand: mlb.TBD,
		HomePitcherWins: mlb.TBD, HomePitcherLosses: mlb.TBD, HomePitcherERA: mlb.TBD,
		AwayPitcherID: mlb.TBD, AwayPitcher: mlb.TBD, AwayPitcherHand: mlb.TBD,
		AwayPitcherWins: mlb.TBD, AwayPitcherLosses: mlb.TBD, AwayPitcherERA: mlb.TBD,
	}
}

// PitcherInfo resolves both probable pitchers for a game, with season
// records. doc may be nil, in which case the game document is fetched
// through the memo table. The result itself is memoized per game.
func (s *Service) PitcherInfo(ctx context.Context, gamePk int, doc *mlb.GameDocument) PitcherInfo {
	key := cache.PitcherKey(gamePk)
	if v, ok := s.memo.Get(key); ok {
		return v.(PitcherInfo)
	}

	if doc == nil {
		var err error
		doc, err = s.fetcher.FetchOne(ctx, gamePk)
		if err != nil {
			s.logger.Warn("pitcher info unavailable", "game_pk", gamePk, "error", err)
			return unknownPitcherInfo()
		}
	}

	info := unknownPitcherInfo()
	if ref := doc.GameData.ProbablePitchers.Home; ref != nil && ref.ID != 0 {
		wins, losses, era := s.pitcherSeasonLine(ctx, ref.ID)
		info.HomePitcherID = ref.ID
		info.HomePitcher = ref.FullName
		info.HomePitcherHand = game.PitcherHand(doc, ref.ID)
		info.HomePitcherWins, info.HomePitcherLosses, info.HomePitcherERA = wins, losses, era
	}
	if ref := doc.GameData.ProbablePitchers.Away; ref != nil && ref.ID != 0 {
		wins, losses, era := s.pitcherSeasonLine(ctx, ref.ID)
		info.AwayPitcherID = ref.ID
		info.AwayPitcher = ref.FullName
		info.AwayPitcherHand = game.PitcherHand(doc, ref.ID)
		info.AwayPitcherWins, info.AwayPitcherLosses, info.AwayPitcherERA = wins, losses, era
	}

	s.memo.Set(key, info)
	return info
}

// ProcessedGame is one schedule entry with the probable-pitcher fields
// merged in, the shape every schedule endpoint serves.
type ProcessedGame struct {
	mlb.ScheduleGame
	PitcherInfo
}

// ProcessGames attaches pitcher info to every schedule entry. The per-game
// lookups fan out concurrently; each one degrades to all-TBD on its own.
func (s *Service) ProcessGames(ctx context.Context, games []mlb.ScheduleGame) []ProcessedGame {
	tasks := make([]gather.Task[PitcherInfo], len(games))
	for i, g := range games {
		g := g
		tasks[i] = func(ctx context.Context) (PitcherInfo, error) {
			return s.PitcherInfo(ctx, g.GamePk, nil), nil
		}
	}

	processed := make([]ProcessedGame, len(games))
	for i, res := range gather.All(ctx, tasks) {
		processed[i] = ProcessedGame{ScheduleGame: games[i], PitcherInfo: res.Value}
	}
	return processed
}

// pitcherSeasonLine returns a pitcher's season wins, losses, and ERA as
// display strings, "TBD" on any failure.
func (s *Service) pitcherSeasonLine(ctx context.Context, pitcherID int) (wins, losses, era string) {
	stat, err := s.source.PlayerGroupStats(ctx, pitcherID, "pitching", "season", "")
	if err != nil || stat == nil {
		if err != nil {
			s.logger.Warn("pitcher season stats unavailable", "pitcher_id", pitcherID, "error", err)
		}
		return mlb.TBD, mlb.TBD, mlb.TBD
	}
	return stat.Str("wins", mlb.TBD), stat.Str("losses", mlb.TBD), stat.Str("era", mlb.TBD)
}

// --------------------------------------------------------------------------
// Search and stat cards
// --------------------------------------------------------------------------

// SearchResult is one player search hit.
type SearchResult struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CurrentTeam string `json:"current_team"`
	ImageURL    string `json:"image_url"`
	Position    string `json:"position"`
}

// Search looks players up by name. Upstream failures degrade to an empty
// list.
func (s *Service) Search(ctx context.Context, name string) []SearchResult {
	players, err := s.source.SearchPlayers(ctx, name)
	if err != nil {
		s.logger.Warn("player search failed", "query", name, "error", err)
		return []SearchResult{}
	}

	results := make([]SearchResult, 0, len(players))
	for _, p := range players {
		results = append(results, SearchResult{
			ID:          p.ID,
			FullName:    p.FullName,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			CurrentTeam: mlb.TeamName(p.CurrentTeam.ID, "Not Available"),
			ImageURL:    headshotURL(p.ID),
			Position:    nonEmpty(p.PrimaryPosition.Abbreviation, "N/A"),
		})
	}
	return results
}

// SeasonStats is a player's stat card for one season.
type SeasonStats struct {
	PlayerInfo    *PlayerInfo `json:"player_info,omitempty"`
	Season        string      `json:"season,omitempty"`
	SeasonStats   StatCard    `json:"season_stats,omitempty"`
	CareerStats   StatCard    `json:"career_stats,omitempty"`
	HittingStats  *RoleStats  `json:"hitting_stats,omitempty"`
	PitchingStats *RoleStats  `json:"pitching_stats,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// PlayerInfo is the identity block of a stat card.
type PlayerInfo struct {
	ID          int               `json:"id"`
	FullName    string            `json:"full_name"`
	CurrentTeam string            `json:"current_team"`
	Position    string            `json:"position"`
	BatSide     string            `json:"bat_side,omitempty"`
	ThrowHand   string            `json:"throw_hand,omitempty"`
	BirthDate   string            `json:"birth_date,omitempty"`
	Age         int               `json:"age,omitempty"`
	Images      map[string]string `json:"images,omitempty"`
}

// StatCard is one formatted stat block, every value a display string.
type StatCard map[string]string

// RoleStats pairs season and career cards for one role of a two-way player.
type RoleStats struct {
	Season StatCard `json:"season"`
	Career StatCard `json:"career"`
}

// Stats builds a player's stat card for a season: season plus career blocks,
// split per role for two-way players.
func (s *Service) Stats(ctx context.Context, playerID int, season string) SeasonStats {
	person, err := s.source.PersonWithStats(ctx, playerID, season)
	if err != nil {
		return SeasonStats{Error: fmt.Sprintf("error fetching player stats: %v", err)}
	}
	if person == nil {
		return SeasonStats{Error: fmt.Sprintf("could not look up player ID %d", playerID)}
	}

	position := nonEmpty(person.PrimaryPosition.Abbreviation, "N/A")
	isPitcher := position == "P"
	isTwoWay := position == "TWP"

	info := &PlayerInfo{
		ID:          person.ID,
		FullName:    person.FullName,
		CurrentTeam: mlb.TeamName(person.CurrentTeam.ID, "Not Available"),
		Position:    position,
		BatSide:     nonEmpty(person.BatSide.Code, "N/A"),
		ThrowHand:   nonEmpty(person.PitchHand.Code, "N/A"),
		BirthDate:   person.BirthDate,
		Age:         person.CurrentAge,
		Images: map[string]string{
			"headshot": headshotURL(person.ID),
			"action":   actionURL(person.ID),
		},
	}

	hittingSeason := person.GroupSplit("hitting")
	pitchingSeason := person.GroupSplit("pitching")

	hittingCareer := s.careerStats(ctx, playerID, "hitting")
	var pitchingCareer mlb.StatLine
	if isPitcher || isTwoWay {
		pitchingCareer = s.careerStats(ctx, playerID, "pitching")
	}

	card := SeasonStats{PlayerInfo: info, Season: season}
	if isTwoWay {
		card.HittingStats = &RoleStats{
			Season: formatStatCard(hittingSeason, false),
			Career: formatStatCard(hittingCareer, false),
		}
		card.PitchingStats = &RoleStats{
			Season: formatStatCard(pitchingSeason, true),
			Career: formatStatCard(pitchingCareer, true),
		}
		return card
	}

	if isPitcher {
		card.SeasonStats = formatStatCard(pitchingSeason, true)
		card.CareerStats = formatStatCard(pitchingCareer, true)
	} else {
		card.SeasonStats = formatStatCard(hittingSeason, false)
		card.CareerStats = formatStatCard(hittingCareer, false)
	}
	return card
}

func (s *Service) careerStats(ctx context.Context, playerID int, group string) mlb.StatLine {
	stat, err := s.source.PlayerGroupStats(ctx, playerID, group, "career", "")
	if err != nil {
		s.logger.Warn("career stats unavailable", "player_id", playerID, "group", group, "error", err)
		return nil
	}
	return stat
}

// SeasonERA extracts the season ERA from a stat card, "N/A" when absent.
func (c SeasonStats) SeasonERA() string {
	if c.Error != "" {
		return "N/A"
	}
	if c.PitchingStats != nil {
		if era, ok := c.PitchingStats.Season["era"]; ok {
			return era
		}
	}
	if era, ok := c.SeasonStats["era"]; ok {
		return era
	}
	return "N/A"
}

// formatStatCard renders a raw stat blob as display strings for one role.
func formatStatCard(stats mlb.StatLine, isPitcher bool) StatCard {
	if stats == nil {
		return StatCard{}
	}
	if isPitcher {
		return StatCard{
			"era":             stats.Str("era", "N/A"),
			"games":           stats.Str("gamesPlayed", "N/A"),
			"games_started":   stats.Str("gamesStarted", "N/A"),
			"innings_pitched": stats.Str("inningsPitched", "N/A"),
			"wins":            stats.Str("wins", "N/A"),
			"losses":          stats.Str("losses", "N/A"),
			"saves":           stats.Str("saves", "N/A"),
			"strikeouts":      stats.Str("strikeOuts", "N/A"),
			"earned_runs":     stats.Str("earnedRuns", "N/A"),
			"whip":            stats.Str("whip", "N/A"),
			"walks":           stats.Str("baseOnBalls", "N/A"),
		}
	}
	return StatCard{
		"avg":          stats.Str("avg", "N/A"),
		"games":        stats.Str("gamesPlayed", "N/A"),
		"at_bats":      stats.Str("atBats", "N/A"),
		"runs":         stats.Str("runs", "N/A"),
		"hits":         stats.Str("hits", "N/A"),
		"home_runs":    stats.Str("homeRuns", "N/A"),
		"rbi":          stats.Str("rbi", "N/A"),
		"stolen_bases": stats.Str("stolenBases", "N/A"),
		"obp":          stats.Str("obp", "N/A"),
		"slg":          stats.Str("slg", "N/A"),
		"ops":          stats.Str("ops", "N/A"),
	}
}

// --------------------------------------------------------------------------
// Recent game logs
// --------------------------------------------------------------------------

// RecentStats is a player's last-N-games log.
type RecentStats struct {
	PlayerID    int        `json:"player_id,omitempty"`
	PlayerName  string     `json:"player_name,omitempty"`
	Recent      []GameLine `json:"recent_stats"`
	GamesFound  int        `json:"games_found"`
	BettingData *Betting   `json:"betting_stats,omitempty"`
	PlayerType  string     `json:"player_type,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Recent collects a player's stat lines from their team's last completed
// games, searching backward in a doubling window until numGames lines are
// found or the window reaches 180 days.
func (s *Service) Recent(ctx context.Context, playerID, numGames int) RecentStats {
	person, err := s.source.PersonWithStats(ctx, playerID, fmt.Sprintf("%d", s.now().Year()))
	if err != nil || person == nil {
		return RecentStats{Error: fmt.Sprintf("could not look up player ID %d", playerID), Recent: []GameLine{}}
	}
	teamID := person.CurrentTeam.ID
	if teamID == 0 {
		return RecentStats{Error: "team ID not found for player", Recent: []GameLine{}}
	}
	isPitcher := person.PrimaryPosition.Abbreviation == "P"

	var lines []GameLine
	seenDates := make(map[string]bool)
	endDate := s.now()

	for daysToSearch := 30; len(lines) < numGames && daysToSearch <= 180; daysToSearch *= 2 {
		startDate := endDate.AddDate(0, 0, -daysToSearch)
		games, err := s.source.Schedule(ctx, startDate, endDate, teamID)
		if err != nil {
			s.logger.Warn("recent stats schedule fetch failed", "team_id", teamID, "error", err)
			continue
		}

		var completed []mlb.ScheduleGame
		for _, g := range games {
			if g.Status == "Final" {
				completed = append(completed, g)
			}
		}
		sort.SliceStable(completed, func(i, j int) bool {
			return completed[i].GameDatetime > completed[j].GameDatetime
		})

		docs := s.fetcher.FetchBatch(ctx, gamePks(completed))
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].GameData.Datetime.DateTime > docs[j].GameData.Datetime.DateTime
		})

		for _, doc := range docs {
			if len(lines) >= numGames {
				break
			}
			line, ok := extractGameLine(doc, playerID, teamID, isPitcher)
			if !ok {
				continue
			}
			dateOnly := strings.SplitN(line.GameDate, "T", 2)[0]
			if seenDates[dateOnly] {
				continue
			}
			seenDates[dateOnly] = true
			lines = append(lines, line)
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].GameDate > lines[j].GameDate
	})
	if len(lines) > numGames {
		lines = lines[:numGames]
	}
	if lines == nil {
		lines = []GameLine{}
	}

	return RecentStats{
		PlayerID:   playerID,
		PlayerName: person.FullName,
		Recent:     lines,
		GamesFound: len(lines),
	}
}

// extractGameLine pulls one player's line out of a game document's boxscore.
// ok is false when the player did not appear (or did not bat/pitch).
func extractGameLine(doc *mlb.GameDocument, playerID, teamID int, isPitcher bool) (GameLine, bool) {
	home := doc.LiveData.Boxscore.Teams.Home
	away := doc.LiveData.Boxscore.Teams.Away

	key := fmt.Sprintf("ID%d", playerID)
	entry, ok := home.Players[key]
	if !ok {
		entry, ok = away.Players[key]
	}
	if !ok {
		return GameLine{}, false
	}

	playerIsHome := home.Team.ID == teamID
	opponent := home
	if playerIsHome {
		opponent = away
	}

	line := GameLine{
		GamePk:       doc.GameData.Game.Pk,
		GameDate:     doc.GameData.Datetime.DateTime,
		OpponentTeam: mlb.TeamName(opponent.Team.ID, "Unknown"),
		pitching:     isPitcher,
	}

	if isPitcher {
		stat := entry.Stats.Pitching
		ip := stat.Str("inningsPitched", "")
		if ip == "" || ip == "0.0" {
			return GameLine{}, false
		}
		line.InningsPitched = ip
		line.HitsAllowed = stat.Int("hits")
		line.HomeRunsAllowed = stat.Int("homeRuns")
		line.WalksAllowed = stat.Int("baseOnBalls")
		line.Strikeouts = stat.Int("strikeOuts")
		line.RunsAllowed = stat.Int("runs")
		return line, true
	}

	stat := entry.Stats.Batting
	if stat.Int("atBats") == 0 && stat.Int("plateAppearances") == 0 {
		return GameLine{}, false
	}
	line.Hits = stat.Int("hits")
	line.Runs = stat.Int("runs")
	line.RBIs = stat.Int("rbi")
	line.HomeRuns = stat.Int("homeRuns")
	line.Walks = stat.Int("baseOnBalls")
	line.AtBats = stat.Int("atBats")
	line.Strikeouts = stat.Int("strikeOuts")
	if line.AtBats > 0 {
		line.Avg = round3(float64(line.Hits) / float64(line.AtBats))
	}
	line.OpponentPitcher = opposingPitcherName(doc, playerIsHome)
	return line, true
}

func opposingPitcherName(doc *mlb.GameDocument, playerIsHome bool) string {
	ref := doc.GameData.ProbablePitchers.Home
	if playerIsHome {
		ref = doc.GameData.ProbablePitchers.Away
	}
	if ref == nil || ref.FullName == "" {
		return "Unknown"
	}
	return ref.FullName
}

func gamePks(games []mlb.ScheduleGame) []int {
	ids := make([]int, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.GamePk)
	}
	return ids
}

func headshotURL(playerID int) string {
	return fmt.Sprintf("https://img.mlbstatic.com/mlb-photos/image/upload/d_people:generic:headshot:67:current.png/w_213,q_auto:best/v1/people/%d/headshot/67/current", playerID)
}

func actionURL(playerID int) string {
	return fmt.Sprintf("https://img.mlbstatic.com/mlb-photos/image/upload/d_people:generic:action:hero:current.png/w_2208,q_auto:good/v1/people/%d/action/hero/current", playerID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
