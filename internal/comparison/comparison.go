// Package comparison builds the cross-team pregame comparison for one
// contest: identities and records, starting lineups with per-batter
// head-to-head splits against the opposing probable pitcher, and both teams'
// recent-game summaries.
package comparison

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dugout-labs/dugout-data/internal/game"
	"github.com/dugout-labs/dugout-data/internal/gather"
	"github.com/dugout-labs/dugout-data/internal/player"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
	"github.com/dugout-labs/dugout-data/internal/schedule"
)

// Lineup confidence levels.
const (
	LineupConfirmed   = "Confirmed"   // batting order posted for this game
	LineupExpected    = "Expected"    // borrowed from the team's last game
	LineupUnavailable = "Unavailable" // no lineup could be found
)

// H2HSource is the head-to-head operation the orchestrator depends on.
type H2HSource interface {
	HeadToHead(ctx context.Context, batterID, pitcherID int) (*mlb.H2HStats, error)
}

// Service orchestrates game comparisons.
type Service struct {
	resolver *schedule.Resolver
	stats    *game.Service
	players  *player.Service
	h2h      H2HSource
	now      func() int // current year, injectable for tests
	logger   *slog.Logger
}

// NewService creates a comparison Service. currentYear may be nil.
func NewService(resolver *schedule.Resolver, stats *game.Service, players *player.Service, h2h H2HSource, currentYear func() int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resolver: resolver,
		stats:    stats,
		players:  players,
		h2h:      h2h,
		now:      currentYear,
		logger:   logger,
	}
}

// Result is the complete comparison response. Either GameInfo and
// TeamComparison are populated, or Error is — never both.
type Result struct {
	GameInfo       *GameInfo       `json:"game_info,omitempty"`
	TeamComparison *TeamComparison `json:"team_comparison,omitempty"`
	Error          string          `json:"error,omitempty"`

	notFound bool
}

// NotFound reports whether the error means the game itself could not be
// resolved, as opposed to an internal failure.
func (r Result) NotFound() bool {
	return r.notFound
}

// GameInfo is the contest header block of a comparison.
type GameInfo struct {
	GamePk       int         `json:"game_id"`
	GameDatetime string      `json:"game_datetime"`
	Status       string      `json:"status"`
	Venue        string      `json:"venue"`
	AwayTeam     TeamSide    `json:"away_team"`
	HomeTeam     TeamSide    `json:"home_team"`
	AwayPitcher  PitcherCard `json:"away_pitcher"`
	HomePitcher  PitcherCard `json:"home_pitcher"`
}

// TeamSide is one team's identity, record, and lineup.
type TeamSide struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Record       string         `json:"record"`
	LineupStatus string         `json:"lineup_status"`
	Lineup       []LineupPlayer `json:"lineup"`
}

// LineupPlayer is one batting-order entry with its head-to-head split.
type LineupPlayer struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Avg      string      `json:"avg"`
	H2H      interface{} `json:"h2h_stats"`
}

// PitcherCard is a probable pitcher with season ERA.
type PitcherCard struct {
	ID        interface{} `json:"id"`
	Name      string      `json:"name"`
	Hand      string      `json:"hand"`
	SeasonERA string      `json:"season_era"`
}

// errValue is the scoped error marker embedded in place of a failed
// sub-piece.
type errValue struct {
	Error string `json:"error"`
}

// noHistoryH2H is the sentinel for a batter with no lookup against the
// opposing pitcher (pitcher TBD).
var noHistoryH2H = map[string]string{"PA": "N/A"}

// Compare builds the comparison for one game. It never returns an error and
// never panics past the boundary: any top-level failure degrades to a Result
// carrying only an error message.
func (s *Service) Compare(ctx context.Context, gamePk, lookbackGames int) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("comparison panicked", "game_pk", gamePk, "panic", r)
			result = Result{Error: fmt.Sprintf("failed to generate comparison for game %d: %v", gamePk, r)}
		}
	}()

	doc, err := s.stats.Fetcher().FetchOne(ctx, gamePk)
	if err != nil {
		return Result{
			Error:    fmt.Sprintf("could not fetch game data for game %d: %v", gamePk, err),
			notFound: true,
		}
	}

	awayInfo := doc.GameData.Teams.Away
	homeInfo := doc.GameData.Teams.Home
	if awayInfo.ID == 0 || homeInfo.ID == 0 {
		return Result{
			Error:    fmt.Sprintf("missing team ID in game data for game %d", gamePk),
			notFound: true,
		}
	}

	pitchers := s.players.PitcherInfo(ctx, gamePk, doc)
	awayPitcherID, awayKnown := pitcherID(pitchers.AwayPitcherID)
	homePitcherID, homeKnown := pitcherID(pitchers.HomePitcherID)

	awayLineup, awayStatus := s.lineupWithFallback(ctx, doc, awayInfo.ID, false)
	homeLineup, homeStatus := s.lineupWithFallback(ctx, doc, homeInfo.ID, true)

	// Fan out everything independent: both summaries, both pitcher season
	// cards, and the two H2H batteries. Branch failures surface as values.
	var (
		wg                       sync.WaitGroup
		awaySummary, homeSummary game.TeamSummary
		awayERA, homeERA         = "N/A", "N/A"
		awayH2H, homeH2H         []gather.Result[*mlb.H2HStats]
	)
	season := fmt.Sprintf("%d", s.currentYear())

	wg.Add(2)
	go func() {
		defer wg.Done()
		awaySummary = s.stats.SummaryByLastGames(ctx, awayInfo.ID, lookbackGames)
	}()
	go func() {
		defer wg.Done()
		homeSummary = s.stats.SummaryByLastGames(ctx, homeInfo.ID, lookbackGames)
	}()

	if awayKnown {
		wg.Add(1)
		go func() {
			defer wg.Done()
			awayERA = s.players.Stats(ctx, awayPitcherID, season).SeasonERA()
		}()
	}
	if homeKnown {
		wg.Add(1)
		go func() {
			defer wg.Done()
			homeERA = s.players.Stats(ctx, homePitcherID, season).SeasonERA()
		}()
	}

	// Away batters face the home pitcher and vice versa. An unknown
	// opposing pitcher short-circuits the whole battery.
	if homeKnown {
		wg.Add(1)
		go func() {
			defer wg.Done()
			awayH2H = s.h2hBattery(ctx, awayLineup, homePitcherID)
		}()
	}
	if awayKnown {
		wg.Add(1)
		go func() {
			defer wg.Done()
			homeH2H = s.h2hBattery(ctx, homeLineup, awayPitcherID)
		}()
	}

	wg.Wait()

	return Result{
		GameInfo: &GameInfo{
			GamePk:       gamePk,
			GameDatetime: doc.GameData.Datetime.Best(),
			Status:       nonEmpty(doc.GameData.Status.AbstractGameState, "Unknown"),
			Venue:        nonEmpty(doc.GameData.Venue.Name, mlb.TBD),
			AwayTeam: TeamSide{
				ID:           awayInfo.ID,
				Name:         mlb.TeamName(awayInfo.ID, awayInfo.Name),
				Record:       fmt.Sprintf("%d-%d", awayInfo.LeagueRecord.Wins, awayInfo.LeagueRecord.Losses),
				LineupStatus: awayStatus,
				Lineup:       attachH2H(awayLineup, awayH2H),
			},
			HomeTeam: TeamSide{
				ID:           homeInfo.ID,
				Name:         mlb.TeamName(homeInfo.ID, homeInfo.Name),
				Record:       fmt.Sprintf("%d-%d", homeInfo.LeagueRecord.Wins, homeInfo.LeagueRecord.Losses),
				LineupStatus: homeStatus,
				Lineup:       attachH2H(homeLineup, homeH2H),
			},
			AwayPitcher: PitcherCard{
				ID:        pitchers.AwayPitcherID,
				Name:      pitchers.AwayPitcher,
				Hand:      pitchers.AwayPitcherHand,
				SeasonERA: awayERA,
			},
			HomePitcher: PitcherCard{
				ID:        pitchers.HomePitcherID,
				Name:      pitchers.HomePitcher,
				Hand:      pitchers.HomePitcherHand,
				SeasonERA: homeERA,
			},
		},
		TeamComparison: &TeamComparison{
			LookbackGames: lookbackGames,
			Away:          awaySummary,
			Home:          homeSummary,
		},
	}
}

// TeamComparison pairs both teams' lookback summaries.
type TeamComparison struct {
	LookbackGames int              `json:"lookback_games"`
	Away          game.TeamSummary `json:"away"`
	Home          game.TeamSummary `json:"home"`
}

// h2hBattery runs the H2H lookups for one lineup concurrently.
func (s *Service) h2hBattery(ctx context.Context, lineup []LineupPlayer, pitcherID int) []gather.Result[*mlb.H2HStats] {
	tasks := make([]gather.Task[*mlb.H2HStats], len(lineup))
	for i, p := range lineup {
		batterID := p.ID
		tasks[i] = func(ctx context.Context) (*mlb.H2HStats, error) {
			return s.h2h.HeadToHead(ctx, batterID, pitcherID)
		}
	}
	return gather.All(ctx, tasks)
}

// attachH2H merges a lineup with its battery results. A nil battery (pitcher
// TBD, no requests issued) marks every batter with the no-history sentinel.
func attachH2H(lineup []LineupPlayer, battery []gather.Result[*mlb.H2HStats]) []LineupPlayer {
	out := make([]LineupPlayer, len(lineup))
	for i, p := range lineup {
		if battery == nil {
			p.H2H = noHistoryH2H
		} else if battery[i].Err != nil {
			p.H2H = errValue{Error: battery[i].Err.Error()}
		} else if battery[i].Value == nil {
			p.H2H = errValue{Error: "fetch/parse failed"}
		} else {
			p.H2H = battery[i].Value
		}
		out[i] = p
	}
	return out
}

// lineupWithFallback extracts a team's posted lineup from the game document.
// When no batting order has been posted yet, it borrows the lineup from the
// team's most recent completed game, downgrading the confidence tag.
func (s *Service) lineupWithFallback(ctx context.Context, doc *mlb.GameDocument, teamID int, home bool) ([]LineupPlayer, string) {
	if lineup := extractLineup(doc, home); lineup != nil {
		return lineup, LineupConfirmed
	}

	ids, err := s.resolver.LastCompletedGameIDs(ctx, teamID, 1)
	if err != nil || len(ids) == 0 {
		if err != nil {
			s.logger.Warn("lineup fallback resolution failed", "team_id", teamID, "error", err)
		}
		return []LineupPlayer{}, LineupUnavailable
	}

	lastDoc, err := s.stats.Fetcher().FetchOne(ctx, ids[0])
	if err != nil {
		s.logger.Warn("lineup fallback fetch failed", "team_id", teamID, "game_pk", ids[0], "error", err)
		return []LineupPlayer{}, LineupUnavailable
	}

	side := lastDoc.GameData.Teams.Home.ID == teamID
	if lineup := extractLineup(lastDoc, side); lineup != nil {
		return lineup, LineupExpected
	}
	return []LineupPlayer{}, LineupUnavailable
}

// extractLineup formats one side's batting order. Entries without a posted
// position are skipped. Returns nil when no order is posted.
func extractLineup(doc *mlb.GameDocument, home bool) []LineupPlayer {
	team := doc.LiveData.Boxscore.Teams.Away
	if home {
		team = doc.LiveData.Boxscore.Teams.Home
	}
	if len(team.BattingOrder) == 0 {
		return nil
	}

	lineup := make([]LineupPlayer, 0, len(team.BattingOrder))
	for _, id := range team.BattingOrder {
		details, ok := team.Players[fmt.Sprintf("ID%d", id)]
		if !ok {
			continue
		}
		position := details.Position.Abbreviation
		if position == "" {
			continue
		}
		lineup = append(lineup, LineupPlayer{
			ID:       id,
			Name:     nonEmpty(details.Person.FullName, "Unknown"),
			Position: position,
			Avg:      nonEmpty(details.SeasonStats.Batting.Avg, "N/A"),
		})
	}
	if len(lineup) == 0 {
		return nil
	}
	return lineup
}

// pitcherID narrows the interface-typed pitcher ID from PitcherInfo.
func pitcherID(v interface{}) (int, bool) {
	id, ok := v.(int)
	return id, ok && id != 0
}

func (s *Service) currentYear() int {
	if s.now != nil {
		return s.now()
	}
	return time.Now().Year()
}

func nonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
