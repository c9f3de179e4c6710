package comparison

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/game"
	"github.com/dugout-labs/dugout-data/internal/player"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
	"github.com/dugout-labs/dugout-data/internal/schedule"
)

// fakeUpstream implements every provider operation the comparison graph
// touches. Documents are served by gamePk; everything else returns benign
// defaults unless overridden.
type fakeUpstream struct {
	mu       sync.Mutex
	docs     map[int]*mlb.GameDocument
	games    []mlb.ScheduleGame
	h2hCalls []int // batter IDs, in request order
	h2hErr   error
}

func (f *fakeUpstream) GameFeed(ctx context.Context, gamePk int) (*mlb.GameDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[gamePk]
	if !ok {
		return nil, fmt.Errorf("game %d not found", gamePk)
	}
	return doc, nil
}

func (f *fakeUpstream) Schedule(ctx context.Context, start, end time.Time, teamID int) ([]mlb.ScheduleGame, error) {
	return f.games, nil
}

func (f *fakeUpstream) SearchPlayers(ctx context.Context, query string) ([]mlb.PlayerRecord, error) {
	return nil, nil
}

func (f *fakeUpstream) PersonWithStats(ctx context.Context, playerID int, season string) (*mlb.PersonStats, error) {
	return nil, fmt.Errorf("no stats in fixture")
}

func (f *fakeUpstream) PlayerGroupStats(ctx context.Context, playerID int, group, statType, season string) (mlb.StatLine, error) {
	return nil, fmt.Errorf("no stats in fixture")
}

func (f *fakeUpstream) HeadToHead(ctx context.Context, batterID, pitcherID int) (*mlb.H2HStats, error) {
	f.mu.Lock()
	f.h2hCalls = append(f.h2hCalls, batterID)
	f.mu.Unlock()
	if f.h2hErr != nil {
		return nil, f.h2hErr
	}
	return &mlb.H2HStats{PlateAppearances: 10, Hits: 3}, nil
}

func (f *fakeUpstream) h2hCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.h2hCalls)
}

// newCompareService wires the full service graph over the fake.
func newCompareService(f *fakeUpstream) *Service {
	memo := cache.New(false)
	season := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC) }
	resolver := schedule.NewResolver(f, memo, season, now, nil)
	fetcher := game.NewFetcher(f, memo, nil)
	games := game.NewService(resolver, fetcher, nil)
	players := player.NewService(f, fetcher, memo, now, nil)
	return NewService(resolver, games, players, f, func() int { return 2026 }, nil)
}

// compareDoc builds a game document with both teams, probable pitchers, and
// a posted batting order for each side.
func compareDoc(pk int) *mlb.GameDocument {
	doc := &mlb.GameDocument{}
	doc.GameData.Game.Pk = pk
	doc.GameData.Datetime.OfficialDate = "2026-06-20"
	doc.GameData.Status.AbstractGameState = "Preview"
	doc.GameData.Venue.Name = "Yankee Stadium"
	doc.GameData.Teams.Away.ID = 121
	doc.GameData.Teams.Away.LeagueRecord.Wins = 40
	doc.GameData.Teams.Away.LeagueRecord.Losses = 30
	doc.GameData.Teams.Home.ID = 147
	doc.GameData.Teams.Home.LeagueRecord.Wins = 45
	doc.GameData.Teams.Home.LeagueRecord.Losses = 25

	doc.GameData.ProbablePitchers.Away = &mlb.PitcherRef{ID: 501, FullName: "Away Starter"}
	doc.GameData.ProbablePitchers.Home = &mlb.PitcherRef{ID: 502, FullName: "Home Starter"}

	setLineup(doc, false, []int{601, 602})
	setLineup(doc, true, []int{701, 702})
	return doc
}

func setLineup(doc *mlb.GameDocument, home bool, ids []int) {
	team := &doc.LiveData.Boxscore.Teams.Away
	if home {
		team = &doc.LiveData.Boxscore.Teams.Home
	}
	if team.Players == nil {
		team.Players = make(map[string]mlb.BoxscorePlayer)
	}
	team.BattingOrder = ids
	for _, id := range ids {
		p := mlb.BoxscorePlayer{}
		p.Person.ID = id
		p.Person.FullName = fmt.Sprintf("Player %d", id)
		p.Position.Abbreviation = "CF"
		p.SeasonStats.Batting.Avg = ".300"
		team.Players[fmt.Sprintf("ID%d", id)] = p
	}
}

func TestCompareUnknownGameIsNotFound(t *testing.T) {
	svc := newCompareService(&fakeUpstream{docs: map[int]*mlb.GameDocument{}})

	result := svc.Compare(context.Background(), 999, 10)

	assert.NotEmpty(t, result.Error)
	assert.True(t, result.NotFound())
	assert.Nil(t, result.GameInfo)
	assert.Nil(t, result.TeamComparison)
}

func TestCompareMissingTeamIDsIsNotFound(t *testing.T) {
	doc := &mlb.GameDocument{}
	doc.LiveData.Linescore.Innings = []mlb.Inning{{Num: 1}}
	svc := newCompareService(&fakeUpstream{docs: map[int]*mlb.GameDocument{1: doc}})

	result := svc.Compare(context.Background(), 1, 10)

	assert.NotEmpty(t, result.Error)
	assert.True(t, result.NotFound())
}

func TestCompareConfirmedLineupsWithH2H(t *testing.T) {
	f := &fakeUpstream{docs: map[int]*mlb.GameDocument{745804: compareDoc(745804)}}
	svc := newCompareService(f)

	result := svc.Compare(context.Background(), 745804, 10)

	require.Empty(t, result.Error)
	require.NotNil(t, result.GameInfo)
	require.NotNil(t, result.TeamComparison)

	info := result.GameInfo
	assert.Equal(t, 745804, info.GamePk)
	assert.Equal(t, "Yankee Stadium", info.Venue)
	assert.Equal(t, "40-30", info.AwayTeam.Record)
	assert.Equal(t, "45-25", info.HomeTeam.Record)
	assert.Equal(t, LineupConfirmed, info.AwayTeam.LineupStatus)
	assert.Equal(t, LineupConfirmed, info.HomeTeam.LineupStatus)

	// Both pitchers known: every batter gets a real H2H lookup.
	require.Len(t, info.AwayTeam.Lineup, 2)
	require.Len(t, info.HomeTeam.Lineup, 2)
	assert.Equal(t, 4, f.h2hCount())
	h2h, ok := info.AwayTeam.Lineup[0].H2H.(*mlb.H2HStats)
	require.True(t, ok)
	assert.Equal(t, 10, h2h.PlateAppearances)

	assert.Equal(t, 10, result.TeamComparison.LookbackGames)
	// The stats fixture serves no completed games, so the summaries are
	// empty rather than errored.
	assert.Equal(t, 0, result.TeamComparison.Home.GamesAnalyzed)
}

func TestCompareSkipsH2HWhenPitcherUnknown(t *testing.T) {
	doc := compareDoc(1)
	doc.GameData.ProbablePitchers.Home = nil // away batters have no opponent
	f := &fakeUpstream{docs: map[int]*mlb.GameDocument{1: doc}}
	svc := newCompareService(f)

	result := svc.Compare(context.Background(), 1, 5)

	require.Empty(t, result.Error)
	info := result.GameInfo

	// Only the home lineup (vs the known away pitcher) was looked up.
	assert.Equal(t, 2, f.h2hCount())
	for _, p := range info.AwayTeam.Lineup {
		assert.Equal(t, noHistoryH2H, p.H2H)
	}
	assert.Equal(t, mlb.TBD, info.HomePitcher.ID)
	assert.Equal(t, "N/A", info.HomePitcher.SeasonERA)
}

func TestCompareH2HErrorsSurfaceAsValues(t *testing.T) {
	f := &fakeUpstream{
		docs:   map[int]*mlb.GameDocument{1: compareDoc(1)},
		h2hErr: fmt.Errorf("vsPlayer lookup failed"),
	}
	svc := newCompareService(f)

	result := svc.Compare(context.Background(), 1, 5)

	require.Empty(t, result.Error)
	for _, p := range result.GameInfo.AwayTeam.Lineup {
		ev, ok := p.H2H.(errValue)
		require.True(t, ok)
		assert.Contains(t, ev.Error, "vsPlayer lookup failed")
	}
}

func TestCompareLineupFallbackToLastGame(t *testing.T) {
	current := compareDoc(1)
	// Away side has not posted a lineup for this game.
	current.LiveData.Boxscore.Teams.Away = mlb.BoxscoreTeam{}

	previous := compareDoc(2)
	// In the previous game the away club (121) was also the away side.
	previous.GameData.Teams.Away.ID = 121

	f := &fakeUpstream{
		docs: map[int]*mlb.GameDocument{1: current, 2: previous},
		games: []mlb.ScheduleGame{
			{GamePk: 2, GameType: "R", Status: "Final", GameDatetime: "2026-06-18T23:00:00Z"},
		},
	}
	svc := newCompareService(f)

	result := svc.Compare(context.Background(), 1, 5)

	require.Empty(t, result.Error)
	info := result.GameInfo
	assert.Equal(t, LineupExpected, info.AwayTeam.LineupStatus)
	require.Len(t, info.AwayTeam.Lineup, 2)
	assert.Equal(t, LineupConfirmed, info.HomeTeam.LineupStatus)
}

func TestCompareLineupUnavailable(t *testing.T) {
	current := compareDoc(1)
	current.LiveData.Boxscore.Teams.Away = mlb.BoxscoreTeam{}

	// No completed games to borrow a lineup from.
	f := &fakeUpstream{docs: map[int]*mlb.GameDocument{1: current}}
	svc := newCompareService(f)

	result := svc.Compare(context.Background(), 1, 5)

	require.Empty(t, result.Error)
	info := result.GameInfo
	assert.Equal(t, LineupUnavailable, info.AwayTeam.LineupStatus)
	assert.Empty(t, info.AwayTeam.Lineup)
}

func TestExtractLineupKeepsPitchersSkipsPositionless(t *testing.T) {
	doc := compareDoc(1)
	team := &doc.LiveData.Boxscore.Teams.Home

	// A batting pitcher stays in the order.
	batting := mlb.BoxscorePlayer{}
	batting.Person.ID = 900
	batting.Person.FullName = "Shohei Ohtani"
	batting.Position.Abbreviation = "P"
	team.Players["ID900"] = batting

	// An entry with no posted position does not.
	ghost := mlb.BoxscorePlayer{}
	ghost.Person.ID = 901
	ghost.Person.FullName = "Unannounced Sub"
	team.Players["ID901"] = ghost

	team.BattingOrder = append(team.BattingOrder, 900, 901)

	lineup := extractLineup(doc, true)

	require.Len(t, lineup, 3)
	assert.Equal(t, 900, lineup[2].ID)
	assert.Equal(t, "P", lineup[2].Position)
	for _, entry := range lineup {
		assert.NotEqual(t, 901, entry.ID)
	}
}
