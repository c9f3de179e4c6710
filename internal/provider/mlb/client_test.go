package mlb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 6000, nil), srv
}

func TestScheduleFlattensDates(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/schedule", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("sportId"))
		assert.Equal(t, "2026-06-01", q.Get("startDate"))
		assert.Equal(t, "2026-06-03", q.Get("endDate"))
		assert.Equal(t, "147", q.Get("teamId"))

		w.Write([]byte(`{
			"dates": [
				{"date": "2026-06-01", "games": [
					{"gamePk": 1, "gameType": "R", "gameDate": "2026-06-01T23:05:00Z",
					 "status": {"detailedState": "Final"},
					 "teams": {
						"away": {"team": {"id": 121, "name": "New York Mets"}, "score": 3},
						"home": {"team": {"id": 147, "name": "New York Yankees"}, "score": 5}
					 },
					 "venue": {"name": "Yankee Stadium"}}
				]},
				{"date": "2026-06-02", "games": [
					{"gamePk": 2, "gameType": "R", "gameDate": "2026-06-02T23:05:00Z",
					 "status": {"detailedState": "Scheduled"},
					 "teams": {
						"away": {"team": {"id": 121, "name": "New York Mets"}},
						"home": {"team": {"id": 147, "name": "New York Yankees"}}
					 },
					 "venue": {"name": "Yankee Stadium"}}
				]}
			]
		}`))
	})
	defer srv.Close()

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	games, err := client.Schedule(context.Background(), start, end, 147)
	require.NoError(t, err)

	require.Len(t, games, 2)
	assert.Equal(t, 1, games[0].GamePk)
	assert.Equal(t, "Final", games[0].Status)
	assert.Equal(t, 147, games[0].HomeID)
	assert.Equal(t, "New York Mets", games[0].AwayName)
	require.NotNil(t, games[0].HomeScore)
	assert.Equal(t, 5, *games[0].HomeScore)

	assert.Equal(t, "Scheduled", games[1].Status)
	assert.Nil(t, games[1].HomeScore, "unplayed games carry no score")
}

func TestGameFeedDecodesInnings(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.1/game/745804/feed/live", r.URL.Path)
		w.Write([]byte(`{
			"gameData": {
				"game": {"pk": 745804, "type": "R"},
				"teams": {"away": {"id": 121}, "home": {"id": 147}},
				"probablePitchers": {"home": {"id": 543037, "fullName": "Gerrit Cole"}}
			},
			"liveData": {
				"linescore": {
					"innings": [
						{"num": 1, "away": {"runs": 0}, "home": {"runs": 2}},
						{"num": 2, "away": {}, "home": {"runs": 0}}
					],
					"teams": {"away": {"runs": 0}, "home": {"runs": 2}}
				}
			}
		}`))
	})
	defer srv.Close()

	doc, err := client.GameFeed(context.Background(), 745804)
	require.NoError(t, err)

	assert.Equal(t, 745804, doc.GameData.Game.Pk)
	require.Len(t, doc.LiveData.Linescore.Innings, 2)

	first := doc.LiveData.Linescore.Innings[0]
	require.NotNil(t, first.Away.Runs)
	assert.Equal(t, 0, *first.Away.Runs)
	require.NotNil(t, first.Home.Runs)
	assert.Equal(t, 2, *first.Home.Runs)

	// Absent runs decode as nil, not zero.
	assert.Nil(t, doc.LiveData.Linescore.Innings[1].Away.Runs)

	require.NotNil(t, doc.GameData.ProbablePitchers.Home)
	assert.Equal(t, "Gerrit Cole", doc.GameData.ProbablePitchers.Home.FullName)
	assert.Nil(t, doc.GameData.ProbablePitchers.Away)
}

func TestHeadToHeadNoHistorySentinel(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "vsPlayerTotal", r.URL.Query().Get("stats"))
		assert.Equal(t, "543037", r.URL.Query().Get("opposingPlayerId"))
		w.Write([]byte(`{"stats": [{"splits": []}]}`))
	})
	defer srv.Close()

	h2h, err := client.HeadToHead(context.Background(), 660271, 543037)
	require.NoError(t, err)
	require.NotNil(t, h2h)
	assert.True(t, h2h.NoHistory)
	assert.Equal(t, 0, h2h.PlateAppearances)
}

func TestHeadToHeadParsesSplit(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stats": [{"splits": [{"stat": {
			"plateAppearances": 23, "atBats": 20, "hits": 7,
			"doubles": 2, "triples": 0, "homeRuns": 1,
			"baseOnBalls": 3, "strikeOuts": 4,
			"avg": ".350", "ops": "1.012"
		}}]}]}`))
	})
	defer srv.Close()

	h2h, err := client.HeadToHead(context.Background(), 660271, 543037)
	require.NoError(t, err)

	assert.False(t, h2h.NoHistory)
	assert.Equal(t, 23, h2h.PlateAppearances)
	assert.Equal(t, 7, h2h.Hits)
	assert.Equal(t, ".350", h2h.Avg)
	assert.Equal(t, "1.012", h2h.Ops)
}

func TestGetNonOKStatus(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	defer srv.Close()

	_, err := client.GameFeed(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestStandingsDefaultsToBothLeagues(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "103,104", r.URL.Query().Get("leagueId"))
		w.Write([]byte(`{"records": [
			{"division": {"id": 201}, "teamRecords": [
				{"team": {"id": 147, "name": "New York Yankees"}, "wins": 45, "losses": 25}
			]}
		]}`))
	})
	defer srv.Close()

	records, err := client.Standings(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 201, records[0].Division.ID)
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus("Final"))
	assert.True(t, IsTerminalStatus("Game Over"))
	assert.True(t, IsTerminalStatus("Completed Early"))
	assert.False(t, IsTerminalStatus("Scheduled"))
	assert.False(t, IsTerminalStatus("Postponed"))
	assert.False(t, IsTerminalStatus(""))
}

func TestTeamName(t *testing.T) {
	assert.Equal(t, "NYY Yankees", TeamName(147, "fallback"))
	assert.Equal(t, "fallback", TeamName(9999, "fallback"))
	assert.Equal(t, TBD, TeamName(9999, ""))
}
