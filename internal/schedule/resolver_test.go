package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
)

// fakeSchedule records every requested window and serves games by date.
type fakeSchedule struct {
	mu      sync.Mutex
	windows []window
	games   []mlb.ScheduleGame // GameDatetime keyed, RFC 3339
	always  []mlb.ScheduleGame // served on every call regardless of window
	failFor func(start, end time.Time) bool
}

type window struct {
	start, end time.Time
}

func (f *fakeSchedule) Schedule(ctx context.Context, start, end time.Time, teamID int) ([]mlb.ScheduleGame, error) {
	f.mu.Lock()
	f.windows = append(f.windows, window{start, end})
	f.mu.Unlock()

	if f.failFor != nil && f.failFor(start, end) {
		return nil, fmt.Errorf("schedule unavailable")
	}

	out := append([]mlb.ScheduleGame(nil), f.always...)
	for _, g := range f.games {
		d, err := time.Parse(time.RFC3339, g.GameDatetime)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end.AddDate(0, 0, 1)) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeSchedule) requested() []window {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]window(nil), f.windows...)
}

func finalGame(pk int, date string) mlb.ScheduleGame {
	return mlb.ScheduleGame{
		GamePk:       pk,
		GameType:     "R",
		Status:       "Final",
		GameDatetime: date,
	}
}

func fixedNow(date string) func() time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func seasonStart(year int) time.Time {
	return time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func TestSpanGameIDsChunksCoverWindow(t *testing.T) {
	source := &fakeSchedule{}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	_, err := r.SpanGameIDs(context.Background(), 147, 12)
	require.NoError(t, err)

	windows := source.requested()
	require.NotEmpty(t, windows)

	// Chunks arrive concurrently, so order them by start date before
	// checking the tiling.
	sort.Slice(windows, func(i, j int) bool { return windows[i].start.Before(windows[j].start) })

	// Chunks must tile [today-1-12, today-1] with no gap, no overlap, and
	// no span longer than five days.
	expectStart := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)
	base := time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC)
	cursor := expectStart
	for _, w := range windows {
		assert.True(t, w.start.Equal(cursor), "chunk must start where the last ended")
		days := int(w.end.Sub(w.start).Hours()/24) + 1
		assert.LessOrEqual(t, days, 5)
		cursor = w.end.AddDate(0, 0, 1)
	}
	assert.True(t, cursor.After(base), "chunks must reach the end of the window")
	last := windows[len(windows)-1]
	assert.True(t, last.end.Equal(base), "window must end yesterday")
}

func TestSpanGameIDsSurvivesChunkFailure(t *testing.T) {
	failStart := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	source := &fakeSchedule{
		games: []mlb.ScheduleGame{
			finalGame(1, "2026-06-08T23:00:00Z"),
			finalGame(2, "2026-06-13T23:00:00Z"), // inside the failing chunk
			finalGame(3, "2026-06-18T23:00:00Z"),
		},
		failFor: func(start, end time.Time) bool { return start.Equal(failStart) },
	}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	ids, err := r.SpanGameIDs(context.Background(), 147, 12)
	require.NoError(t, err)

	assert.Contains(t, ids, 1)
	assert.Contains(t, ids, 3)
	assert.NotContains(t, ids, 2)
}

func TestSpanGameIDsMemoized(t *testing.T) {
	source := &fakeSchedule{games: []mlb.ScheduleGame{finalGame(1, "2026-06-18T23:00:00Z")}}
	r := NewResolver(source, cache.New(true), seasonStart(2026), fixedNow("2026-06-20"), nil)

	first, err := r.SpanGameIDs(context.Background(), 147, 5)
	require.NoError(t, err)
	calls := len(source.requested())

	second, err := r.SpanGameIDs(context.Background(), 147, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, calls, len(source.requested()), "second resolution must hit the memo")
}

func TestLastCompletedGameIDsFiltersAndOrders(t *testing.T) {
	source := &fakeSchedule{
		games: []mlb.ScheduleGame{
			finalGame(1, "2026-06-10T23:00:00Z"),
			finalGame(2, "2026-06-12T23:00:00Z"),
			{GamePk: 3, GameType: "R", Status: "Postponed", GameDatetime: "2026-06-13T23:00:00Z"},
			{GamePk: 4, GameType: "E", Status: "Final", GameDatetime: "2026-06-14T23:00:00Z"},
			finalGame(5, "2026-06-15T23:00:00Z"),
			{GamePk: 6, GameType: "S", Status: "Game Over", GameDatetime: "2026-06-16T23:00:00Z"},
		},
	}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	ids, err := r.LastCompletedGameIDs(context.Background(), 147, 3)
	require.NoError(t, err)

	// Postponed and exhibition games are excluded; newest first.
	assert.Equal(t, []int{6, 5, 2}, ids)
}

func TestLastCompletedGameIDsBoundedBySeasonStart(t *testing.T) {
	source := &fakeSchedule{
		games: []mlb.ScheduleGame{
			finalGame(1, "2026-06-10T23:00:00Z"),
			finalGame(2, "2026-06-12T23:00:00Z"),
		},
	}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	ids, err := r.LastCompletedGameIDs(context.Background(), 147, 10)
	require.NoError(t, err)

	// Fewer than requested when the season has not produced enough games.
	assert.Equal(t, []int{2, 1}, ids)

	for _, w := range source.requested() {
		assert.False(t, w.start.Before(seasonStart(2026)), "walk must not cross the season start")
	}
}

func TestLastCompletedGameIDsSurvivesWindowFailure(t *testing.T) {
	// The newest window fails; the walk keeps going and serves what the
	// older windows produced.
	failStart := time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)
	source := &fakeSchedule{
		games: []mlb.ScheduleGame{
			finalGame(1, "2026-06-10T23:00:00Z"), // inside the failing window
			finalGame(2, "2026-05-30T23:00:00Z"),
		},
		failFor: func(start, end time.Time) bool { return start.Equal(failStart) },
	}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	ids, err := r.LastCompletedGameIDs(context.Background(), 147, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)
}

func TestLastCompletedGameIDsDeduplicates(t *testing.T) {
	// The same game served in every window must appear once.
	source := &fakeSchedule{
		always: []mlb.ScheduleGame{finalGame(9, "2026-06-15T23:00:00Z")},
	}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	ids, err := r.LastCompletedGameIDs(context.Background(), 147, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, ids)
}

func TestTodaySlateFallsBackToTomorrow(t *testing.T) {
	source := &fakeSchedule{
		games: []mlb.ScheduleGame{
			{GamePk: 1, GameType: "R", Status: "Scheduled", GameDatetime: "2026-06-21T17:00:00Z"},
		},
	}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	games, err := r.TodaySlate(context.Background(), 0, false)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 1, games[0].GamePk)

	windows := source.requested()
	require.Len(t, windows, 2, "empty today must trigger a tomorrow fetch")
}

func TestTodaySlateUpcomingOnly(t *testing.T) {
	source := &fakeSchedule{
		games: []mlb.ScheduleGame{
			finalGame(1, "2026-06-20T17:00:00Z"),
			{GamePk: 2, GameType: "R", Status: "Scheduled", GameDatetime: "2026-06-20T23:00:00Z"},
		},
	}
	r := NewResolver(source, cache.New(false), seasonStart(2026), fixedNow("2026-06-20"), nil)

	games, err := r.TodaySlate(context.Background(), 0, true)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 2, games[0].GamePk)
}
