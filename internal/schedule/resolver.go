// Package schedule resolves which games matter for a request: today's slate,
// a fixed historical span, or a team's last N completed games found by
// walking backward through the season.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/gather"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
)

const (
	// chunkDays caps one schedule request's date span. Longer windows
	// degrade or truncate upstream.
	chunkDays = 5

	// walkWindowDays is the step size of the backward completed-game search.
	walkWindowDays = 15
)

// Source is the upstream schedule operation the resolver depends on.
type Source interface {
	Schedule(ctx context.Context, start, end time.Time, teamID int) ([]mlb.ScheduleGame, error)
}

// Resolver turns (team, window) requests into ordered game ID lists.
type Resolver struct {
	source      Source
	memo        *cache.Memo
	seasonStart time.Time
	now         func() time.Time
	logger      *slog.Logger
}

// NewResolver creates a Resolver. seasonStart bounds the backward search;
// now may be nil and defaults to time.Now.
func NewResolver(source Source, memo *cache.Memo, seasonStart time.Time, now func() time.Time, logger *slog.Logger) *Resolver {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		source:      source,
		memo:        memo,
		seasonStart: seasonStart,
		now:         now,
		logger:      logger,
	}
}

// SpanGameIDs returns the IDs of a team's games in the numDays-day window
// ending yesterday. The span is partitioned into chunks of at most five
// calendar days, fetched concurrently, and concatenated in submission order.
// A failed chunk is logged and contributes zero games.
func (r *Resolver) SpanGameIDs(ctx context.Context, teamID, numDays int) ([]int, error) {
	key := cache.ScheduleKey(teamID, numDays)
	if v, ok := r.memo.Get(key); ok {
		return gameIDs(v.([]mlb.ScheduleGame)), nil
	}

	base := r.today().AddDate(0, 0, -1)
	start := base.AddDate(0, 0, -numDays)

	var chunks []dateRange
	for cur := start; !cur.After(base); {
		end := cur.AddDate(0, 0, chunkDays-1)
		if end.After(base) {
			end = base
		}
		chunks = append(chunks, dateRange{cur, end})
		cur = end.AddDate(0, 0, 1)
	}

	tasks := make([]gather.Task[[]mlb.ScheduleGame], len(chunks))
	for i, chunk := range chunks {
		chunk := chunk
		tasks[i] = func(ctx context.Context) ([]mlb.ScheduleGame, error) {
			return r.source.Schedule(ctx, chunk.start, chunk.end, teamID)
		}
	}

	var games []mlb.ScheduleGame
	for i, res := range gather.All(ctx, tasks) {
		if res.Err != nil {
			r.logger.Warn("schedule chunk failed",
				"team_id", teamID,
				"start", chunks[i].start.Format("2006-01-02"),
				"end", chunks[i].end.Format("2006-01-02"),
				"error", res.Err)
			continue
		}
		games = append(games, res.Value...)
	}

	r.memo.Set(key, games)
	return gameIDs(games), nil
}

// LastCompletedGameIDs returns the IDs of a team's most recent n completed
// regular-season (or suspended-resumed) games, most recent first. The search
// walks backward in fixed windows and always terminates at the season start,
// returning fewer than n IDs when the season has not produced enough games.
func (r *Resolver) LastCompletedGameIDs(ctx context.Context, teamID, n int) ([]int, error) {
	key := fmt.Sprintf("sched:lastn:%d:%d", teamID, n)
	if v, ok := r.memo.Get(key); ok {
		return v.([]int), nil
	}

	seen := make(map[int]bool)
	var completed []mlb.ScheduleGame

	end := r.today()
	for len(completed) < n && !end.Before(r.seasonStart) {
		start := end.AddDate(0, 0, -(walkWindowDays - 1))
		if start.Before(r.seasonStart) {
			start = r.seasonStart
		}

		games, err := r.source.Schedule(ctx, start, end, teamID)
		if err != nil {
			// A failed window contributes zero games; partial data beats a
			// total failure.
			r.logger.Warn("backward schedule window failed",
				"team_id", teamID,
				"start", start.Format("2006-01-02"),
				"end", end.Format("2006-01-02"),
				"error", err)
			end = start.AddDate(0, 0, -1)
			continue
		}
		for _, g := range games {
			if seen[g.GamePk] {
				continue
			}
			if !mlb.IsTerminalStatus(g.Status) {
				continue
			}
			if g.GameType != "R" && g.GameType != "S" {
				continue
			}
			seen[g.GamePk] = true
			completed = append(completed, g)
		}

		end = start.AddDate(0, 0, -1)
	}

	// Most recent n, even though windows arrive oldest-chunk-last.
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].GameDatetime > completed[j].GameDatetime
	})
	if len(completed) > n {
		completed = completed[:n]
	}

	ids := gameIDs(completed)
	r.memo.Set(key, ids)
	return ids, nil
}

// TodaySlate returns today's schedule entries, falling back to tomorrow when
// today has none. teamID 0 means the full league slate. When upcomingOnly is
// set, games already in a terminal state are filtered out.
func (r *Resolver) TodaySlate(ctx context.Context, teamID int, upcomingOnly bool) ([]mlb.ScheduleGame, error) {
	today := r.today()

	games, err := r.source.Schedule(ctx, today, today, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetch today's schedule: %w", err)
	}
	if len(games) == 0 {
		tomorrow := today.AddDate(0, 0, 1)
		games, err = r.source.Schedule(ctx, tomorrow, tomorrow, teamID)
		if err != nil {
			return nil, fmt.Errorf("fetch tomorrow's schedule: %w", err)
		}
	}

	if !upcomingOnly {
		return games, nil
	}
	upcoming := games[:0]
	for _, g := range games {
		if !mlb.IsTerminalStatus(g.Status) {
			upcoming = append(upcoming, g)
		}
	}
	return upcoming, nil
}

// TeamHistory returns a team's schedule entries from numDays ago through
// today, falling back to tomorrow's slate when the window is empty.
func (r *Resolver) TeamHistory(ctx context.Context, teamID, numDays int) ([]mlb.ScheduleGame, error) {
	today := r.today()
	start := today.AddDate(0, 0, -numDays)

	games, err := r.source.Schedule(ctx, start, today, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetch team %d history: %w", teamID, err)
	}
	if len(games) == 0 {
		tomorrow := today.AddDate(0, 0, 1)
		games, err = r.source.Schedule(ctx, tomorrow, tomorrow, teamID)
		if err != nil {
			return nil, fmt.Errorf("fetch team %d next slate: %w", teamID, err)
		}
	}
	return games, nil
}

func (r *Resolver) today() time.Time {
	t := r.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type dateRange struct {
	start, end time.Time
}

func gameIDs(games []mlb.ScheduleGame) []int {
	ids := make([]int, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.GamePk)
	}
	return ids
}
