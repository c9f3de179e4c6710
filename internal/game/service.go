package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dugout-labs/dugout-data/internal/schedule"
)

// Service composes the window resolver, batch fetcher, and aggregator into
// the resolve → fetch → summarize pipeline.
type Service struct {
	resolver *schedule.Resolver
	fetcher  *Fetcher
	logger   *slog.Logger
}

// NewService creates a game Service.
func NewService(resolver *schedule.Resolver, fetcher *Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{resolver: resolver, fetcher: fetcher, logger: logger}
}

// Fetcher exposes the underlying batch fetcher.
func (s *Service) Fetcher() *Fetcher {
	return s.fetcher
}

// SummaryByLastGames summarizes a team's last numGames completed games.
// A resolution failure degrades to an error-carrying zero summary rather
// than propagating, since callers embed the summary in larger responses.
func (s *Service) SummaryByLastGames(ctx context.Context, teamID, numGames int) TeamSummary {
	ids, err := s.resolver.LastCompletedGameIDs(ctx, teamID, numGames)
	if err != nil {
		s.logger.Error("resolving last completed games", "team_id", teamID, "error", err)
		return TeamSummary{Results: []GameResult{}, Error: fmt.Sprintf("resolving games for team %d: %v", teamID, err)}
	}
	return Summarize(s.fetcher.FetchBatch(ctx, ids), teamID)
}

// SummaryBySpanDays summarizes a team's games over the numDays-day window
// ending yesterday.
func (s *Service) SummaryBySpanDays(ctx context.Context, teamID, numDays int) TeamSummary {
	ids, err := s.resolver.SpanGameIDs(ctx, teamID, numDays)
	if err != nil {
		s.logger.Error("resolving schedule span", "team_id", teamID, "error", err)
		return TeamSummary{Results: []GameResult{}, Error: fmt.Sprintf("resolving games for team %d: %v", teamID, err)}
	}
	return Summarize(s.fetcher.FetchBatch(ctx, ids), teamID)
}
