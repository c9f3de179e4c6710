// Command dugout is the Dugout Data CLI. It runs the same aggregation
// pipeline as the API server and prints JSON to stdout.
//
// Usage:
//
//	dugout stats --team 147 --games 10
//	dugout stats --team 147 --days 14
//	dugout compare --game 745804 --games 10
//	dugout schedule today
//	dugout schedule team --team 147 --days 7
//	dugout player search "judge"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/comparison"
	"github.com/dugout-labs/dugout-data/internal/config"
	"github.com/dugout-labs/dugout-data/internal/game"
	"github.com/dugout-labs/dugout-data/internal/player"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
	"github.com/dugout-labs/dugout-data/internal/schedule"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// deps is the wired service graph shared by all subcommands.
type deps struct {
	client   *mlb.Client
	resolver *schedule.Resolver
	games    *game.Service
	players  *player.Service
	compare  *comparison.Service
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "dugout",
		Short: "Dugout Data CLI — MLB betting summaries from the command line",
	}

	root.AddCommand(statsCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(playerCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	var teamID, numGames, numDays int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Team betting summary over recent games",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == 0 {
				return fmt.Errorf("--team is required")
			}
			return run(func(ctx context.Context, d *deps) error {
				var summary game.TeamSummary
				if numDays > 0 {
					summary = d.games.SummaryBySpanDays(ctx, teamID, numDays)
				} else {
					summary = d.games.SummaryByLastGames(ctx, teamID, numGames)
				}
				return printJSON(summary)
			})
		},
	}
	cmd.Flags().IntVar(&teamID, "team", 0, "MLB team ID")
	cmd.Flags().IntVar(&numGames, "games", 10, "Number of completed games to analyze")
	cmd.Flags().IntVar(&numDays, "days", 0, "Analyze a trailing day span instead of last-N games")
	return cmd
}

// --------------------------------------------------------------------------
// compare command
// --------------------------------------------------------------------------

func compareCmd() *cobra.Command {
	var gamePk, lookback int
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Pregame comparison for one game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gamePk == 0 {
				return fmt.Errorf("--game is required")
			}
			return run(func(ctx context.Context, d *deps) error {
				result := d.compare.Compare(ctx, gamePk, lookback)
				if err := printJSON(result); err != nil {
					return err
				}
				if result.Error != "" {
					return fmt.Errorf("comparison failed: %s", result.Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&gamePk, "game", 0, "MLB game primary key")
	cmd.Flags().IntVar(&lookback, "games", 10, "Lookback games per team")
	return cmd
}

// --------------------------------------------------------------------------
// schedule command
// --------------------------------------------------------------------------

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedules and slates",
	}
	cmd.AddCommand(scheduleTodayCmd())
	cmd.AddCommand(scheduleTeamCmd())
	return cmd
}

func scheduleTodayCmd() *cobra.Command {
	var teamID int
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Today's slate (tomorrow once today has gone final)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				games, err := d.resolver.TodaySlate(ctx, teamID, false)
				if err != nil {
					return err
				}
				return printJSON(games)
			})
		},
	}
	cmd.Flags().IntVar(&teamID, "team", 0, "Filter to one team ID")
	return cmd
}

func scheduleTeamCmd() *cobra.Command {
	var teamID, numDays int
	cmd := &cobra.Command{
		Use:   "team",
		Short: "One team's games over a trailing day window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == 0 {
				return fmt.Errorf("--team is required")
			}
			return run(func(ctx context.Context, d *deps) error {
				games, err := d.resolver.TeamHistory(ctx, teamID, numDays)
				if err != nil {
					return err
				}
				return printJSON(games)
			})
		},
	}
	cmd.Flags().IntVar(&teamID, "team", 0, "MLB team ID")
	cmd.Flags().IntVar(&numDays, "days", 7, "Trailing window in days")
	return cmd
}

// --------------------------------------------------------------------------
// player command
// --------------------------------------------------------------------------

func playerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player lookups",
	}
	cmd.AddCommand(playerSearchCmd())
	cmd.AddCommand(playerRecentCmd())
	return cmd
}

func playerSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search active players by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, d *deps) error {
				return printJSON(d.players.Search(ctx, args[0]))
			})
		},
	}
}

func playerRecentCmd() *cobra.Command {
	var playerID, numGames int
	var betting bool
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Recent game lines for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 {
				return fmt.Errorf("--id is required")
			}
			return run(func(ctx context.Context, d *deps) error {
				if betting {
					return printJSON(d.players.BettingStats(ctx, playerID, numGames))
				}
				return printJSON(d.players.Recent(ctx, playerID, numGames))
			})
		},
	}
	cmd.Flags().IntVar(&playerID, "id", 0, "MLB person ID")
	cmd.Flags().IntVar(&numGames, "games", 5, "Number of recent games")
	cmd.Flags().BoolVar(&betting, "betting", false, "Include over-market hit rates")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, service wiring, and context cancellation.
func run(fn func(ctx context.Context, d *deps) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	memo := cache.New(cfg.CacheEnabled)
	client := mlb.NewClient(cfg.MLBBaseURL, cfg.MLBRequestsPerMin, logger)
	resolver := schedule.NewResolver(client, memo, cfg.SeasonStart(time.Now().Year()), nil, logger)
	fetcher := game.NewFetcher(client, memo, logger)
	games := game.NewService(resolver, fetcher, logger)
	players := player.NewService(client, fetcher, memo, nil, logger)
	compare := comparison.NewService(resolver, games, players, client, nil, logger)

	return fn(ctx, &deps{
		client:   client,
		resolver: resolver,
		games:    games,
		players:  players,
		compare:  compare,
	})
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
