// Command lolstats queries series and timeline stats from the terminal.
//
// Usage:
//
//	lolstats migrate
//	lolstats series LCK2024_T1_GEN_2
//	lolstats score LCK2024_T1_GEN --blue T1 --red GEN --before 3
//	lolstats format LCK2024_T1_GEN
//	lolstats timeline player faker --driver sqlite --sqlite lol.db
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/albapepper/lolstats/internal/cache"
	"github.com/albapepper/lolstats/internal/config"
	"github.com/albapepper/lolstats/internal/db"
	"github.com/albapepper/lolstats/internal/model"
	"github.com/albapepper/lolstats/internal/series"
	"github.com/albapepper/lolstats/internal/timeline"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var (
	driverFlag string
	sqliteFlag string
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "lolstats",
		Short:        "LoL esports series and timeline stats",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&driverFlag, "driver", "", "Store driver (postgres, sqlite); overrides STORE_DRIVER")
	root.PersistentFlags().StringVar(&sqliteFlag, "sqlite", "", "SQLite database path; overrides SQLITE_PATH")

	root.AddCommand(migrateCmd())
	root.AddCommand(seriesCmd())
	root.AddCommand(scoreCmd())
	root.AddCommand(formatCmd())
	root.AddCommand(timelineCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the matches and player_match_stats tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			if err := db.Migrate(ctx, cfg); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Printf("schema applied (%s)\n", cfg.StoreDriver)
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// series commands
// --------------------------------------------------------------------------

func seriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "series <matchID>",
		Short: "Describe the series a match belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, svc *series.Service, _ *timeline.Aggregator) error {
				info := svc.Summary(ctx, args[0])

				table := newTable()
				table.Header("Field", "Value")
				table.Append("Match", info.MatchID)
				table.Append("Base", info.BaseID)
				table.Append("Game", strconv.Itoa(info.GameNumber))
				table.Append("Format", fmt.Sprintf("Bo%d", info.Format))
				table.Append("Standard", strconv.FormatBool(info.IsStandard))
				table.Append("Games played", strconv.Itoa(info.GamesPlayed))
				table.Append("Blue", info.TeamBlueID)
				table.Append("Red", info.TeamRedID)
				table.Append("Score", fmt.Sprintf("%d-%d", info.Score.Blue, info.Score.Red))
				table.Append("Entering game", fmt.Sprintf("%d-%d", info.ScoreBeforeGame.Blue, info.ScoreBeforeGame.Red))
				table.Render()
				return nil
			})
		},
	}
}

func scoreCmd() *cobra.Command {
	var (
		blue, red string
		before    int
	)
	cmd := &cobra.Command{
		Use:   "score <baseID>",
		Short: "Tally series wins for two teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if blue == "" || red == "" {
				return fmt.Errorf("--blue and --red are required")
			}
			return runWith(func(ctx context.Context, svc *series.Service, _ *timeline.Aggregator) error {
				var score series.Score
				if before > 0 {
					score = svc.SeriesScoreUpToGame(ctx, args[0], before, blue, red)
				} else {
					score = svc.SeriesScore(ctx, args[0], blue, red)
				}
				table := newTable()
				table.Header("Team", "Wins")
				table.Append(blue, strconv.Itoa(score.Blue))
				table.Append(red, strconv.Itoa(score.Red))
				table.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&blue, "blue", "", "Blue side team ID")
	cmd.Flags().StringVar(&red, "red", "", "Red side team ID")
	cmd.Flags().IntVar(&before, "before", 0, "Only count games before this game number")
	return cmd
}

func formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <baseID>",
		Short: "Print the best-of length of a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, svc *series.Service, _ *timeline.Aggregator) error {
				format, ok := svc.FormatOf(ctx, args[0])
				if !ok {
					fmt.Printf("%s: no games\n", args[0])
					return nil
				}
				fmt.Printf("%s: Bo%d\n", args[0], format)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// timeline command
// --------------------------------------------------------------------------

func timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "timeline <player|team> <id>",
		Short:     "Print checkpoint averages for a player or team",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"player", "team"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			if kind != "player" && kind != "team" {
				return fmt.Errorf("entity type must be player or team, got %q", kind)
			}
			return runWith(func(ctx context.Context, _ *series.Service, agg *timeline.Aggregator) error {
				var (
					stats map[string]timeline.StatPoint
					ok    bool
				)
				if kind == "player" {
					stats, ok = agg.PlayerTimelineStats(ctx, id)
				} else {
					stats, ok = agg.TeamTimelineStats(ctx, id)
				}
				if !ok {
					return fmt.Errorf("no timeline stats for %s %s", kind, id)
				}

				table := newTable()
				table.Header("Min", "Gold", "XP", "CS", "Gold Diff", "CS Diff", "K", "D", "A")
				for _, minute := range model.Checkpoints {
					p := stats[strconv.Itoa(minute)]
					table.Append(
						strconv.Itoa(minute),
						fmt.Sprintf("%.0f", p.AvgGold),
						fmt.Sprintf("%.0f", p.AvgXP),
						fmt.Sprintf("%.0f", p.AvgCS),
						fmt.Sprintf("%+.0f", p.AvgGoldDiff),
						fmt.Sprintf("%+.0f", p.AvgCSDiff),
						fmt.Sprintf("%.1f", p.AvgKills),
						fmt.Sprintf("%.1f", p.AvgDeaths),
						fmt.Sprintf("%.1f", p.AvgAssists),
					)
				}
				table.Render()
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func newTable() *tablewriter.Table {
	return tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// loadConfig applies the global flags on top of the environment.
func loadConfig() (*config.Config, error) {
	if driverFlag != "" {
		os.Setenv("STORE_DRIVER", driverFlag)
	}
	if sqliteFlag != "" {
		os.Setenv("SQLITE_PATH", sqliteFlag)
		if driverFlag == "" {
			os.Setenv("STORE_DRIVER", config.DriverSQLite)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runWith handles config loading, store connection, and context cancellation.
// The one-shot CLI runs with the stats cache disabled.
func runWith(fn func(ctx context.Context, svc *series.Service, agg *timeline.Aggregator) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, closeStore, err := db.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	svc := series.NewService(st, series.Thresholds{
		MinGames: cfg.SeriesMinGames,
		MaxGames: cfg.SeriesMaxGames,
	}, logger)
	agg := timeline.NewAggregator(st, cache.NewRows[model.PlayerMatchStats](false), logger)
	return fn(ctx, svc, agg)
}
