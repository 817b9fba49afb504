// Command radar is the ListingRadar operations CLI.
//
// Usage:
//
//	radar collect
//	radar score --workers 4
//	radar alerts check
//	radar alerts test
//	radar digest [--send]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/listingradar/radar/internal/alert"
	"github.com/listingradar/radar/internal/collector"
	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
	"github.com/listingradar/radar/internal/digest"
	"github.com/listingradar/radar/internal/pipeline"
	"github.com/listingradar/radar/internal/scoring"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "radar",
		Short: "ListingRadar operations CLI",
	}

	root.AddCommand(collectCmd())
	root.AddCommand(scoreCmd())
	root.AddCommand(alertsCmd())
	root.AddCommand(digestCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// collect command
// --------------------------------------------------------------------------

func collectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Run one collection cycle across all signal sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if !cfg.CollectorsMock {
					return fmt.Errorf("collection requires COLLECTORS_MOCK=true; real integrations are not configured")
				}
				start := time.Now()
				n := collector.RunAll(ctx, pool.Pool, collector.DefaultSources(), logger)
				logger.Info("Collection finished",
					"stored", n, "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// score command
// --------------------------------------------------------------------------

func scoreCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Recompute momentum scores for all tracked products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if workers < 1 {
					workers = cfg.ScoreWorkers
				}
				engine := scoring.NewEngine(pool.Pool, cfg.Weights, logger)
				result := pipeline.Run(ctx, pool.Pool, engine, workers, logger)
				for _, e := range result.Errors {
					logger.Error("scoring error", "error", e)
				}
				if result.ItemsFailed > 0 {
					return fmt.Errorf("scoring run failed: %s", result.Summary())
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent worker count (0 = config default)")
	return cmd
}

// --------------------------------------------------------------------------
// alerts command
// --------------------------------------------------------------------------

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Check and deliver momentum alerts",
	}
	cmd.AddCommand(alertsCheckCmd())
	cmd.AddCommand(alertsTestCmd())
	return cmd
}

func alertsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Evaluate alert-worthy products and send pending alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				gate := alert.NewGate(pool.Pool, telegramSender(cfg), cfg, logger)
				n, err := gate.CheckAndSend(ctx)
				if err != nil {
					return err
				}
				logger.Info("Alert check finished", "alerts", n)
				return nil
			})
		},
	}
}

func alertsTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Send a test alert through the configured channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				gate := alert.NewGate(pool.Pool, telegramSender(cfg), cfg, logger)
				delivered, err := gate.SendTest(ctx)
				if err != nil {
					return err
				}
				logger.Info("Test alert recorded", "delivered", delivered)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// digest command
// --------------------------------------------------------------------------

func digestCmd() *cobra.Command {
	var send bool
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Build the daily digest; print it or send it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				d, err := digest.Build(ctx, pool.Pool, time.Now())
				if err != nil {
					return err
				}
				text := digest.Render(d)

				if !send {
					fmt.Println(text)
					return nil
				}
				sender := telegramSender(cfg)
				if sender == nil {
					return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required to send")
				}
				if err := sender.Send(ctx, text); err != nil {
					return fmt.Errorf("send digest: %w", err)
				}
				logger.Info("Digest sent",
					"products", len(d.TopProducts), "keywords", len(d.Keywords))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&send, "send", false, "Deliver the digest instead of printing it")
	return cmd
}

// telegramSender builds the delivery channel, or nil when unconfigured.
func telegramSender(cfg *config.Config) alert.Sender {
	s := alert.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if s == nil {
		return nil
	}
	return s
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithPool handles config loading, DB connection, and context cancellation.
func runWithPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
