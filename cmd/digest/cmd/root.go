// Package cmd implements the digest CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"signalist_backend/internal/app/di"
	authadapters "signalist_backend/internal/feature/auth/adapters"
	wlusecase "signalist_backend/internal/feature/watchlist/usecase"
	infradb "signalist_backend/internal/platform/db"
	"signalist_backend/internal/platform/logger"
	"signalist_backend/internal/shared/format"
	"signalist_backend/internal/shared/ratelimiter"
)

var (
	emails    []string
	rateLimit int
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print watchlist quotes per user",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env が無くても環境変数で動作する
		_ = godotenv.Load()
		logger.Setup(logger.LoadConfig())
	},
	RunE: runDigest,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringArrayVar(&emails, "email", nil, "user email (repeatable)")
	rootCmd.Flags().IntVar(&rateLimit, "rate", 30, "max quote requests per minute")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall deadline")
	_ = rootCmd.MarkFlagRequired("email")
}

func runDigest(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		return err
	}

	rdb := di.OpenRedis()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	mclient, mdb, err := di.OpenMongo(ctx)
	if err != nil {
		return err
	}
	if mclient != nil {
		defer func() { _ = mclient.Disconnect(context.Background()) }()
	}

	repo, err := di.NewWatchlistRepository(ctx, mdb, db)
	if err != nil {
		return err
	}
	membership := wlusecase.NewMembershipUsecase(repo, authadapters.NewUserGorm(db))
	market := di.NewMarketDataGateway(rdb, di.NewFinnhubClient())
	uc := wlusecase.NewDigestUsecase(membership, market, ratelimiter.NewRateLimiter(rateLimit, time.Minute))

	for _, email := range emails {
		lines, err := uc.Build(ctx, email)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			slog.Error("digest failed", "email", email, "error", err)
			continue
		}
		writeDigest(cmd.OutOrStdout(), email, lines)
	}
	return nil
}

func writeDigest(w io.Writer, email string, lines []wlusecase.DigestLine) {
	fmt.Fprintf(w, "# %s\n", email)
	if len(lines) == 0 {
		fmt.Fprintln(w, "(watchlist empty)")
		return
	}
	for _, l := range lines {
		price, change := format.NotAvailable, format.NotAvailable
		if l.Market.Available() {
			price = format.Price(l.Market.CurrentPrice)
			change = format.Change(l.Market.ChangePercent)
		}
		fmt.Fprintf(w, "%-6s %10s %8s\n", l.Symbol, price, change)
	}
}
