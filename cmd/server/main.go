package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"signalist_backend/internal/app/di"
	"signalist_backend/internal/app/router"
	authadapters "signalist_backend/internal/feature/auth/adapters"
	authentity "signalist_backend/internal/feature/auth/domain/entity"
	authhandler "signalist_backend/internal/feature/auth/transport/handler"
	authusecase "signalist_backend/internal/feature/auth/usecase"
	searchadapters "signalist_backend/internal/feature/stocksearch/adapters"
	searchentity "signalist_backend/internal/feature/stocksearch/domain/entity"
	searchhandler "signalist_backend/internal/feature/stocksearch/transport/handler"
	searchusecase "signalist_backend/internal/feature/stocksearch/usecase"
	wladapters "signalist_backend/internal/feature/watchlist/adapters"
	wlhandler "signalist_backend/internal/feature/watchlist/transport/handler"
	wlusecase "signalist_backend/internal/feature/watchlist/usecase"
	infradb "signalist_backend/internal/platform/db"
	"signalist_backend/internal/platform/events"
	"signalist_backend/internal/platform/http/handler"
	jwtmw "signalist_backend/internal/platform/jwt"
	"signalist_backend/internal/platform/logger"
	inframongo "signalist_backend/internal/platform/mongo"
)

func main() {
	// .env はローカル開発用。本番では環境変数を直接設定する
	_ = godotenv.Load()
	logger.Setup(logger.LoadConfig())

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(),
		&authentity.User{}, &authadapters.SessionModel{}, &wladapters.WatchlistModel{}, &searchentity.Symbol{})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	rdb := di.OpenRedis()
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// MongoDB
	mclient, mdb, err := di.OpenMongo(ctx)
	if err != nil {
		return err
	}
	if mclient != nil {
		defer func() { _ = mclient.Disconnect(context.Background()) }()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	watchlistRepo, err := di.NewWatchlistRepository(ctx, mdb, db)
	if err != nil {
		return err
	}
	symbolRepo := searchadapters.NewSymbolRepository(db)
	if err := symbolRepo.SeedDefaults(ctx); err != nil {
		slog.Warn("failed to seed popular symbols", "error", err)
	}

	finnhubClient := di.NewFinnhubClient()
	market := di.NewMarketDataGateway(rdb, finnhubClient)

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo,
		jwtmw.NewGenerator(secret, jwtmw.AccessTTLFromEnv()),
		events.NewRedisPublisher(rdb, events.ChannelFromEnv()),
		authusecase.LoadConfig())
	membershipUC := wlusecase.NewMembershipUsecase(watchlistRepo, userRepo)
	enrichmentUC := wlusecase.NewEnrichmentUsecase(watchlistRepo, market, fetchConcurrency())
	searchUC := searchusecase.NewSearchUsecase(symbolRepo, finnhubClient, market, membershipUC)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	watchlistH := wlhandler.NewWatchlistHandler(membershipUC, enrichmentUC)
	searchH := searchhandler.NewSearchHandler(searchUC)

	checks := []handler.Check{{Name: "sql", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }})
	}
	if mclient != nil {
		checks = append(checks, handler.Check{Name: "mongo", Ping: func(ctx context.Context) error { return inframongo.Ping(ctx, mclient) }})
	}

	// ルータ生成
	r := router.NewRouter(authH, watchlistH, searchH, checks...)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// fetchConcurrency reads WATCHLIST_FETCH_CONCURRENCY; invalid values use the usecase default.
func fetchConcurrency() int {
	n, err := strconv.Atoi(os.Getenv("WATCHLIST_FETCH_CONCURRENCY"))
	if err != nil || n <= 0 {
		return wlusecase.DefaultFetchConcurrency
	}
	return n
}
