package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/everseek/everseek/internal/config"
	dbRedis "github.com/everseek/everseek/internal/db/redis"
	logpkg "github.com/everseek/everseek/internal/logger"
	"github.com/everseek/everseek/internal/metrics"
	indexrepo "github.com/everseek/everseek/internal/repository/index"
	"github.com/everseek/everseek/internal/repository/querycache"
	"github.com/everseek/everseek/internal/repository/runcount"
	"github.com/everseek/everseek/internal/transport/everything"
	"github.com/everseek/everseek/internal/transport/httpapi"
	"github.com/everseek/everseek/internal/transport/launcher"
	healthuc "github.com/everseek/everseek/internal/usecase/health"
	launchuc "github.com/everseek/everseek/internal/usecase/launch"
	searchuc "github.com/everseek/everseek/internal/usecase/search"
	statsuc "github.com/everseek/everseek/internal/usecase/stats"
	"github.com/everseek/everseek/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "everseek",
		Short: "Launcher plugin bridging to the Everything search engine",
		Long: "everseek serves the launcher plugin protocol on stdin/stdout and\n" +
			"answers queries with ranked files from a local Everything instance.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(newSearchCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// app is the composition root: every wired component, built once per run.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  *dbRedis.Store // nil when the cache section is empty
	engine *everything.Client
	search *searchuc.Service
	launch *launchuc.Service
	health *healthuc.Service
	stats  *statsuc.Service
}

func buildApp(ctx context.Context) (*app, error) {
	// A .env next to the binary is a convenience for local runs.
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("Starting everseek",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("engine_url", cfg.Engine.BaseURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	metrics.RegisterSearchMetrics()

	var store *dbRedis.Store
	if cfg.Cache.Enabled() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create store: %w", err)
		}
		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, fmt.Errorf("store not ready: %w", err)
		}
		logger.Info("Connected to store", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	engine := everything.NewClient(everything.Config{
		BaseURL: cfg.Engine.BaseURL,
		Timeout: time.Duration(cfg.Engine.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	var counters *runcount.Store
	if store != nil {
		counters = runcount.New(store, cfg.Cache.KeyPrefix)
	}

	// Pass nil interface (not typed nil pointer!) when the store is disabled.
	// Go gotcha: a nil *runcount.Store wrapped in an interface != nil.
	var idx *indexrepo.Repo
	if counters != nil {
		idx = indexrepo.New(engine, counters, cfg.Search.Extensions, cfg.Search.ExcludedPrefixes, logger)
	} else {
		idx = indexrepo.New(engine, nil, cfg.Search.Extensions, cfg.Search.ExcludedPrefixes, logger)
	}

	var repo searchuc.Repository = idx
	if store != nil {
		repo = querycache.New(idx, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			cfg.Cache.KeyPrefix,
			metrics.QueryCacheTotal,
			logger,
		)
	}

	searchSvc := searchuc.NewService(repo, searchuc.Options{
		MinQueryLength:    cfg.Search.MinQueryLength,
		MaxMissingLetters: cfg.Search.MaxMissingLetters,
		MaxRate:           cfg.Search.MaxRate,
		MaxResults:        cfg.Search.MaxResults,
	}, logger)

	var launchSvc *launchuc.Service
	if counters != nil {
		launchSvc = launchuc.NewService(nil, counters, logger)
	} else {
		launchSvc = launchuc.NewService(nil, nil, logger)
	}

	var storePinger healthuc.Pinger
	if store != nil {
		storePinger = store
	}
	healthSvc := healthuc.NewService(engine, storePinger)

	var statsSvc *statsuc.Service
	if counters != nil {
		statsSvc = statsuc.NewService(counters)
	} else {
		statsSvc = statsuc.NewService(nil)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		engine: engine,
		search: searchSvc,
		launch: launchSvc,
		health: healthSvc,
		stats:  statsSvc,
	}, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}

// serve runs the plugin protocol on stdin/stdout plus the optional
// diagnostics HTTP server, until a signal arrives or stdin closes.
func serve(ctx context.Context) error {
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	handler := launcher.NewHandler(a.search, a.launch, a.logger)

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	rpcDone := make(chan error, 1)
	go func() {
		rpcDone <- handler.Serve(serveCtx, os.Stdin, os.Stdout)
	}()

	var srv *http.Server
	if a.cfg.HTTP.Port > 0 {
		api := httpapi.NewServer(a.search, a.health, a.stats, a.logger)
		addr := fmt.Sprintf("127.0.0.1:%d", a.cfg.HTTP.Port)
		srv = &http.Server{
			Addr:         addr,
			Handler:      api.Router(),
			ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
		}
		go func() {
			a.logger.Info("Starting diagnostics server", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("Diagnostics server error", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		a.logger.Info("Received shutdown signal", zap.Stringer("signal", sig))
		cancel()
	case err := <-rpcDone:
		// The launcher closed our stdin: normal exit.
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("Serve loop failed", zap.Error(err))
		} else {
			a.logger.Info("Input closed, shutting down")
		}
	}

	if srv != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(),
			time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Error during shutdown", zap.Error(err))
		}
	}

	a.logger.Info("Stopped")
	return nil
}
