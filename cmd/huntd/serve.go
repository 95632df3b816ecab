package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kavithma17/Treasure-Hunt/internal/config"
	"github.com/Kavithma17/Treasure-Hunt/internal/game"
	"github.com/Kavithma17/Treasure-Hunt/internal/logging"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/httpapi"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/memory"
	redisstore "github.com/Kavithma17/Treasure-Hunt/pkg/adapters/redis"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/sqlite"
	"github.com/Kavithma17/Treasure-Hunt/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hunt HTTP server",
	Long:  `Starts the treasure hunt server, exposing the game, player, leaderboard and admin routes over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(slog.LevelInfo)

		catalog, err := sqlite.Open(cfg.StoragePath)
		if err != nil {
			fmt.Printf("Error opening challenge storage: %v\n", err)
			os.Exit(1)
		}
		defer catalog.Close()

		// Sessions live in Redis when an address is configured, in
		// process memory otherwise. Memory needs its own sweeper; Redis
		// eviction rides on key TTLs.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var sessions ports.SessionStore
		if cfg.RedisAddr != "" {
			store := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
				redisstore.WithIdleTTL(cfg.SessionTTL),
				redisstore.WithLogger(logger))
			defer store.Close()
			sessions = store
			logger.Info("session store: redis", "addr", cfg.RedisAddr)
		} else {
			store := memory.NewStore(
				memory.WithIdleTTL(cfg.SessionTTL),
				memory.WithLogger(logger),
			)
			store.StartSweeper(ctx, cfg.SweepPeriod)
			sessions = store
			logger.Info("session store: memory", "idle_ttl", cfg.SessionTTL)
		}

		engine := game.NewEngine(sessions, catalog, game.WithLogger(logger))

		handler := httpapi.NewHandler(httpapi.Config{
			Engine:         engine,
			Catalog:        catalog,
			Players:        catalog,
			Leaderboard:    catalog,
			Sessions:       sessions,
			AdminToken:     cfg.AdminToken,
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         logger,
		})

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting hunt server", "addr", srv.Addr, "db", cfg.StoragePath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown requested", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("hunt server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
