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

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	httpAdapter "github.com/sakenomibu/nomibot/internal/adapters/http"
	"github.com/sakenomibu/nomibot/internal/adapters/line"
	redisAdapter "github.com/sakenomibu/nomibot/internal/adapters/redis"
	"github.com/sakenomibu/nomibot/internal/config"
	"github.com/sakenomibu/nomibot/internal/dispatcher"
	"github.com/sakenomibu/nomibot/internal/engine"
	"github.com/sakenomibu/nomibot/internal/logging"
	"github.com/sakenomibu/nomibot/internal/metrics"
	"github.com/sakenomibu/nomibot/internal/render"
	"github.com/sakenomibu/nomibot/pkg/scenario"
	"github.com/sakenomibu/nomibot/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long:  `Starts the nomibot game server, exposing the LINE webhook and the sideband state endpoint over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(slog.LevelInfo)

	graph, err := scenario.Load()
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	client := backend.NewClient(&backend.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := redisAdapter.NewFromClient(client, graph.EntryID(), redisAdapter.WithTTL(cfg.SessionTTL))
	defer store.Close()

	managerOpts := []session.Option{
		session.WithLogger(logger),
		session.WithLockTTL(cfg.LockTTL),
	}
	if cfg.DistributedLock {
		managerOpts = append(managerOpts, session.WithLocker(redisAdapter.NewLocker(client, "nomibot:")))
	}
	sessions := session.NewManager(store, managerOpts...)

	lineClient, err := line.New(cfg.ChannelSecret, cfg.ChannelAccessToken)
	if err != nil {
		return err
	}

	m := metrics.New()
	eng := engine.New(graph, cfg.CompletionThreshold)
	renderer := render.New(dispatcher.RestartKeyword)
	disp := dispatcher.New(sessions, eng, renderer, lineClient,
		dispatcher.WithLogger(logger),
		dispatcher.WithMetrics(m),
	)

	handler := httpAdapter.NewHandler(lineClient, disp, store,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(m),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting nomibot server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		logger.Info("nomibot server stopped gracefully")
	}
	return nil
}
