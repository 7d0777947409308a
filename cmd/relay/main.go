package main

import (
	"chat-relay/gateway"
	"chat-relay/internal"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component, serves until a signal arrives and shuts down
// in order: clients first, then the HTTP server, then the workers.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, _ := internal.CharacterRune(config.CharReplacement)

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Runtime
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(logger, sup, runtime.Options{
		HistorySize:         config.MaxHistorySize,
		MaxContentLen:       config.MaxContentLength,
		DefaultTopics:       config.Topics(),
		SupportTopics:       config.Support(),
		CensoredWordsDir:    config.CensoredWordsDir,
		CharReplacement:     charReplacement,
		ArchiveBufferSize:   config.ArchiveBufferSize,
		HistoryRestoreLimit: config.HistoryRestoreLimit,
		HeartbeatInterval:   config.HeartbeatInterval,
	})

	// 3. Archive (BadgerDB), optional
	if config.ArchivePath != "" {
		db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
		if err != nil {
			return exitRuntime, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			logger.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		orchestrator.WithArchive(repositories.NewEventRepository(db, logger))
	}

	if err := orchestrator.Prepare(); err != nil {
		return exitRuntime, fmt.Errorf("preparing orchestrator: %w", err)
	}

	// 4. Transports
	settings := gateway.Settings{
		BufferSize:       config.ConnectionBufferSize,
		MaxMessageSize:   config.MaxMessageSize,
		HandshakeTimeout: config.HandshakeTimeout,
		PongWait:         config.PongWait,
		PingPeriod:       config.PingPeriod,
		WriteWait:        config.WriteWait,
		PollWait:         config.PollWait,
		PollIdleTimeout:  config.PollIdleTimeout,
		RateBurst:        config.RateLimitBurst,
		RateInterval:     config.RateLimitInterval,
		AllowedOrigins:   config.Origins(),
	}
	origins := gateway.NewOriginPolicy(logger, settings.AllowedOrigins)
	gw := gateway.NewGateway(logger,
		orchestrator.Registry(), orchestrator.Connections(), orchestrator.Router(),
		orchestrator.History(), orchestrator.Dispatcher(), orchestrator.TopicsFor)
	ws := gateway.NewWebSocketTransport(logger, gw, settings, origins)
	poll := gateway.NewLongPollTransport(logger, gw, settings)
	orchestrator.Add(gateway.NewPollReaper(poll, settings.PollIdleTimeout/2))

	server := &http.Server{
		Addr:              config.Address(),
		Handler:           gateway.NewEngine(logger, ws, poll, orchestrator.History(), orchestrator, origins),
		ReadHeaderTimeout: config.HandshakeTimeout,
	}

	// 5. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	// Workers keep the base context: they must outlive the transports and are
	// stopped explicitly once every LEAVE has been published.
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	workersDone := make(chan struct{})

	go func() {
		defer close(workersDone)
		orchestrator.Start(ctx)
	}()

	go func() {
		logger.Info("Starting HTTP server", "address", server.Addr, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	var exitErr error
	select {
	case <-sigCtx.Done():
		logger.Info("Shutdown signal received")
	case exitErr = <-errChan:
	}

	// 7. Graceful shutdown
	// Closing every peer ends the pumps of hijacked WebSocket connections,
	// which http.Server.Shutdown does not track.
	logger.Info("Shutting down gracefully...")
	orchestrator.Connections().CloseAll()
	shutdownCtx, cancel := context.WithTimeout(ctx, config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown incomplete", "error", err)
	}
	if err := ws.Wait(shutdownCtx); err != nil {
		logger.Warn("WebSocket connections still open after timeout", "error", err)
	}
	logger.Info(fmt.Sprintf("%d long-poll connections closed", poll.CloseAll(ctx)))

	// The archive worker flushes what the disconnects queued before returning.
	orchestrator.Stop()
	<-workersDone

	if exitErr != nil {
		return exitRuntime, exitErr
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.ArchivePath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}
