package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/config"
	"github.com/boardwalk/monopoly-server-go/internal/game"
	"github.com/boardwalk/monopoly-server-go/internal/registry"
	"github.com/boardwalk/monopoly-server-go/internal/repository"
	"github.com/boardwalk/monopoly-server-go/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting monopoly server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Create context that listens for termination signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize database (optional; snapshots stay in-memory without it)
	var snapshots *repository.SnapshotRepository
	if cfg.Database.URL != "" {
		db, dbErr := repository.NewDB(ctx, cfg.Database, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()

		stats := db.Stats()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)

		snapshots = repository.NewSnapshotRepository(db)
		if schemaErr := snapshots.EnsureSchema(ctx); schemaErr != nil {
			logger.Fatal("failed to prepare snapshot schema", zap.Error(schemaErr))
		}
		logger.Info("snapshot repository initialized")
	} else {
		logger.Warn("database not configured; game snapshots will not be persisted")
	}

	// Initialize game engine
	engine := game.NewEngine(logger)
	logger.Info("game engine initialized")

	// Initialize room registry
	reg := registry.New(engine, logger)
	logger.Info("room registry initialized")

	// Initialize WebSocket gateway
	wsServer := server.New(cfg.Server.WebSocket, gameSettings(cfg.Game), engine, reg, logger)

	go func() {
		if wsErr := wsServer.Run(ctx); wsErr != nil {
			logger.Error("WebSocket server error", zap.Error(wsErr))
		}
	}()

	// Tick loop: drives auction timeouts and persists snapshots of games
	// that produced events.
	go func() {
		ticker := time.NewTicker(cfg.Server.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				for gameID, events := range reg.TickAll(now) {
					wsServer.Broadcast(gameID, events)
					persistSnapshot(ctx, snapshots, engine, gameID, logger)
				}
			}
		}
	}()

	logger.Info("monopoly server initialized",
		zap.String("version", version),
		zap.String("websocket_address", cfg.Server.WebSocket.Address),
		zap.Duration("tick_interval", cfg.Server.TickInterval),
	)

	// Wait for termination signal
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	logger.Info("shutting down gracefully...")
	cancel()

	logger.Info("monopoly server stopped")
}

// gameSettings maps configured rule values onto defaults, keeping the
// defaults for anything left unset.
func gameSettings(cfg config.GameConfig) game.Settings {
	s := game.DefaultSettings()
	if cfg.StartingCash > 0 {
		s.StartingCash = cfg.StartingCash
	}
	if cfg.GoBonus > 0 {
		s.GoBonus = cfg.GoBonus
	}
	if cfg.JailFine > 0 {
		s.JailFine = cfg.JailFine
	}
	if cfg.BidMinIncrement > 0 {
		s.BidMinIncrement = cfg.BidMinIncrement
	}
	if cfg.AuctionStartingBid > 0 {
		s.AuctionStartingBid = cfg.AuctionStartingBid
	}
	if cfg.AuctionInactivity > 0 {
		s.AuctionInactivity = cfg.AuctionInactivity
	}
	if cfg.AuctionMaxDuration > 0 {
		s.AuctionMaxDuration = cfg.AuctionMaxDuration
	}
	if cfg.MaxPlayers > 0 {
		s.MaxPlayers = cfg.MaxPlayers
	}
	return s
}

func persistSnapshot(ctx context.Context, snapshots *repository.SnapshotRepository, engine *game.Engine, gameID string, logger *zap.Logger) {
	if snapshots == nil {
		return
	}
	snap, rej := engine.GetSnapshot(gameID)
	if rej != nil {
		logger.Warn("snapshot unavailable",
			zap.String("game_id", gameID),
			zap.String("reason", rej.Reason),
		)
		return
	}
	if err := snapshots.Save(ctx, snap); err != nil {
		logger.Error("failed to persist snapshot",
			zap.String("game_id", gameID),
			zap.Error(err),
		)
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
