package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/planarforge/oracle-server-go/internal/config"
	"github.com/planarforge/oracle-server-go/internal/game"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
	"github.com/planarforge/oracle-server-go/internal/repository"
	"github.com/planarforge/oracle-server-go/internal/server"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the resolution engine behind the websocket gateway",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting oracle server",
		zap.String("version", version),
		zap.String("websocket_address", cfg.Server.WebSocket.Address),
	)
	if cfg.Server.JoinTokenHash == "" {
		logger.Warn("join token not configured; player connections are unauthenticated")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Resolution step store
	steps, err := newStepStore(ctx, cfg.Queue, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize step store: %w", err)
	}

	engine := game.NewEngine(logger, steps)

	gatewayOpts := server.Options{
		PingInterval:  cfg.Server.WebSocket.PingInterval,
		PongWait:      cfg.Server.WebSocket.PongWait,
		WriteTimeout:  cfg.Server.WebSocket.WriteTimeout,
		SendBuffer:    cfg.Server.WebSocket.SendBuffer,
		JoinTokenHash: cfg.Server.JoinTokenHash,
		StartingLife:  cfg.Match.StartingLife,
		OpeningHand:   cfg.Match.OpeningHand,
	}

	// The card database is optional; without it match-creation requests
	// must carry inline decks.
	if cfg.Database.URL != "" {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		cards := repository.NewCardStore(db)
		if err := cards.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure card schema: %w", err)
		}
		gatewayOpts.Decks = cards
	} else {
		logger.Info("no database configured; matches must carry inline decks")
	}

	gateway := server.NewGateway(logger, engine, gatewayOpts)
	go gateway.Run(ctx)

	// Start WebSocket server
	httpServer := &http.Server{
		Addr:    cfg.Server.WebSocket.Address,
		Handler: gateway.Handler(),
	}
	go func() {
		logger.Info("starting websocket server", zap.String("address", cfg.Server.WebSocket.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("websocket server error", zap.Error(serveErr))
		}
	}()

	// gRPC health endpoint for orchestration probes
	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.Server.Ops.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on ops address: %w", err)
	}
	go func() {
		logger.Info("starting ops server", zap.String("address", cfg.Server.Ops.Address))
		if serveErr := grpcServer.Serve(lis); serveErr != nil {
			logger.Error("ops server error", zap.Error(serveErr))
		}
	}()

	// Wait for termination signal
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("websocket server shutdown error", zap.Error(err))
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}

	logger.Info("oracle server stopped")
	return nil
}

// newStepStore selects the resolution-queue backend.
func newStepStore(ctx context.Context, cfg config.QueueConfig, logger *zap.Logger) (queue.Store, error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		logger.Info("resolution queue backed by redis", zap.String("address", cfg.Redis.Address))
		return queue.NewRedisStore(&queue.RedisConfig{Client: client})
	default:
		logger.Info("resolution queue backed by memory")
		return queue.NewMemoryStore(), nil
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
