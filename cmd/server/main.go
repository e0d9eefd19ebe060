// Package main runs the gacha gRPC server.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/xtding233/gacha-engine/internal/config"
	"github.com/xtding233/gacha-engine/internal/game"
	"github.com/xtding233/gacha-engine/internal/observability"
	"github.com/xtding233/gacha-engine/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to server configuration file (defaults + GACHA_* env when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	loader := game.NewLoader(cfg.Games.BaseDir)
	svc := server.NewService(loader, logger,
		server.WithDefaults(cfg.Games.DefaultGame, cfg.Games.DefaultPool),
	)

	if cfg.Games.HotReload {
		watcher, err := game.NewFileWatcher(loader.Paths().GamesDir(), func(path string) {
			logger.Info("banner config changed", zap.String("path", path))
			loader.Invalidate()
			svc.Reload()
		}, logger)
		if err != nil {
			logger.Fatal("starting config watcher", zap.Error(err))
		}
		watcher.Start()
		defer watcher.Stop()
	}

	lis, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		logger.Fatal("listening", zap.String("addr", cfg.Server.Addr()), zap.Error(err))
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(server.UnaryLogger(logger)))
	server.RegisterGachaServiceServer(grpcServer, svc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		grpcServer.GracefulStop()
	}()

	logger.Info("listening",
		zap.String("addr", lis.Addr().String()),
		zap.String("games_dir", loader.Paths().GamesDir()),
	)
	if err := grpcServer.Serve(lis); err != nil {
		logger.Error("serve", zap.Error(err))
	}
}
