package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"

	"github.com/xtding233/ballistics/internal/api"
	"github.com/xtding233/ballistics/internal/armory"
	"github.com/xtding233/ballistics/internal/metrics"
	"github.com/xtding233/ballistics/internal/rpc"
	"github.com/xtding233/ballistics/internal/service"
)

var (
	httpAddr  = flag.String("http", ":8080", "HTTP listen address")
	grpcAddr  = flag.String("grpc", ":9090", "gRPC listen address (empty disables gRPC)")
	configDir = flag.String("config", "config", "weapon config base directory")
	watch     = flag.Duration("watch", 2*time.Second, "config poll interval (0 disables hot reload)")
	debug     = flag.Bool("debug", false, "log at debug level")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	loader := armory.NewLoader(*configDir)
	names, err := loader.Weapons()
	if err != nil {
		logger.Error("list weapons", "dir", *configDir, "err", err)
		os.Exit(1)
	}
	logger.Info("weapons loaded", "dir", *configDir, "count", len(names), "weapons", names)

	if *watch > 0 {
		w := armory.WatchLoader(loader, *watch, func(path string) {
			rec.Reload()
			logger.Info("weapon config changed", "path", path)
		})
		w.Start()
		defer w.Stop()
	}

	svc := service.New(loader, rec, logger)

	httpServer := &http.Server{
		Addr:              *httpAddr,
		Handler:           api.NewRouter(svc, reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("starting HTTP server", "addr", *httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server", "err", err)
			os.Exit(1)
		}
	}()

	var grpcServer *grpc.Server
	if *grpcAddr != "" {
		lis, err := net.Listen("tcp", *grpcAddr)
		if err != nil {
			logger.Error("gRPC listen", "addr", *grpcAddr, "err", err)
			os.Exit(1)
		}
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(logger)))
		rpc.RegisterBallisticsServer(grpcServer, rpc.NewServer(svc))
		go func() {
			logger.Info("starting gRPC server", "addr", *grpcAddr)
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("gRPC server", "err", err)
			}
		}()
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", "err", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	logger.Info("shutdown complete")
}
