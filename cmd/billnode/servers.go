package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/goodnatureofminers/bitcredit-backend/internal/archive"
	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/metrics"
	"github.com/goodnatureofminers/bitcredit-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/bitcredit-backend/internal/storage"
	"github.com/goodnatureofminers/bitcredit-backend/internal/transport"
)

func startGRPCServer(ctx context.Context, addr string, handler transport.BillNodeServer, logger *zap.Logger) error {
	grpcZap.ReplaceGrpcLoggerV2(logger)
	interceptors := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(interceptors...)),
	)
	transport.RegisterBillNodeServer(grpcServer, handler)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", addr, err)
	}
	go func() {
		logger.Info("Starting gRPC server", zap.String("addr", addr))
		if err := grpcServer.Serve(socket); err != nil {
			logger.Error("gRPC server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()
	return nil
}

func startHTTPServer(ctx context.Context, addr string, bills transport.Bills, logger *zap.Logger) error {
	handler, err := transport.NewRESTHandler(bills, logger)
	if err != nil {
		return err
	}
	serve(ctx, "HTTP", &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}, logger)
	return nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	serve(ctx, "metrics", &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, logger)
}

func serve(ctx context.Context, name string, srv *http.Server, logger *zap.Logger) {
	go func() {
		logger.Info("Starting "+name+" server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(name+" server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown "+name+" server", zap.Error(err))
		}
	}()
}

func startArchive(ctx context.Context, ledger *chain.Ledger, store *storage.FileStore, logger *zap.Logger) (func(), error) {
	repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, fmt.Errorf("init archive repository: %w", err)
	}
	archiver := archive.New(repo, metrics.NewArchiver(), archive.Config{
		FlushSize:     config.ArchiveFlushSize,
		FlushInterval: config.ArchiveFlushInterval,
		RPS:           config.ArchiveRPS,
		Workers:       config.ArchiveWorkers,
	}, logger)
	archiver.Start(ctx)
	ledger.Observe(archiver)

	go func() {
		if err := archiver.Backfill(ctx, store); err != nil {
			logger.Error("archive backfill failed", zap.Error(err))
		}
	}()

	return func() {
		archiver.Stop()
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close archive repository", zap.Error(err))
		}
	}, nil
}
