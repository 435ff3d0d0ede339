package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"BILLNODE_CLICKHOUSE_DSN" default:"clickhouse://localhost:9000/default" description:"ClickHouse DSN of the block archive"`
	MigrationsDir string `long:"migrations-dir" env:"BILLNODE_MIGRATIONS_DIR" default:"migrations/clickhouse" description:"path to the archive migrations"`
	Down          bool   `long:"down" description:"roll back every migration instead of applying them"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := runMigrations(ctx, cfg, logger); err != nil {
		logger.Fatal("archive migration failed", zap.Error(err))
	}
}

func runMigrations(ctx context.Context, cfg config, logger *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("stat migrations dir: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.ClickhouseDSN)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("failed to close migrate", zap.Error(err))
		}
	}()

	apply, direction := m.Up, "up"
	if cfg.Down {
		apply, direction = m.Down, "down"
	}
	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no archive migrations to apply", zap.String("direction", direction))
			return nil
		}
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read version: %w", err)
	}
	logger.Info("archive migrations applied",
		zap.String("direction", direction),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
