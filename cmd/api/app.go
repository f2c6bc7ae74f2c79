// AngelaMos | 2026
// app.go

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/carterperez-dev/asset-management/internal/asset"
	"github.com/carterperez-dev/asset-management/internal/cache"
	"github.com/carterperez-dev/asset-management/internal/config"
	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
	"github.com/carterperez-dev/asset-management/internal/events"
	"github.com/carterperez-dev/asset-management/internal/payment"
	"github.com/carterperez-dev/asset-management/internal/request"
	"github.com/carterperez-dev/asset-management/internal/team"
)

// infra holds the connections every subcommand that touches data needs.
type infra struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *core.Database
	redis     *core.Redis
	publisher events.Publisher
}

func openInfra(ctx context.Context) (*infra, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on startup failure
		return nil, err
	}
	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)

	publisher, err := newPublisher(cfg.Broker, logger)
	if err != nil {
		_ = rdb.Close() //nolint:errcheck // cleanup on startup failure
		_ = db.Close()  //nolint:errcheck // cleanup on startup failure
		return nil, err
	}

	return &infra{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		redis:     rdb,
		publisher: publisher,
	}, nil
}

func newPublisher(cfg config.BrokerConfig, logger *slog.Logger) (events.Publisher, error) {
	if !cfg.Enabled {
		return events.NewLogPublisher(logger), nil
	}

	pub, err := events.NewAMQPPublisher(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("event broker connected", "exchange", cfg.Exchange)
	return pub, nil
}

func (i *infra) Close() {
	if closer, ok := i.publisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			i.logger.Error("event broker close error", "error", err)
		}
	}

	if err := i.redis.Close(); err != nil {
		i.logger.Error("redis close error", "error", err)
	}

	if err := i.db.Close(); err != nil {
		i.logger.Error("database close error", "error", err)
	}
}

type services struct {
	employees *employee.Service
	teams     *team.Service
	assets    *asset.Service
	requests  *request.Service
	payments  *payment.Service
}

// newServices builds the domain services on top of infra. publisher is
// passed separately so serve can wrap it with metrics.
func newServices(i *infra, publisher events.Publisher) *services {
	db := i.db

	employeeSvc := employee.NewService(
		employee.NewRepository(db.DB),
		cache.New(i.redis.Client, i.cfg.Cache),
		publisher,
		i.cfg.Team,
		i.logger,
	)

	teamSvc := team.NewService(
		db,
		team.NewRepository(db.DB),
		team.NewRepository,
		employeeSvc,
		publisher,
		i.logger,
	)

	assetSvc := asset.NewService(
		asset.NewRepository(db.DB),
		employeeSvc,
		employeeSvc,
		i.logger,
	)

	requestSvc := request.NewService(
		db,
		request.NewRepository(db.DB),
		request.NewRepository,
		asset.NewRepository,
		employeeSvc,
		employeeSvc,
		publisher,
		i.logger,
	)

	paymentSvc := payment.NewService(
		db,
		payment.NewRepository(db.DB),
		payment.NewRepository,
		payment.NewGateway(i.cfg.Payment, i.logger),
		employeeSvc,
		publisher,
		i.logger,
	)

	return &services{
		employees: employeeSvc,
		teams:     teamSvc,
		assets:    assetSvc,
		requests:  requestSvc,
		payments:  paymentSvc,
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
