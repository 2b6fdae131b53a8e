package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"scm/internal/config"
	"scm/internal/handler"
	"scm/internal/infra/db"
	"scm/internal/infra/localstore"
	"scm/internal/infra/storage"
	"scm/internal/logger"
	"scm/internal/repository"
	"scm/internal/server"
	"scm/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// .env は任意
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "scm-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	//Repository（ストレージ上のドキュメント）生成
	repos := localstore.NewFactory(store, log)

	//Usecase生成
	productUC := usecase.NewProductUsecase(nil)

	//Handler生成
	h := server.Handlers{
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(repos, productUC),
		Checkout: handler.NewCheckoutHandler(repos, usecase.RealClock()),
		Report:   handler.NewReportHandler(repos, cfg.Delimiter()),
		Shipment: handler.NewShipmentHandler(repos),
	}
	if _, ok := store.(repository.ChangeNotifier); ok {
		h.Events = handler.NewEventsHandler(repos)
	}

	e := server.New(cfg, log, h)

	log.Info("server starting", "addr", cfg.Addr(), "storage", cfg.StorageDriver)
	return server.Start(ctx, e, cfg.Addr())
}

// STORAGE_DRIVER に応じてストレージを開く
func openStorage(cfg config.Config, log *slog.Logger) (repository.Storage, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		rdb := storage.NewRedisClient(cfg.RedisAddr)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		s := storage.NewRedisStorage(rdb, cfg.RedisChannel, log)
		return s, func() {
			_ = s.Close()
			_ = rdb.Close()
		}, nil

	case config.StoragePostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		s := storage.NewGormStorage(gormDB)
		if err := s.Migrate(); err != nil {
			return nil, nil, err
		}
		return s, func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil

	default:
		return storage.NewMemoryStorage(), func() {}, nil
	}
}
