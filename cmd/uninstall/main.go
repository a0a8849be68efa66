package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"angellist_widget/internal/app/config"
	"angellist_widget/internal/app/di"
	embedadapters "angellist_widget/internal/feature/embed/adapters"
	embedusecase "angellist_widget/internal/feature/embed/usecase"
	"angellist_widget/internal/platform/db"
	"angellist_widget/internal/platform/logging"
	platformredis "angellist_widget/internal/platform/redis"
)

// uninstall は全投稿の企業リストとキャッシュ済みマークアップを削除します。
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gdb, err := db.Open(db.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
	}, true)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redisが無い場合、メモリキャッシュは別プロセスなので削除対象がない
	var rdb *redisv9.Client
	if cfg.Redis.Host != "" {
		rdb, err = platformredis.NewRedisClient(ctx, platformredis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Error("failed to connect redis", "error", err)
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
	}

	var purger embedusecase.CachePurger
	if rdb != nil {
		purger = di.NewMarkupStore(rdb)
	}

	uc := embedusecase.NewUninstallUsecase(embedadapters.NewPostCompaniesRepository(gdb), purger)
	res, err := uc.Uninstall(ctx)
	if err != nil {
		slog.Error("uninstall failed", "error", err)
		os.Exit(1)
	}
	slog.Info("uninstall ok", "deleted_rows", res.DeletedRows, "purged_keys", res.PurgedKeys)
}
