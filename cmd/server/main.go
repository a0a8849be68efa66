package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"angellist_widget/internal/app/config"
	"angellist_widget/internal/app/di"
	"angellist_widget/internal/app/router"
	companyhandler "angellist_widget/internal/feature/company/transport/handler"
	companyusecase "angellist_widget/internal/feature/company/usecase"
	embedadapters "angellist_widget/internal/feature/embed/adapters"
	embedhandler "angellist_widget/internal/feature/embed/transport/handler"
	embedusecase "angellist_widget/internal/feature/embed/usecase"
	searchhandler "angellist_widget/internal/feature/search/transport/handler"
	searchusecase "angellist_widget/internal/feature/search/usecase"
	"angellist_widget/internal/platform/db"
	"angellist_widget/internal/platform/http/handler"
	"angellist_widget/internal/platform/logging"
	platformredis "angellist_widget/internal/platform/redis"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// newHTTPServer は公開エンドポイント向けにタイムアウトを設定したhttp.Serverを返します。
func newHTTPServer(port int, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
	}
}

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(db.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
	}, cfg.Database.RunMigrations || cfg.Database.Driver == db.DriverSQLite)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis（未設定・接続失敗時はメモリキャッシュで動作）
	var rdb *redisv9.Client
	if cfg.Redis.Host != "" {
		tmp, err := platformredis.NewRedisClient(ctx, platformredis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("redis unavailable; using in-memory markup cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	// Infrastructure
	client := di.NewAngelListClient(cfg.AngelList.ClientConfig())
	store := di.NewMarkupStore(rdb)
	postRepo := embedadapters.NewPostCompaniesRepository(gdb)

	// Usecase
	renderUC := companyusecase.NewRenderUsecase(client, store)
	rolesUC := companyusecase.NewRolesUsecase(client)
	searchUC := searchusecase.NewSearchUsecase(client)
	postsUC := embedusecase.NewPostCompaniesUsecase(postRepo, renderUC)

	// Handler
	defaults := cfg.Widget.RenderDefaults()
	r := router.NewRouter(router.Handlers{
		Health:  handler.NewHealthHandler(rdb),
		Company: companyhandler.NewCompanyHandler(renderUC, rolesUC, defaults),
		Search:  searchhandler.NewSearchHandler(searchUC),
		Posts:   embedhandler.NewPostCompaniesHandler(postsUC, defaults),
	}, cfg.Auth.JWTSecret)

	// JWT_SECRETチェック（未設定だと編集系APIは500になる）
	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; editor endpoints will reject every request")
	}

	srv := newHTTPServer(cfg.Server.Port, r)

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
