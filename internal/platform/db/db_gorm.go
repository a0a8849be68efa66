// Package db はgormによるデータベース接続を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	embedadapters "angellist_widget/internal/feature/embed/adapters"
)

const (
	// DriverPostgres は本番用のドライバー名です。
	DriverPostgres = "postgres"
	// DriverSQLite はローカル開発・テスト用のドライバー名です。
	DriverSQLite = "sqlite"

	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// ErrUnknownDriver is returned for a driver other than postgres or sqlite.
var ErrUnknownDriver = errors.New("unknown database driver")

// Config はデータベース接続設定です。DSNが空の場合はHost等から組み立てます。
type Config struct {
	Driver   string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN はpostgres用のkey=value形式DSNを組み立てます。DSNが指定済みならそれを返します。
func BuildDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// OpenerFor returns the gorm opener for driver.
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses, sleeping interval between attempts.
func ConnectWithRetry(dsn string, timeout, interval time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(interval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(interval)
	}
}

// Open connects using cfg and optionally migrates the schema.
func Open(cfg Config, migrate bool) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if cfg.Driver == DriverPostgres {
		dsn = BuildDSN(cfg)
	}

	db, err := ConnectWithRetry(dsn, connectTimeout, retryInterval, opener)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate はpost_metaテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&embedadapters.PostMetaModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
