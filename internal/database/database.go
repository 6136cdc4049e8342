package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/storeease/storeease/internal/cache"
	"github.com/storeease/storeease/internal/config"
)

// Cache keeps the public list reads of a store. Keys are namespaced by
// store so every write can drop the whole store at once.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Del(ctx context.Context, pattern string) error
}

// implements usecase/Repository interface
type service struct {
	db    *gorm.DB
	cache Cache
}

// Open connects to postgres through pgx and instruments gorm with
// OpenTelemetry.
func Open(cfg config.DBConfig, l *slog.Logger, logLevel string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConnections)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger:         NewSlogGormLogger(l, logLevel, cfg.SlowQuery),
		TranslateError: true,
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm database connection: %w", err)
	}

	if err := gormDB.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to register tracing plugin: %w", err)
	}

	return gormDB, nil
}

// New migrates the schema and returns the repository. A nil cache disables
// list caching.
func New(db *gorm.DB, c Cache) (*service, error) {
	if c == nil {
		c = cache.Noop{}
	}

	err := db.AutoMigrate(
		Store{},
		Billboard{},
		Category{},
		Size{},
		Color{},
		Product{},
		Image{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, cache: c}, nil
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	db, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	if err := db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		slog.Error("db down", slog.String("err", err.Error()))
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// invalidate drops every cached list of the store.
func (s *service) invalidate(ctx context.Context, storeID fmt.Stringer) {
	if err := s.cache.Del(ctx, "store:"+storeID.String()+":*"); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("store_id", storeID.String()),
			slog.String("err", err.Error()),
		)
	}
}

// cachedList serves key from the cache, loading and storing it on a miss.
// Cache failures fall through to the database.
func cachedList[T any](ctx context.Context, c Cache, key string, load func() ([]T, error)) ([]T, error) {
	var list []T
	if ok, err := c.Get(ctx, key, &list); err == nil && ok {
		return list, nil
	}

	list, err := load()
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	if err := c.Set(ctx, key, list); err != nil {
		slog.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("err", err.Error()))
	}
	return list, nil
}
