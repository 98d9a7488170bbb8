package repository

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/yz4230/repowatch/internal/config"
	"github.com/yz4230/repowatch/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const memoryURI = ":memory:"

// Database owns the store connection. It is shared by all requests.
type Database struct {
	*gorm.DB
	table   string
	timeout time.Duration
	log     zerolog.Logger
}

// index is created after migration; failures are logged and ignored.
type index struct {
	name    string
	columns string
}

func recordIndexes(table string) []index {
	return []index{
		{name: "idx_" + table + "_timestamp", columns: `"timestamp" DESC`},
		{name: "idx_" + table + "_author", columns: `"author"`},
		{name: "idx_" + table + "_pushed_to", columns: `"pushed_to"`},
		{name: "idx_" + table + "_on", columns: `"on" DESC`},
	}
}

// NewSQLiteDB connects to the store, retrying a bounded number of times with
// a fixed delay, then migrates the record table.
func NewSQLiteDB(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*Database, error) {
	attempts := max(cfg.ConnectAttempts, 1)
	delay := max(cfg.ConnectDelay, time.Millisecond)
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))

	var db *gorm.DB
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		log.Info().Int("attempt", attempt).Int("max_attempts", attempts).Str("uri", cfg.URI).Msg("connecting to database")
		conn, err := open(ctx, cfg, log)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("database connection failed")
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", attempt, err)
	}
	log.Info().Str("database", cfg.Name).Str("table", cfg.Table).Msg("connected to database")

	if err := db.WithContext(ctx).Table(cfg.Table).AutoMigrate(&Record{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrate %s: %w", cfg.Table, err)
	}

	d := &Database{DB: db, table: cfg.Table, timeout: cfg.Timeout, log: log}
	d.ensureIndexes(ctx)
	return d, nil
}

func open(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	if cfg.URI != memoryURI {
		if err := os.MkdirAll(cfg.URI, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(cfg)), &gorm.Config{Logger: NewGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.URI == memoryURI {
		// every new connection would see its own empty in-memory database
		sqlDB.SetMaxOpenConns(1)
	}

	pingCtx, cancel := withTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func sqliteDSN(cfg config.DatabaseConfig) string {
	if cfg.URI == memoryURI {
		return memoryURI
	}
	values := url.Values{}
	values.Set("_busy_timeout", strconv.FormatInt(max(cfg.Timeout, time.Second).Milliseconds(), 10))
	values.Set("_journal_mode", "WAL")
	values.Set("_synchronous", "NORMAL")

	path := filepath.Join(cfg.URI, utils.EnsureSuffix(cfg.Name, ".sqlite"))
	return fmt.Sprintf("file:%s?%s", path, values.Encode())
}

func (d *Database) ensureIndexes(ctx context.Context) {
	for _, idx := range recordIndexes(d.table) {
		stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %q ON %q (%s)`, idx.name, d.table, idx.columns)
		if err := d.WithContext(ctx).Exec(stmt).Error; err != nil {
			d.log.Warn().Err(err).Str("index", idx.name).Msg("index creation failed")
			continue
		}
		d.log.Debug().Str("index", idx.name).Msg("ensured index")
	}
}

// TableName is the name of the record table.
func (d *Database) TableName() string { return d.table }

// HealthCheck pings the database.
func (d *Database) HealthCheck() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(context.Background(), d.timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Shutdown closes the connection pool.
func (d *Database) Shutdown() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	d.log.Info().Msg("closing database connection")
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
