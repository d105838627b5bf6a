package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"propdesk/internal/config"
)

// ErrNotConnected is returned by a Gateway whose connection was closed.
var ErrNotConnected = errors.New("database connection is not open")

// Gateway owns the single connection to the record store. Reads go through
// Query, writes through Exec, which commits.
type Gateway struct {
	db     *gorm.DB
	log    *zap.Logger
	closed bool
}

// Dialector picks the GORM driver for the configured DB_TYPE.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBDatabase,
			)
		}
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				cfg.DBHost,
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBDatabase,
				cfg.DBPort,
			)
		}
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite, DB_DATABASE is the file path
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = cfg.DBDatabase
		}
		return sqlite.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// Connect opens the store described by cfg.
func Connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Gateway, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gw, err := Open(ctx, dialector, cfg.DBDebug, log)
	if err != nil {
		return nil, err
	}

	log.Info("connected to database",
		zap.String("type", cfg.DBType),
		zap.String("database", cfg.DBDatabase))

	return gw, nil
}

// Open wraps an existing dialector. The pool is capped at one connection so
// at most one statement or cursor is ever in flight.
func Open(ctx context.Context, dialector gorm.Dialector, debug bool, zl *zap.Logger) (*Gateway, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	gw := &Gateway{db: db, log: zl}
	if err := gw.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gw, nil
}

func newGormLogger(debug bool) logger.Interface {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	return logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// DB exposes the GORM handle for table bootstrap.
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Ping checks the connection is usable.
func (g *Gateway) Ping(ctx context.Context) error {
	if g.closed {
		return ErrNotConnected
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Query runs a read statement with positionally bound args. The cursor is
// closed before Query returns, on success or failure.
func (g *Gateway) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	if g.closed {
		return nil, ErrNotConnected
	}

	rows, err := g.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		g.log.Error("query failed", zap.String("statement", stmt), zap.Error(err))
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			g.log.Error("scan failed", zap.String("statement", stmt), zap.Error(err))
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, Row{Columns: columns, Values: values})
	}
	if err := rows.Err(); err != nil {
		g.log.Error("row iteration failed", zap.String("statement", stmt), zap.Error(err))
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return result, nil
}

// Exec runs a mutating statement in its own transaction and commits it.
// A failed statement is rolled back and nothing is persisted.
func (g *Gateway) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	if g.closed {
		return 0, ErrNotConnected
	}

	var affected int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(stmt, args...)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		g.log.Error("statement failed", zap.String("statement", stmt), zap.Error(err))
		return 0, fmt.Errorf("statement failed: %w", err)
	}

	g.log.Debug("statement committed", zap.String("statement", stmt), zap.Int64("rows_affected", affected))
	return affected, nil
}

// Close closes the connection. Calling it twice is harmless.
func (g *Gateway) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true

	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
