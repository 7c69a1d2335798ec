package connector

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlmigrate/database"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
)

// Provider opens a pool for one driver. Open must not verify the connection;
// the connector pings with retries afterwards.
type Provider interface {
	Open(ctx context.Context, config Config) (*sql.DB, error)
	Dialect() dialect.Dialect
}

func applyPool(db database.Database, cfg PoolConfig) {
	raw := db.DB()
	if cfg.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	if cfg.MaxLifetime > 0 {
		raw.SetConnMaxLifetime(cfg.MaxLifetime)
	}
	if cfg.MaxIdleTime > 0 {
		raw.SetConnMaxIdleTime(cfg.MaxIdleTime)
	}
}
