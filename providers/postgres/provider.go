package postgres

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlmigrate/connector"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
)

type Provider struct{}

func init() {
	connector.Register("postgres", &Provider{})
}

func (p *Provider) dsn(cfg connector.Config) *connector.DSNBuilder {
	return connector.NewDSNBuilder("postgres").
		Auth(cfg.Username, cfg.Password).
		Host(cfg.Host, cfg.Port).
		Database(cfg.Database).
		WithPostgresDefaults().
		Param("sslmode", cfg.SSLMode).
		Params(cfg.Params)
}

func (p *Provider) Open(ctx context.Context, cfg connector.Config) (*sql.DB, error) {
	b := p.dsn(cfg)
	if err := b.Validate(); err != nil {
		return nil, errors.Wrap(err, "postgres dsn")
	}

	connCfg, err := pgx.ParseConfig(b.Build())
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*connCfg), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}
