package sqlite

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/Konsultn-Engineering/sqlmigrate/connector"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	_ "modernc.org/sqlite"
)

// Provider opens file databases with the pure Go modernc driver. Params are
// passed through as DSN query parameters, e.g. _pragma=busy_timeout(5000).
type Provider struct{}

func init() {
	connector.Register("sqlite", &Provider{})
}

func (p *Provider) buildDSN(cfg connector.Config) string {
	if len(cfg.Params) == 0 {
		return cfg.Database
	}
	q := url.Values{}
	for k, v := range cfg.Params {
		q.Set(k, v)
	}
	return cfg.Database + "?" + q.Encode()
}

func (p *Provider) Open(ctx context.Context, cfg connector.Config) (*sql.DB, error) {
	return sql.Open("sqlite", p.buildDSN(cfg))
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}
