package mysql

import (
	"context"
	"database/sql"
	"net"
	"strconv"

	"github.com/Konsultn-Engineering/sqlmigrate/connector"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	driver "github.com/go-sql-driver/mysql"
)

type Provider struct {
	dialect dialect.Dialect
}

func init() {
	connector.Register("mysql", &Provider{dialect: dialect.NewMySQLDialect()})
	connector.Register("tidb", &Provider{dialect: dialect.NewTiDBDialect()})
}

func (p *Provider) driverConfig(cfg connector.Config) *driver.Config {
	c := driver.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.ParseTime = true
	if len(cfg.Params) > 0 {
		c.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			c.Params[k] = v
		}
	}
	return c
}

func (p *Provider) Open(ctx context.Context, cfg connector.Config) (*sql.DB, error) {
	conn, err := driver.NewConnector(p.driverConfig(cfg))
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(conn), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return p.dialect
}
