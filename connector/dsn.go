package connector

import (
	"net"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// DSNBuilder assembles URL style connection strings.
type DSNBuilder struct {
	scheme   string
	username string
	password string
	host     string
	port     int
	database string
	params   url.Values
}

func NewDSNBuilder(scheme string) *DSNBuilder {
	return &DSNBuilder{
		scheme: scheme,
		params: url.Values{},
	}
}

func (b *DSNBuilder) Auth(username, password string) *DSNBuilder {
	b.username = username
	b.password = password
	return b
}

func (b *DSNBuilder) Host(host string, port int) *DSNBuilder {
	b.host = host
	b.port = port
	return b
}

func (b *DSNBuilder) Database(name string) *DSNBuilder {
	b.database = name
	return b
}

// Param sets key, replacing an earlier value. Empty values are ignored.
func (b *DSNBuilder) Param(key, value string) *DSNBuilder {
	if value != "" {
		b.params.Set(key, value)
	}
	return b
}

func (b *DSNBuilder) Params(params map[string]string) *DSNBuilder {
	for k, v := range params {
		b.Param(k, v)
	}
	return b
}

// WithPostgresDefaults adds defaults for common parameters.
func (b *DSNBuilder) WithPostgresDefaults() *DSNBuilder {
	return b.Param("sslmode", "prefer").
		Param("connect_timeout", "10")
}

func (b *DSNBuilder) Validate() error {
	if b.scheme == "" {
		return errors.New("scheme is required")
	}
	if b.host == "" {
		return errors.New("host is required")
	}
	if b.port <= 0 || b.port > 65535 {
		return errors.Errorf("invalid port: %d", b.port)
	}
	return nil
}

// Build renders the DSN. Parameters come out in key order.
func (b *DSNBuilder) Build() string {
	u := url.URL{
		Scheme:   b.scheme,
		Host:     b.host,
		RawQuery: b.params.Encode(),
	}
	if b.port > 0 {
		u.Host = net.JoinHostPort(b.host, strconv.Itoa(b.port))
	}
	if b.username != "" {
		if b.password != "" {
			u.User = url.UserPassword(b.username, b.password)
		} else {
			u.User = url.User(b.username)
		}
	}
	if b.database != "" {
		u.Path = "/" + b.database
	}
	return u.String()
}
