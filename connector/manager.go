package connector

import (
	"context"
	"sync"

	"github.com/Konsultn-Engineering/sqlmigrate/database"
	"github.com/pkg/errors"
)

var globalManager = &Manager{
	providers: make(map[string]Provider),
}

type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

func Register(name string, provider Provider) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.providers[name] = provider
}

func lookup(name string) (Provider, bool) {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	p, ok := globalManager.providers[name]
	return p, ok
}

// Open validates cfg, opens a pool with the provider registered for
// cfg.Driver and pings it, retrying when cfg.Retry is set.
func Open(ctx context.Context, cfg Config) (database.Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, ok := lookup(cfg.Driver)
	if !ok {
		return nil, errors.Errorf("provider %s not registered", cfg.Driver)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	raw, err := provider.Open(ctx, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Driver)
	}

	db := database.NewSqlDatabase(raw, provider.Dialect())
	applyPool(db, cfg.Pool)

	if err := retryPing(ctx, cfg.Retry, db); err != nil {
		raw.Close()
		return nil, err
	}
	return db, nil
}
