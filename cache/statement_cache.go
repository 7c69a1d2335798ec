package cache

import (
	"context"
	"database/sql"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// DefaultSize is the number of prepared statements kept when no size is given.
const DefaultSize = 128

// Preparer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// StatementCache keeps prepared statements keyed by the fingerprint of their
// SQL text. Evicted statements are closed.
type StatementCache struct {
	cache *lru.Cache[uint64, *sql.Stmt]
	mu    sync.RWMutex
}

func NewStatementCache(size int) *StatementCache {
	if size <= 0 {
		size = DefaultSize
	}
	cache, _ := lru.NewWithEvict(size, func(key uint64, stmt *sql.Stmt) {
		stmt.Close()
	})

	return &StatementCache{
		cache: cache,
	}
}

func (s *StatementCache) Get(key uint64) (*sql.Stmt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Get(key)
}

func (s *StatementCache) GetOrPrepare(ctx context.Context, key uint64, p Preparer, query string) (*sql.Stmt, error) {
	// Fast path: try to get from cache with read lock
	s.mu.RLock()
	if stmt, ok := s.cache.Get(key); ok {
		s.mu.RUnlock()
		return stmt, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if stmt, ok := s.cache.Get(key); ok {
		return stmt, nil
	}

	stmt, err := p.PrepareContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "prepare %q", query)
	}

	s.cache.Add(key, stmt)
	return stmt, nil
}

func (s *StatementCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Len()
}

func (s *StatementCache) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge() // This will trigger the evict callback for all items
	return nil
}
