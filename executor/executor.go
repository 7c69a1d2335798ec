package executor

import (
	"context"
	"fmt"
	"io"

	"github.com/Konsultn-Engineering/sqlmigrate/cache"
	"github.com/Konsultn-Engineering/sqlmigrate/database"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	"github.com/Konsultn-Engineering/sqlmigrate/statement"
	"github.com/Konsultn-Engineering/sqlmigrate/utils"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Executor runs statements against a database, reusing prepared statements
// across statements that render to the same SQL.
type Executor struct {
	db     database.Database
	stmts  *cache.StatementCache
	logger *zap.Logger
}

type options struct {
	logger    *zap.Logger
	cacheSize int
}

type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCacheSize bounds the number of cached prepared statements.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

func New(db database.Database, opts ...Option) *Executor {
	o := options{logger: zap.NewNop(), cacheSize: cache.DefaultSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Executor{
		db:     db,
		stmts:  cache.NewStatementCache(o.cacheSize),
		logger: o.logger.With(zap.String("dialect", db.Name())),
	}
}

// Execute runs stmts in order and returns the total number of affected rows.
// It stops at the first failure. Statements the database does not support are
// skipped.
func (e *Executor) Execute(ctx context.Context, stmts ...statement.PreparedSqlStatement) (int64, error) {
	log := e.logger.With(zap.Stringer("run", ulid.Make()))

	var (
		total    int64
		executed int
	)
	for i, s := range stmts {
		if !s.SupportsDatabase(e.db) {
			log.Debug("statement not supported, skipping", zap.Int("index", i))
			continue
		}

		query, args, err := s.BoundSQL(e.db)
		if err != nil {
			log.Error("bind failed", zap.Int("index", i), zap.Error(err))
			return total, errors.Wrapf(err, "statement %d", i)
		}

		prepared, err := e.stmts.GetOrPrepare(ctx, utils.FingerprintString(query), e.db.DB(), query)
		if err != nil {
			log.Error("prepare failed", zap.Int("index", i), zap.String("sql", query), zap.Error(err))
			return total, errors.Wrapf(err, "statement %d", i)
		}

		res, err := prepared.ExecContext(ctx, args...)
		if err != nil {
			log.Error("exec failed", zap.Int("index", i), zap.String("sql", query), zap.Error(err))
			return total, errors.Wrapf(err, "statement %d: exec %q", i, query)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return total, errors.Wrapf(err, "statement %d: rows affected", i)
		}
		total += affected
		executed++

		log.Debug("statement executed",
			zap.Int("index", i),
			zap.String("sql", query),
			zap.Int64("rows", affected),
		)
	}

	log.Info("statements executed", zap.Int("count", executed), zap.Int("skipped", len(stmts)-executed), zap.Int64("rows", total))
	return total, nil
}

// ExecuteOnce prepares s on its own connection, runs it and releases both.
func (e *Executor) ExecuteOnce(ctx context.Context, s statement.PreparedSqlStatement) (affected int64, err error) {
	bound, err := s.CreateBoundStatement(ctx, e.db)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = multierr.Append(err, bound.Close())
	}()

	res, err := bound.ExecContext(ctx)
	if err != nil {
		e.logger.Error("exec failed", zap.String("sql", bound.SQL()), zap.Error(err))
		return 0, err
	}

	affected, err = res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}

	e.logger.Debug("statement executed", zap.String("sql", bound.SQL()), zap.Int64("rows", affected))
	return affected, nil
}

// Close releases every cached prepared statement.
func (e *Executor) Close() error {
	return e.stmts.Close()
}

// WriteScript writes the literal form of stmts to w, one terminated
// statement per line, for review or dry runs.
func WriteScript(w io.Writer, d dialect.Dialect, stmts ...statement.SqlStatement) error {
	for i, s := range stmts {
		if !s.SupportsDatabase(d) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", s.SqlStatement(d), s.EndDelimiter(d)); err != nil {
			return errors.Wrapf(err, "write statement %d", i)
		}
	}
	return nil
}
