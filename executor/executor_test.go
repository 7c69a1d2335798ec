package executor_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Konsultn-Engineering/sqlmigrate/connector"
	"github.com/Konsultn-Engineering/sqlmigrate/database"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	"github.com/Konsultn-Engineering/sqlmigrate/executor"
	_ "github.com/Konsultn-Engineering/sqlmigrate/providers/sqlite"
	"github.com/Konsultn-Engineering/sqlmigrate/statement"
	"github.com/Konsultn-Engineering/sqlmigrate/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func openSQLite(t *testing.T) database.Database {
	t.Helper()
	db, err := connector.Open(context.Background(), connector.Config{
		Driver:   "sqlite",
		Database: filepath.Join(t.TempDir(), "changelog.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.DB().Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		name TEXT,
		active INTEGER,
		nickname TEXT
	)`)
	require.NoError(t, err)
	_, err = db.DB().Exec(`INSERT INTO users (id, name, active, nickname) VALUES
		(1, 'Alice', 0, 'al'), (2, 'Bob', 0, 'bobby'), (3, 'Carol', 1, 'caz')`)
	require.NoError(t, err)
	return db
}

func activate(id int) *statement.UpdateStatement {
	stmt := statement.NewUpdateStatement("", "users").
		AddNewColumnValue("active", true, types.Boolean).
		AddNewColumnValue("nickname", nil, types.Varchar).
		SetWhereClause("id = ?")
	stmt.AddWhereParameter(id, types.Integer)
	return stmt
}

func TestWriteScript(t *testing.T) {
	rename := statement.NewUpdateStatement("public", "users").
		AddNewColumnValue("name", "Robert", types.Varchar).
		AddNewColumnValue("updated_at", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), types.Date).
		SetWhereClause("name = ?")
	rename.AddWhereParameter("Bob", types.Varchar)

	var buf bytes.Buffer
	err := executor.WriteScript(&buf, dialect.NewPostgresDialect(), rename, activate(1))
	require.NoError(t, err)

	assert.Equal(t,
		`UPDATE "public"."users" SET name = 'Robert', updated_at = '2024-05-01' WHERE name = 'Bob';`+"\n"+
			`UPDATE "users" SET active = TRUE, nickname = NULL WHERE id = '1';`+"\n",
		buf.String())
}

func TestExecuteAgainstSQLite(t *testing.T) {
	db := openSQLite(t)

	core, logs := observer.New(zap.DebugLevel)
	exec := executor.New(db, executor.WithLogger(zap.New(core)), executor.WithCacheSize(8))
	defer exec.Close()

	affected, err := exec.Execute(context.Background(), activate(1), activate(2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	rows, err := db.DB().Query(`SELECT id, active, nickname FROM users ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		id       int
		active   int
		nickname sql.NullString
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.id, &r.active, &r.nickname))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []row{
		{1, 1, sql.NullString{}},
		{2, 1, sql.NullString{}},
		{3, 1, sql.NullString{String: "caz", Valid: true}},
	}, got)

	executed := logs.FilterMessage("statement executed").All()
	require.Len(t, executed, 2)
	assert.Equal(t, `UPDATE "users" SET active = ?, nickname = ? where id = ?`, executed[0].ContextMap()["sql"])
	assert.Equal(t, executed[0].ContextMap()["run"], executed[1].ContextMap()["run"])
	summary := logs.FilterMessage("statements executed").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(2), summary[0].ContextMap()["count"])
}

type postgresOnly struct {
	*statement.UpdateStatement
}

func (postgresOnly) SupportsDatabase(d dialect.Dialect) bool {
	return d.Name() == "postgres"
}

func TestExecuteSkipsUnsupportedStatements(t *testing.T) {
	db := openSQLite(t)

	core, logs := observer.New(zap.InfoLevel)
	exec := executor.New(db, executor.WithLogger(zap.New(core)))
	defer exec.Close()

	affected, err := exec.Execute(context.Background(), activate(1), postgresOnly{activate(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	summary := logs.FilterMessage("statements executed").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(1), summary[0].ContextMap()["count"])
	assert.Equal(t, int64(1), summary[0].ContextMap()["skipped"])
}

func TestExecuteOnceAgainstSQLite(t *testing.T) {
	db := openSQLite(t)
	exec := executor.New(db)
	defer exec.Close()

	stmt := statement.NewUpdateStatement("", "users").
		AddNewColumnValue("name", "Bobby", types.Varchar).
		SetWhereClause("name = ? OR name = ?")
	stmt.AddWhereParameter("Bob", types.Varchar)
	stmt.AddWhereParameter("Carol", types.Varchar)

	affected, err := exec.ExecuteOnce(context.Background(), stmt)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var n int
	require.NoError(t, db.DB().QueryRow(`SELECT COUNT(*) FROM users WHERE name = 'Bobby'`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer raw.Close()

	db := database.NewSqlDatabase(raw, dialect.NewMySQLDialect())
	exec := executor.New(db)
	defer exec.Close()

	prep := mock.ExpectPrepare("UPDATE `users` SET active = ?, nickname = ? where id = ?")
	prep.ExpectExec().WithArgs(1, nil, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(1, nil, 2).WillReturnError(errors.New("deadlock"))

	affected, err := exec.Execute(context.Background(), activate(1), activate(2), activate(3))
	assert.ErrorContains(t, err, "statement 1")
	assert.ErrorContains(t, err, "deadlock")
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteBindError(t *testing.T) {
	raw, _, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	exec := executor.New(database.NewSqlDatabase(raw, dialect.NewPostgresDialect()))
	defer exec.Close()

	_, err = exec.Execute(context.Background(), statement.NewUpdateStatement("", "users"))
	assert.ErrorIs(t, err, statement.ErrNoColumnValues)
}
