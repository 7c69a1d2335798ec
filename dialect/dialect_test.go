package dialect

import (
	"testing"
	"time"

	"github.com/Konsultn-Engineering/sqlmigrate/types"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestEscapeTableName(t *testing.T) {
	tests := []struct {
		dialect Dialect
		schema  string
		table   string
		want    string
	}{
		{NewPostgresDialect(), "", "users", `"users"`},
		{NewPostgresDialect(), "public", "users", `"public"."users"`},
		{NewPostgresDialect(), "", `we"ird`, `"we""ird"`},
		{NewMySQLDialect(), "app", "users", "`app`.`users`"},
		{NewMySQLDialect(), "", "odd`name", "`odd``name`"},
		{NewTiDBDialect(), "", "users", "`users`"},
		{NewSQLiteDialect(), "main", "users", `"main"."users"`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name()+"/"+tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.EscapeTableName(tt.schema, tt.table))
		})
	}
}

func TestBooleanLiterals(t *testing.T) {
	assert.Equal(t, "TRUE", NewPostgresDialect().TrueLiteral())
	assert.Equal(t, "FALSE", NewPostgresDialect().FalseLiteral())
	assert.Equal(t, "1", NewMySQLDialect().TrueLiteral())
	assert.Equal(t, "0", NewTiDBDialect().FalseLiteral())
	assert.Equal(t, "1", NewSQLiteDialect().TrueLiteral())
}

func TestDateLiteral(t *testing.T) {
	d := NewPostgresDialect()

	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "'2024-02-29'", d.DateLiteral(day))

	ts := time.Date(2024, 2, 29, 13, 5, 9, 0, time.UTC)
	assert.Equal(t, "'2024-02-29 13:05:09'", d.DateLiteral(ts))

	frac := time.Date(2024, 2, 29, 13, 5, 9, 250000000, time.UTC)
	assert.Equal(t, "'2024-02-29 13:05:09.25'", d.DateLiteral(frac))
}

func TestShouldQuoteValue(t *testing.T) {
	pg := NewPostgresDialect()
	assert.True(t, pg.ShouldQuoteValue("Bob"))
	assert.False(t, pg.ShouldQuoteValue("now()"))
	assert.False(t, pg.ShouldQuoteValue(" CURRENT_TIMESTAMP "))

	lite := NewSQLiteDialect()
	assert.True(t, lite.ShouldQuoteValue("NOW()"))
	assert.False(t, lite.ShouldQuoteValue("current_timestamp"))
}

func TestNativeType(t *testing.T) {
	assert.Equal(t, types.Varchar, NewPostgresDialect().NativeType(types.Varchar))
	assert.Equal(t, types.SmallInt, NewPostgresDialect().NativeType(types.TinyInt))
	assert.Equal(t, types.UUID, NewPostgresDialect().NativeType(types.UUID))
	assert.Equal(t, types.TinyInt, NewMySQLDialect().NativeType(types.Boolean))
	assert.Equal(t, types.Char, NewTiDBDialect().NativeType(types.UUID))
	assert.Equal(t, types.Integer, NewSQLiteDialect().NativeType(types.Boolean))
	assert.Equal(t, types.Timestamp, NewSQLiteDialect().NativeType(types.Timestamp))
}

func TestBindType(t *testing.T) {
	assert.Equal(t, sqlx.DOLLAR, NewPostgresDialect().BindType())
	assert.Equal(t, sqlx.QUESTION, NewMySQLDialect().BindType())
	assert.Equal(t, sqlx.QUESTION, NewSQLiteDialect().BindType())
}
