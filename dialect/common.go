package dialect

import (
	"strings"
	"time"

	"github.com/Konsultn-Engineering/sqlmigrate/types"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05.999999"
)

// isoDateLiteral renders midnight values as a date and anything else as a
// timestamp with trailing zero fractions trimmed.
func isoDateLiteral(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return "'" + t.Format(dateLayout) + "'"
	}
	return "'" + t.Format(timestampLayout) + "'"
}

func qualify(schema, table string, quote func(string) string) string {
	if schema == "" {
		return quote(table)
	}
	return quote(schema) + "." + quote(table)
}

// isFunctionValue reports whether value names one of the given SQL functions.
func isFunctionValue(value string, functions ...string) bool {
	v := strings.TrimSpace(value)
	for _, fn := range functions {
		if strings.EqualFold(v, fn) {
			return true
		}
	}
	return false
}

func mapType(code types.Code, overrides map[types.Code]types.Code) types.Code {
	if native, ok := overrides[code]; ok {
		return native
	}
	return code
}
