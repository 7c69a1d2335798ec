package types

import (
	"database/sql"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// NullOf returns the typed SQL NULL for a native code.
func NullOf(native Code) any {
	switch {
	case native.IsCharacter(), native == UUID, native == Decimal, native == Numeric:
		return sql.NullString{}
	case native.IsInteger():
		return sql.NullInt64{}
	case native == Real, native == Float, native == Double:
		return sql.NullFloat64{}
	case native == Boolean, native == Bit:
		return sql.NullBool{}
	case native.IsTemporal():
		return sql.NullTime{}
	case native.IsBinary():
		return []byte(nil)
	default:
		return nil
	}
}

// Bind converts v into the driver argument for the given native code.
// Nil values, including typed nil pointers, become typed SQL NULLs.
func Bind(native Code, v any) (any, error) {
	if IsNil(v) {
		return NullOf(native), nil
	}
	v = Indirect(v)

	var (
		out any
		err error
	)
	switch {
	case native.IsCharacter():
		out, err = cast.ToStringE(v)
	case native == UUID:
		out, err = bindUUID(v)
	case native.IsInteger():
		out, err = toInt64(v)
	case native == Real, native == Float, native == Double:
		out, err = toFloat64(v)
	case native == Decimal, native == Numeric:
		// precise decimals travel as strings
		out, err = cast.ToStringE(v)
	case native == Boolean, native == Bit:
		out, err = cast.ToBoolE(v)
	case native.IsTemporal():
		out, err = cast.ToTimeE(v)
	case native.IsBinary():
		out, err = bindBytes(v)
	default:
		return v, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "bind %T as %s", v, native)
	}
	return out, nil
}

// toInt64 reads strings as base 10 only, so "010" is ten, not eight.
func toInt64(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(v)
}

func toFloat64(v any) (float64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return cast.ToFloat64E(v)
}

func bindUUID(v any) (string, error) {
	switch val := v.(type) {
	case uuid.UUID:
		return val.String(), nil
	case [16]byte:
		return uuid.UUID(val).String(), nil
	case string:
		id, err := uuid.Parse(val)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case []byte:
		id, err := uuid.ParseBytes(val)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	default:
		return "", errors.Errorf("unable to cast %#v of type %T to uuid", v, v)
	}
}

func bindBytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case string:
		return []byte(val), nil
	default:
		return nil, errors.Errorf("unable to cast %#v of type %T to []byte", v, v)
	}
}

// IsNil reports whether v is nil or a typed nil pointer, map or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Indirect follows pointers until it reaches a non-pointer value. Callers
// check IsNil first; a nil pointer met along the way is returned as is.
func Indirect(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return rv.Interface()
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
