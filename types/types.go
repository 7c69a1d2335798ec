package types

import "strconv"

// Code is a logical column type code. Dialects translate it to their native
// code before values are bound.
type Code int

const (
	Null Code = iota
	Other

	// Character types
	Char
	Varchar
	LongVarchar
	Clob

	// Integer types
	TinyInt
	SmallInt
	Integer
	BigInt

	// Floating point and exact numerics
	Real
	Float
	Double
	Decimal
	Numeric

	// Boolean
	Boolean
	Bit

	// Date and time
	Date
	Time
	Timestamp

	// Binary types
	Binary
	VarBinary
	Blob

	UUID
)

var codeNames = map[Code]string{
	Null:        "NULL",
	Other:       "OTHER",
	Char:        "CHAR",
	Varchar:     "VARCHAR",
	LongVarchar: "LONGVARCHAR",
	Clob:        "CLOB",
	TinyInt:     "TINYINT",
	SmallInt:    "SMALLINT",
	Integer:     "INTEGER",
	BigInt:      "BIGINT",
	Real:        "REAL",
	Float:       "FLOAT",
	Double:      "DOUBLE",
	Decimal:     "DECIMAL",
	Numeric:     "NUMERIC",
	Boolean:     "BOOLEAN",
	Bit:         "BIT",
	Date:        "DATE",
	Time:        "TIME",
	Timestamp:   "TIMESTAMP",
	Binary:      "BINARY",
	VarBinary:   "VARBINARY",
	Blob:        "BLOB",
	UUID:        "UUID",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// IsCharacter reports whether values of this code travel as strings.
func (c Code) IsCharacter() bool {
	switch c {
	case Char, Varchar, LongVarchar, Clob:
		return true
	}
	return false
}

// IsInteger reports whether c is one of the integer codes.
func (c Code) IsInteger() bool {
	switch c {
	case TinyInt, SmallInt, Integer, BigInt:
		return true
	}
	return false
}

// IsTemporal reports whether c is a date or time code.
func (c Code) IsTemporal() bool {
	switch c {
	case Date, Time, Timestamp:
		return true
	}
	return false
}

// IsBinary reports whether c is a binary code.
func (c Code) IsBinary() bool {
	switch c {
	case Binary, VarBinary, Blob:
		return true
	}
	return false
}
