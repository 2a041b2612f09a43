// Package values holds the runtime values a program can compute.
package values

import (
	"strconv"
)

type Value interface {
	is_Value()
	String() string
}

type Integer int64

func (v Integer) is_Value() {}

func (v Integer) String() string {
	return strconv.FormatInt(int64(v), 10)
}

type Boolean bool

func (v Boolean) is_Value() {}

func (v Boolean) String() string {
	return strconv.FormatBool(bool(v))
}

type String string

func (v String) is_Value() {}

// String renders the raw content, without quotes.
func (v String) String() string {
	return string(v)
}

// TypeName names the runtime type of v as used in diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case Integer:
		return "int"
	case Boolean:
		return "bool"
	case String:
		return "string"
	case nil:
		return "nothing"
	}
	panic("unhandled")
}

// Quote renders v the way it would be written in source.
func Quote(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	if v == nil {
		return ""
	}
	return v.String()
}

// Equal is structural equality; values of different types are never equal.
func Equal(a, b Value) bool {
	return a == b
}
