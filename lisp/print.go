package lisp

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (f Float) String() string {
	return formatFloat(float64(f))
}

func (s String) String() string {
	return string(s)
}

func (s Symbol) String() string {
	return string(s)
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = Repr(v)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// floats always show a fractional part or exponent, so 3.0 does not read
// back as an integer
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// Format renders a value for humans: strings print without quotes.
func Format(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return Repr(v)
}

// Repr renders a value so that strings are quoted.
func Repr(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case String:
		return strconv.Quote(string(x))
	case Proc, EnvProc:
		return "<procedure>"
	case *big.Int:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case Integer, BigInt, *big.Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "str"
	case Symbol:
		return "symbol"
	case List:
		return "list"
	case Sequence:
		return "sequence"
	case Bool:
		return "bool"
	case Proc, EnvProc:
		return "procedure"
	}
	return fmt.Sprintf("%T", v)
}

// Truthy reports how if interprets v: false, nil, zero, the empty string and
// empty lists are falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case Bool:
		return bool(x)
	case Integer:
		return x != 0
	case Float:
		return x != 0
	case *big.Int:
		return x.Sign() != 0
	case BigInt:
		return x.Sign() != 0
	case String:
		return x != ""
	case Sequence:
		return len(x) > 0
	case List:
		return len(x) > 0
	}
	return true
}
