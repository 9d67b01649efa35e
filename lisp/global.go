package lisp

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"reflect"
	"strings"

	"github.com/nukata/goarith"
)

// GlobalEnv returns a root frame holding the standard procedures and every
// math constant and function, printing to stdout.
func GlobalEnv() *Env {
	return globalEnv(os.Stdout)
}

func globalEnv(w io.Writer) *Env {
	env := &Env{dict: map[Symbol]Value{
		"+":     Proc(add),
		"-":     arith("sub", goarith.Number.Sub),
		"*":     arith("mul", goarith.Number.Mul),
		"/":     Proc(div),
		"%":     Proc(mod),
		"^":     Proc(pow),
		"=":     Proc(eq),
		"eq":    Proc(eq),
		"<":     compare("lt", func(c int) bool { return c < 0 }),
		">":     compare("gt", func(c int) bool { return c > 0 }),
		"<=":    compare("le", func(c int) bool { return c <= 0 }),
		">=":    compare("ge", func(c int) bool { return c >= 0 }),
		"not":   Proc(not),
		"true":  Bool(true),
		"false": Bool(false),
		"print": printer(w),
		"list":  Proc(makelist),
		"len":   Proc(length),
		"cond":  EnvProc(cond),
		"dir":   EnvProc(dir),
	}}
	for k, v := range MathFuncs() {
		env.dict[k] = v
	}
	return env
}

func isNaN(v Value) bool {
	f, ok := v.(Float)
	return ok && math.IsNaN(float64(f))
}

// number converts a numeric value for goarith. Integers travel as *big.Int
// so that results may grow past int64.
func number(name string, v Value) (goarith.Number, error) {
	switch x := v.(type) {
	case Integer:
		return goarith.AsNumber(big.NewInt(int64(x))), nil
	case *big.Int:
		return goarith.AsNumber(new(big.Int).Set(x)), nil
	case BigInt:
		return goarith.AsNumber(new(big.Int).Set(x.Int)), nil
	case Float:
		return goarith.AsNumber(float64(x)), nil
	case Bool:
		if x {
			return goarith.AsNumber(big.NewInt(1)), nil
		}
		return goarith.AsNumber(big.NewInt(0)), nil
	}
	return nil, TypeErrorf("unsupported operand type for %s(): '%s'", name, typeName(v))
}

// fromNumber maps a goarith result back onto Integer, *big.Int or Float.
// Float64 results convert directly so that Inf and NaN survive.
func fromNumber(n goarith.Number) (Value, error) {
	if f, ok := n.(goarith.Float64); ok {
		return Float(f), nil
	}
	s := fmt.Sprint(n)
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ValueErrorf("cannot convert %s to a number", s)
	}
	return normalize(z), nil
}

func normalize(z *big.Int) Value {
	if z.IsInt64() {
		return Integer(z.Int64())
	}
	return z
}

func toBig(v Value) (*big.Int, bool) {
	switch x := v.(type) {
	case Integer:
		return big.NewInt(int64(x)), true
	case *big.Int:
		return new(big.Int).Set(x), true
	case BigInt:
		return new(big.Int).Set(x.Int), true
	case Bool:
		if x {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	}
	return nil, false
}

func toFloat(name string, v Value) (float64, error) {
	switch x := v.(type) {
	case Integer:
		return float64(x), nil
	case Float:
		return float64(x), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	case BigInt:
		f, _ := new(big.Float).SetInt(x.Int).Float64()
		return f, nil
	case Bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	return 0, TypeErrorf("must be real number, not %s, in %s()", typeName(v), name)
}

func arith(name string, op func(a, b goarith.Number) goarith.Number) Proc {
	return func(args []Value) (Value, error) {
		if err := CheckArity(name, args, 2, 2); err != nil {
			return nil, err
		}
		a, err := number(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := number(name, args[1])
		if err != nil {
			return nil, err
		}
		return fromNumber(op(a, b))
	}
}

var numericAdd = arith("add", goarith.Number.Add)

// + also concatenates strings and sequences.
func add(args []Value) (Value, error) {
	if len(args) == 2 {
		switch x := args[0].(type) {
		case String:
			if y, ok := args[1].(String); ok {
				return x + y, nil
			}
		case Sequence:
			if y, ok := args[1].(Sequence); ok {
				out := make(Sequence, 0, len(x)+len(y))
				return append(append(out, x...), y...), nil
			}
		}
	}
	return numericAdd(args)
}

func div(args []Value) (Value, error) {
	if err := CheckArity("truediv", args, 2, 2); err != nil {
		return nil, err
	}
	a, err := toFloat("truediv", args[0])
	if err != nil {
		return nil, err
	}
	b, err := toFloat("truediv", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, newError(ErrZeroDivision, "division by zero")
	}
	return Float(a / b), nil
}

// mod takes the sign of the divisor.
func mod(args []Value) (Value, error) {
	if err := CheckArity("mod", args, 2, 2); err != nil {
		return nil, err
	}
	if a, ok := toBig(args[0]); ok {
		if b, ok := toBig(args[1]); ok {
			if b.Sign() == 0 {
				return nil, newError(ErrZeroDivision, "integer division or modulo by zero")
			}
			r := new(big.Int).Rem(a, b)
			if r.Sign() != 0 && r.Sign() != b.Sign() {
				r.Add(r, b)
			}
			return normalize(r), nil
		}
	}
	a, err := toFloat("mod", args[0])
	if err != nil {
		return nil, err
	}
	b, err := toFloat("mod", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, newError(ErrZeroDivision, "float modulo")
	}
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return Float(r), nil
}

func pow(args []Value) (Value, error) {
	if err := CheckArity("pow", args, 2, 2); err != nil {
		return nil, err
	}
	if a, ok := toBig(args[0]); ok {
		if b, ok := toBig(args[1]); ok && b.Sign() >= 0 {
			return normalize(new(big.Int).Exp(a, b, nil)), nil
		}
	}
	a, err := toFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	b, err := toFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	return Float(math.Pow(a, b)), nil
}

func eq(args []Value) (Value, error) {
	if err := CheckArity("eq", args, 2, 2); err != nil {
		return nil, err
	}
	if isNaN(args[0]) || isNaN(args[1]) {
		return Bool(false), nil
	}
	a, aerr := number("eq", args[0])
	b, berr := number("eq", args[1])
	if aerr == nil && berr == nil {
		return Bool(a.Cmp(b) == 0), nil
	}
	return Bool(reflect.DeepEqual(args[0], args[1])), nil
}

func compare(name string, test func(int) bool) Proc {
	return func(args []Value) (Value, error) {
		if err := CheckArity(name, args, 2, 2); err != nil {
			return nil, err
		}
		if x, ok := args[0].(String); ok {
			if y, ok := args[1].(String); ok {
				return Bool(test(strings.Compare(string(x), string(y)))), nil
			}
		}
		a, err := number(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := number(name, args[1])
		if err != nil {
			return nil, err
		}
		// NaN is unordered; goarith would call it equal
		if isNaN(args[0]) || isNaN(args[1]) {
			return Bool(false), nil
		}
		return Bool(test(a.Cmp(b))), nil
	}
}

func not(args []Value) (Value, error) {
	if err := CheckArity("not", args, 1, 1); err != nil {
		return nil, err
	}
	return Bool(!Truthy(args[0])), nil
}

func printer(w io.Writer) Proc {
	return func(args []Value) (Value, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = Format(arg)
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		return nil, nil
	}
}

func makelist(args []Value) (Value, error) {
	return append(Sequence{}, args...), nil
}

func length(args []Value) (Value, error) {
	if err := CheckArity("len", args, 1, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case Sequence:
		return Integer(len(x)), nil
	case List:
		return Integer(len(x)), nil
	case String:
		return Integer(len([]rune(string(x)))), nil
	}
	return nil, TypeErrorf("object of type '%s' has no len()", typeName(args[0]))
}

// (cond test then [else]) picks a branch and evaluates it again in the
// caller's environment, so a quoted branch runs only when chosen.
func cond(c *Caller, args []Value) (Value, error) {
	if err := CheckArity("cond", args, 2, 3); err != nil {
		return nil, err
	}
	var branch Value = Bool(false)
	switch {
	case Truthy(args[0]):
		branch = args[1]
	case len(args) == 3:
		branch = args[2]
	}
	if e, ok := branch.(Expression); ok {
		return c.Eval(e)
	}
	return branch, nil
}

// (dir) lists the symbols visible to the caller; (dir x) lists the members
// of a module or namespace.
func dir(c *Caller, args []Value) (Value, error) {
	if err := CheckArity("dir", args, 0, 1); err != nil {
		return nil, err
	}
	var names []string
	if len(args) == 0 {
		for _, s := range c.Env.Symbols() {
			names = append(names, string(s))
		}
	} else {
		a, ok := args[0].(interface{ Attrs() []string })
		if !ok {
			return nil, TypeErrorf("dir() of '%s' is not supported", typeName(args[0]))
		}
		names = a.Attrs()
	}
	seq := make(Sequence, len(names))
	for i, n := range names {
		seq[i] = String(n)
	}
	return seq, nil
}
