package lisp

import (
	"math"
	"math/big"
)

// MathFuncs returns the math constants and functions bound in the root frame
// and exported by the native math module.
func MathFuncs() map[Symbol]Value {
	return map[Symbol]Value{
		"pi":  Float(math.Pi),
		"e":   Float(math.E),
		"tau": Float(2 * math.Pi),
		"inf": Float(math.Inf(1)),
		"nan": Float(math.NaN()),

		"sqrt":    unary("sqrt", math.Sqrt),
		"exp":     unary("exp", math.Exp),
		"log10":   unary("log10", math.Log10),
		"log2":    unary("log2", math.Log2),
		"sin":     unary("sin", math.Sin),
		"cos":     unary("cos", math.Cos),
		"tan":     unary("tan", math.Tan),
		"asin":    unary("asin", math.Asin),
		"acos":    unary("acos", math.Acos),
		"atan":    unary("atan", math.Atan),
		"sinh":    unary("sinh", math.Sinh),
		"cosh":    unary("cosh", math.Cosh),
		"tanh":    unary("tanh", math.Tanh),
		"fabs":    unary("fabs", math.Abs),
		"degrees": unary("degrees", func(x float64) float64 { return x * 180 / math.Pi }),
		"radians": unary("radians", func(x float64) float64 { return x * math.Pi / 180 }),

		"pow":      binary("pow", math.Pow),
		"atan2":    binary("atan2", math.Atan2),
		"hypot":    binary("hypot", math.Hypot),
		"fmod":     binary("fmod", math.Mod),
		"copysign": binary("copysign", math.Copysign),

		"floor": integral("floor", math.Floor),
		"ceil":  integral("ceil", math.Ceil),
		"trunc": integral("trunc", math.Trunc),

		"log":       Proc(logarithm),
		"isnan":     predicate("isnan", func(x float64) bool { return math.IsNaN(x) }),
		"isinf":     predicate("isinf", func(x float64) bool { return math.IsInf(x, 0) }),
		"factorial": Proc(factorial),
		"gcd":       Proc(gcd),
	}
}

// a NaN out of a non-NaN input is a domain error
func unary(name string, f func(float64) float64) Proc {
	return func(args []Value) (Value, error) {
		if err := CheckArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		r := f(x)
		if math.IsNaN(r) && !math.IsNaN(x) {
			return nil, ValueErrorf("math domain error")
		}
		return Float(r), nil
	}
}

func binary(name string, f func(float64, float64) float64) Proc {
	return func(args []Value) (Value, error) {
		if err := CheckArity(name, args, 2, 2); err != nil {
			return nil, err
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat(name, args[1])
		if err != nil {
			return nil, err
		}
		r := f(x, y)
		if math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y) {
			return nil, ValueErrorf("math domain error")
		}
		return Float(r), nil
	}
}

func predicate(name string, f func(float64) bool) Proc {
	return func(args []Value) (Value, error) {
		if err := CheckArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return Bool(f(x)), nil
	}
}

// integral rounds to an integer value, which may outgrow int64.
func integral(name string, f func(float64) float64) Proc {
	return func(args []Value) (Value, error) {
		if err := CheckArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		if z, ok := toBig(args[0]); ok {
			return normalize(z), nil
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		r := f(x)
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return nil, ValueErrorf("cannot convert float %s to integer", formatFloat(r))
		}
		z, _ := big.NewFloat(r).Int(nil)
		return normalize(z), nil
	}
}

// (log x [base])
func logarithm(args []Value) (Value, error) {
	if err := CheckArity("log", args, 1, 2); err != nil {
		return nil, err
	}
	x, err := toFloat("log", args[0])
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, ValueErrorf("math domain error")
	}
	r := math.Log(x)
	if len(args) == 2 {
		base, err := toFloat("log", args[1])
		if err != nil {
			return nil, err
		}
		if base <= 0 || base == 1 {
			return nil, ValueErrorf("math domain error")
		}
		r /= math.Log(base)
	}
	return Float(r), nil
}

func factorial(args []Value) (Value, error) {
	if err := CheckArity("factorial", args, 1, 1); err != nil {
		return nil, err
	}
	n, ok := args[0].(Integer)
	if !ok {
		return nil, TypeErrorf("factorial() only accepts integral values, not %s", typeName(args[0]))
	}
	if n < 0 {
		return nil, ValueErrorf("factorial() not defined for negative values")
	}
	if n == 0 {
		return Integer(1), nil
	}
	return normalize(new(big.Int).MulRange(1, int64(n))), nil
}

func gcd(args []Value) (Value, error) {
	if err := CheckArity("gcd", args, 2, 2); err != nil {
		return nil, err
	}
	a, ok := toBig(args[0])
	if !ok {
		return nil, TypeErrorf("gcd() only accepts integers, not %s", typeName(args[0]))
	}
	b, ok := toBig(args[1])
	if !ok {
		return nil, TypeErrorf("gcd() only accepts integers, not %s", typeName(args[1]))
	}
	return normalize(new(big.Int).GCD(nil, nil, a.Abs(a), b.Abs(b))), nil
}
