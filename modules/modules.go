// Package modules provides the Go-native modules reachable through import.
package modules

import (
	"context"

	"github.com/deosjr/parens/lisp"
)

var native = map[string]func() *lisp.Namespace{
	"math":    mathModule,
	"strings": stringsModule,
	"os":      osModule,
}

// Names lists the native modules in a stable order.
func Names() []string {
	return []string{"math", "os", "strings"}
}

// Resolver resolves the native module names. Each import builds a fresh
// namespace; the interpreter caches it per session.
func Resolver() lisp.ModuleResolver {
	return lisp.ResolverFunc(func(ctx context.Context, name string) (lisp.Value, error) {
		mod, ok := native[name]
		if !ok {
			return nil, lisp.ModuleNotFound(name)
		}
		return mod(), nil
	})
}

// Load makes the native modules importable from l.
func Load(l lisp.Lisp) {
	l.AddResolver(Resolver())
}

func mathModule() *lisp.Namespace {
	return lisp.NewNamespace("math", lisp.MathFuncs())
}

func str(name string, args []lisp.Value, i int) (string, error) {
	s, ok := args[i].(lisp.String)
	if !ok {
		return "", lisp.TypeErrorf("%s() argument %d must be str, not %s", name, i+1, lisp.Repr(args[i]))
	}
	return string(s), nil
}

func integer(name string, args []lisp.Value, i int) (int, error) {
	n, ok := args[i].(lisp.Integer)
	if !ok {
		return 0, lisp.TypeErrorf("%s() argument %d must be int, not %s", name, i+1, lisp.Repr(args[i]))
	}
	return int(n), nil
}

func strings1(name string, f func(string) lisp.Value) lisp.Proc {
	return func(args []lisp.Value) (lisp.Value, error) {
		if err := lisp.CheckArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		s, err := str(name, args, 0)
		if err != nil {
			return nil, err
		}
		return f(s), nil
	}
}

func strings2(name string, f func(a, b string) lisp.Value) lisp.Proc {
	return func(args []lisp.Value) (lisp.Value, error) {
		if err := lisp.CheckArity(name, args, 2, 2); err != nil {
			return nil, err
		}
		a, err := str(name, args, 0)
		if err != nil {
			return nil, err
		}
		b, err := str(name, args, 1)
		if err != nil {
			return nil, err
		}
		return f(a, b), nil
	}
}
