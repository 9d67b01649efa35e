package modules

import (
	"os"

	"github.com/deosjr/parens/lisp"
)

func osModule() *lisp.Namespace {
	return lisp.NewNamespace("os", map[lisp.Symbol]lisp.Value{
		"args": lisp.FromGo(os.Args),
		"getenv": strings1("getenv", func(key string) lisp.Value {
			v, ok := os.LookupEnv(key)
			if !ok {
				return nil
			}
			return lisp.String(v)
		}),
		"getwd": lisp.Proc(func(args []lisp.Value) (lisp.Value, error) {
			if err := lisp.CheckArity("getwd", args, 0, 0); err != nil {
				return nil, err
			}
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return lisp.String(wd), nil
		}),
		"hostname": lisp.Proc(func(args []lisp.Value) (lisp.Value, error) {
			if err := lisp.CheckArity("hostname", args, 0, 0); err != nil {
				return nil, err
			}
			h, err := os.Hostname()
			if err != nil {
				return nil, err
			}
			return lisp.String(h), nil
		}),
		"pathsep": lisp.String(string(os.PathSeparator)),
	})
}
