package modules

import (
	"strings"

	"github.com/deosjr/parens/lisp"
)

func stringsModule() *lisp.Namespace {
	return lisp.NewNamespace("strings", map[lisp.Symbol]lisp.Value{
		"upper": strings1("upper", func(s string) lisp.Value { return lisp.String(strings.ToUpper(s)) }),
		"lower": strings1("lower", func(s string) lisp.Value { return lisp.String(strings.ToLower(s)) }),
		"trim":  strings1("trim", func(s string) lisp.Value { return lisp.String(strings.TrimSpace(s)) }),
		"fields": strings1("fields", func(s string) lisp.Value {
			return lisp.FromGo(strings.Fields(s))
		}),
		"split": strings2("split", func(s, sep string) lisp.Value {
			return lisp.FromGo(strings.Split(s, sep))
		}),
		"contains":  strings2("contains", func(s, sub string) lisp.Value { return lisp.Bool(strings.Contains(s, sub)) }),
		"hasprefix": strings2("hasprefix", func(s, p string) lisp.Value { return lisp.Bool(strings.HasPrefix(s, p)) }),
		"hassuffix": strings2("hassuffix", func(s, p string) lisp.Value { return lisp.Bool(strings.HasSuffix(s, p)) }),
		"index":     strings2("index", func(s, sub string) lisp.Value { return lisp.Integer(strings.Index(s, sub)) }),
		"join":      lisp.Proc(join),
		"replace":   lisp.Proc(replace),
		"repeat":    lisp.Proc(repeat),
	})
}

// (join seq sep)
func join(args []lisp.Value) (lisp.Value, error) {
	if err := lisp.CheckArity("join", args, 2, 2); err != nil {
		return nil, err
	}
	seq, ok := args[0].(lisp.Sequence)
	if !ok {
		return nil, lisp.TypeErrorf("join() argument 1 must be a list, not %s", lisp.Repr(args[0]))
	}
	sep, err := str("join", args, 1)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = lisp.Format(v)
	}
	return lisp.String(strings.Join(parts, sep)), nil
}

// (replace s old new)
func replace(args []lisp.Value) (lisp.Value, error) {
	if err := lisp.CheckArity("replace", args, 3, 3); err != nil {
		return nil, err
	}
	var s [3]string
	for i := range s {
		v, err := str("replace", args, i)
		if err != nil {
			return nil, err
		}
		s[i] = v
	}
	return lisp.String(strings.ReplaceAll(s[0], s[1], s[2])), nil
}

// (repeat s n)
func repeat(args []lisp.Value) (lisp.Value, error) {
	if err := lisp.CheckArity("repeat", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := str("repeat", args, 0)
	if err != nil {
		return nil, err
	}
	n, err := integer("repeat", args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, lisp.ValueErrorf("repeat() count must be non-negative")
	}
	return lisp.String(strings.Repeat(s, n)), nil
}
