package lisp

import (
	"context"
	"errors"
)

// ModuleResolver finds the module handle for (import name). A resolver that
// does not know name returns an error matching ErrModuleNotFound.
type ModuleResolver interface {
	Resolve(ctx context.Context, name string) (Value, error)
}

type ResolverFunc func(ctx context.Context, name string) (Value, error)

func (f ResolverFunc) Resolve(ctx context.Context, name string) (Value, error) {
	return f(ctx, name)
}

// resolvers asks each resolver in turn and remembers what was imported, so
// importing a module twice yields the same handle.
type resolvers struct {
	list     []ModuleResolver
	imported map[string]Value
}

func (r *resolvers) add(m ModuleResolver) {
	r.list = append(r.list, m)
}

func (r *resolvers) resolve(ctx context.Context, name string) (Value, error) {
	if v, ok := r.imported[name]; ok {
		return v, nil
	}
	for _, m := range r.list {
		v, err := m.Resolve(ctx, name)
		if errors.Is(err, ErrModuleNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		r.imported[name] = v
		return v, nil
	}
	return nil, ModuleNotFound(name)
}
