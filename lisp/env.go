package lisp

import "sort"

// Env is one frame of the environment chain.
type Env struct {
	dict  map[Symbol]Value
	outer *Env
}

// NewEnv returns an empty frame whose lookups fall back to outer.
func NewEnv(outer *Env) *Env {
	return &Env{dict: map[Symbol]Value{}, outer: outer}
}

func (e *Env) find(s Symbol) (*Env, bool) {
	if _, ok := e.dict[s]; ok {
		return e, true
	}
	if e.outer == nil {
		return nil, false
	}
	return e.outer.find(s)
}

// Lookup walks from this frame to the root.
func (e *Env) Lookup(s Symbol) (Value, bool) {
	ed, ok := e.find(s)
	if !ok {
		return nil, false
	}
	return ed.dict[s], true
}

// Add binds s in this frame, overwriting any previous binding.
func (e *Env) Add(s Symbol, v Value) {
	e.dict[s] = v
}

func (e *Env) AddBuiltin(s Symbol, f Proc) {
	e.dict[s] = f
}

func (e *Env) AddEnvBuiltin(s Symbol, f EnvProc) {
	e.dict[s] = f
}

// Root returns the outermost frame.
func (e *Env) Root() *Env {
	for e.outer != nil {
		e = e.outer
	}
	return e
}

// Symbols lists every symbol visible from this frame, sorted.
func (e *Env) Symbols() []Symbol {
	seen := map[Symbol]bool{}
	for f := e; f != nil; f = f.outer {
		for s := range f.dict {
			seen[s] = true
		}
	}
	out := make([]Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Copy duplicates the whole chain so that defines in the copy do not leak
// into the original. Values themselves are shared.
func (e *Env) Copy() *Env {
	if e == nil {
		return nil
	}
	m := make(map[Symbol]Value, len(e.dict))
	for k, v := range e.dict {
		m[k] = v
	}
	return &Env{dict: m, outer: e.outer.Copy()}
}
