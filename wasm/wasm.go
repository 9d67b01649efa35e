// Package wasm lets (import name) load WebAssembly modules. Exported
// functions become procedures and exported globals become attributes.
package wasm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/deosjr/parens/lisp"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Resolver finds name.wasm in its search paths and instantiates it once in
// a shared runtime.
type Resolver struct {
	runtime wazero.Runtime
	paths   []string
	log     *slog.Logger
	stdout  io.Writer

	mu      sync.Mutex
	modules map[string]*Module
}

func NewResolver(ctx context.Context, paths []string, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)
	return &Resolver{
		runtime: r,
		paths:   paths,
		log:     log,
		stdout:  os.Stdout,
		modules: map[string]*Module{},
	}
}

// Load registers a resolver over paths with l and returns it so the caller
// can Close it.
func Load(ctx context.Context, l lisp.Lisp, log *slog.Logger, paths ...string) *Resolver {
	r := NewResolver(ctx, paths, log)
	l.AddResolver(r)
	return r
}

func (r *Resolver) Resolve(ctx context.Context, name string) (lisp.Value, error) {
	r.mu.Lock()
	m, ok := r.modules[name]
	r.mu.Unlock()
	if ok {
		return m, nil
	}
	for _, dir := range r.paths {
		path := filepath.Join(dir, name+".wasm")
		code, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		r.log.Debug("loading wasm module", slog.String("name", name), slog.String("path", path))
		m, err := r.Instantiate(ctx, name, code)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, lisp.ModuleNotFound(name)
}

// Instantiate compiles and instantiates code under name.
func (r *Resolver) Instantiate(ctx context.Context, name string, code []byte) (*Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.modules[name]; ok {
		return m, nil
	}
	compiled, err := r.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("compile wasm module %s: %w", name, err)
	}
	cfg := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions("_initialize").
		WithStdout(r.stdout).
		WithStderr(os.Stderr)
	mod, err := r.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("instantiate wasm module %s: %w", name, err)
	}
	funcs := make([]string, 0, len(compiled.ExportedFunctions()))
	for fn := range compiled.ExportedFunctions() {
		funcs = append(funcs, fn)
	}
	sort.Strings(funcs)
	m := &Module{name: name, mod: mod, funcs: funcs}
	r.modules[name] = m
	r.log.Debug("instantiated wasm module", slog.String("name", name), slog.Int("functions", len(funcs)))
	return m, nil
}

// Close releases the runtime and every module instantiated in it.
func (r *Resolver) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Module is the handle import returns for a WebAssembly module.
type Module struct {
	name  string
	mod   api.Module
	funcs []string
}

func (m *Module) Attr(name string) (lisp.Value, error) {
	if fn := m.mod.ExportedFunction(name); fn != nil {
		return function(m.name+"."+name, fn), nil
	}
	if g := m.mod.ExportedGlobal(name); g != nil {
		return decode(g.Type(), g.Get())
	}
	return nil, lisp.AttributeErrorf("module '%s' has no attribute '%s'", m.name, name)
}

// Attrs lists the exported functions.
func (m *Module) Attrs() []string {
	return m.funcs
}

func (m *Module) String() string {
	return "<wasm module '" + m.name + "'>"
}

func function(name string, fn api.Function) lisp.EnvProc {
	def := fn.Definition()
	params, results := def.ParamTypes(), def.ResultTypes()
	return func(c *lisp.Caller, args []lisp.Value) (lisp.Value, error) {
		if err := lisp.CheckArity(name, args, len(params), len(params)); err != nil {
			return nil, err
		}
		stack := make([]uint64, len(args))
		for i, arg := range args {
			v, err := encode(name, i, params[i], arg)
			if err != nil {
				return nil, err
			}
			stack[i] = v
		}
		out, err := fn.Call(c.Context(), stack...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		values := make(lisp.Sequence, len(out))
		for i, o := range out {
			v, err := decode(results[i], o)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		switch len(values) {
		case 0:
			return nil, nil
		case 1:
			return values[0], nil
		}
		return values, nil
	}
}
