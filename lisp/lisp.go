package lisp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Lisp is one interpreter session: a root environment plus the module
// resolvers consulted by import. It is not safe for concurrent use.
type Lisp struct {
	Env     *Env
	modules *resolvers
	log     *slog.Logger
}

type Option func(*options)

type options struct {
	log       *slog.Logger
	stdout    io.Writer
	resolvers []ModuleResolver
}

// WithLogger sets the logger used for diagnostics. The default discards.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithStdout redirects the print procedure.
func WithStdout(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

func WithResolver(r ModuleResolver) Option {
	return func(o *options) { o.resolvers = append(o.resolvers, r) }
}

func New(opts ...Option) Lisp {
	o := options{
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return Lisp{
		Env:     globalEnv(o.stdout),
		modules: &resolvers{list: o.resolvers, imported: map[string]Value{}},
		log:     o.log,
	}
}

// AddResolver appends a module resolver; earlier resolvers win.
func (l Lisp) AddResolver(r ModuleResolver) {
	l.modules.add(r)
}

// Session returns an interpreter sharing this one's resolvers but with a
// copy of its environment, so its defines stay private.
func (l Lisp) Session() Lisp {
	return Lisp{Env: l.Env.Copy(), modules: l.modules, log: l.log}
}

// Evaluate evaluates e in env. Cancelling ctx aborts evaluation.
func (l Lisp) Evaluate(ctx context.Context, e Expression, env *Env) (Value, error) {
	ev := &evaluator{ctx: ctx, modules: l.modules}
	return ev.eval(e, env)
}

func (l Lisp) EvalExpr(e Expression) (Value, error) {
	return l.Evaluate(context.Background(), e, l.Env)
}

// Eval evaluates every expression in input and returns the last value,
// stopping at the first error.
func (l Lisp) Eval(input string) (Value, error) {
	sexprs, err := Multiparse(input)
	if err != nil {
		return nil, err
	}
	var v Value
	for _, e := range sexprs {
		v, err = l.EvalExpr(e)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// forms reads and evaluates the top-level forms of source one at a time,
// reporting each outcome to f. A failing form does not stop the next one.
func (l Lisp) forms(ctx context.Context, source string, f func(Value, error)) {
	tokens, err := Lex(source)
	if err != nil {
		f(nil, err)
		return
	}
	r := NewReader(tokens)
	for i := 0; r.Len() > 0; i++ {
		e, err := r.Read()
		if err == nil {
			var v Value
			v, err = l.Evaluate(ctx, e, l.Env)
			if err == nil {
				f(v, nil)
				continue
			}
		}
		l.log.Debug("form failed", slog.Int("form", i), slog.Any("error", err))
		f(nil, err)
		if ctx.Err() != nil {
			return
		}
	}
}

// EvalProgram evaluates every top-level form of source in order against the
// session's root environment. Each form is isolated: its error is recorded
// and evaluation continues with the next form.
func (l Lisp) EvalProgram(ctx context.Context, source string) ([]Value, []error) {
	values := []Value{}
	var errs []error
	l.forms(ctx, source, func(v Value, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		values = append(values, v)
	})
	return values, errs
}

// Exec runs source like EvalProgram, writing for each form either
// "R: <value>" or, after any error message, "NR~" when there is no result.
// It returns the value of the last form.
func (l Lisp) Exec(ctx context.Context, w io.Writer, source string) Value {
	var last Value
	l.forms(ctx, source, func(v Value, err error) {
		last = v
		switch {
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(w, "Aborted with keyboard.")
		case err != nil:
			fmt.Fprintln(w, err)
		}
		if NoResult(v) {
			fmt.Fprintln(w, "NR~")
			return
		}
		fmt.Fprintf(w, "R: %s\n", Format(v))
	})
	return last
}

// NoResult reports whether a form produced nothing worth printing:
// no value at all, or the false literal.
func NoResult(v Value) bool {
	if v == nil {
		return true
	}
	b, ok := v.(Bool)
	return ok && !bool(b)
}
