package lisp

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvalProgram(t *testing.T) {
	for i, tt := range []struct {
		source string
		values []Value
		errs   int
	}{
		{
			source: "(define x (+ 2 3)) (if x 1 0)",
			values: []Value{Integer(5), Integer(1)},
		},
		{
			source: "(define a 1) (undefined) ) (define b 2)",
			values: []Value{Integer(1), Integer(2)},
			errs:   2,
		},
		{
			source: `"oops`,
			values: []Value{},
			errs:   1,
		},
		{
			source: "",
			values: []Value{},
		},
		{
			source: "(define c 3",
			values: []Value{},
			errs:   1,
		},
	} {
		l := New()
		values, errs := l.EvalProgram(context.Background(), tt.source)
		if diff := cmp.Diff(tt.values, values); diff != "" {
			t.Errorf("%d) mismatch (-want +got):\n%s", i, diff)
		}
		if len(errs) != tt.errs {
			t.Errorf("%d) got %d errors %v want %d", i, len(errs), errs, tt.errs)
		}
	}
}

func TestEvalProgramDefinesPersist(t *testing.T) {
	l := New()
	if _, errs := l.EvalProgram(context.Background(), "(define x (+ 2 3))"); len(errs) > 0 {
		t.Fatal(errs)
	}
	if v, _ := l.Env.Lookup("x"); v != Integer(5) {
		t.Errorf("x = %v", v)
	}
}

func TestExec(t *testing.T) {
	l := New()
	var out bytes.Buffer
	last := l.Exec(context.Background(), &out, `(define x 2) (+ x 1) "hi" (undefined) (if 0 1)`)
	want := "R: 2\nR: 3\nR: hi\nNameError: no variable named undefined\nNR~\nNR~\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if last != Bool(false) {
		t.Errorf("last = %v", last)
	}
}

func TestExecCancelled(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	l.Exec(ctx, &out, "(define x 1) (define y 2)")
	if got := out.String(); got != "Aborted with keyboard.\nNR~\n" {
		t.Errorf("got %q", got)
	}
}

type countingResolver struct {
	name  string
	calls int
}

func (r *countingResolver) Resolve(ctx context.Context, name string) (Value, error) {
	if name != r.name {
		return nil, ModuleNotFound(name)
	}
	r.calls++
	return NewNamespace(name, map[Symbol]Value{"answer": Integer(42)}), nil
}

func TestImport(t *testing.T) {
	calc := &countingResolver{name: "calc"}
	l := New(WithResolver(calc))
	for i, tt := range []struct {
		input string
		want  string
	}{
		{input: "(import calc)", want: "<module 'calc'>"},
		{input: `(import "calc")`, want: "<module 'calc'>"},
		{input: "(define m (import calc))", want: "<module 'calc'>"},
		{input: "(. m answer)", want: "42"},
		{input: "(. (import calc) answer)", want: "42"},
	} {
		v, err := l.Eval(tt.input)
		if err != nil {
			t.Errorf("%d) eval error %v", i, err)
			continue
		}
		if got := Repr(v); got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
	if calc.calls != 1 {
		t.Errorf("resolver called %d times, want 1", calc.calls)
	}
}

func TestImportSymbolIsLiteral(t *testing.T) {
	l := New(WithResolver(&countingResolver{name: "calc"}))
	if _, err := l.Eval(`(define name "calc")`); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Eval("(import name)"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("got %v want ModuleNotFoundError", err)
	}
}

func TestResolverOrder(t *testing.T) {
	boom := errors.New("boom")
	l := New()
	l.AddResolver(ResolverFunc(func(ctx context.Context, name string) (Value, error) {
		if name == "broken" {
			return nil, boom
		}
		return nil, ModuleNotFound(name)
	}))
	l.AddResolver(&countingResolver{name: "calc"})
	l.AddResolver(&countingResolver{name: "broken"})

	if _, err := l.Eval("(import calc)"); err != nil {
		t.Errorf("calc: %v", err)
	}
	if _, err := l.Eval("(import broken)"); !errors.Is(err, boom) {
		t.Errorf("got %v want boom", err)
	}
}
