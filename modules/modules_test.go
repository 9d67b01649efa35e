package modules

import (
	"errors"
	"testing"

	"github.com/deosjr/parens/lisp"
)

func TestModules(t *testing.T) {
	t.Setenv("PARENS_TEST_VAR", "set")
	l := lisp.New()
	Load(l)

	for i, tt := range []struct {
		input string
		want  string
	}{
		{input: "(import math)", want: "<module 'math'>"},
		{input: "((. (import math) sqrt) 16)", want: "4.0"},
		{input: "(. (import math) pi)", want: "3.141592653589793"},
		{input: "(define s (import strings))", want: "<module 'strings'>"},
		{input: `((. s upper) "abc")`, want: `"ABC"`},
		{input: `((. s split) "a,b,c" ",")`, want: `("a" "b" "c")`},
		{input: `((. s join) (list "a" 1 2.5) "-")`, want: `"a-1-2.5"`},
		{input: `((. s join) ((. s fields) " x  y ") "")`, want: `"xy"`},
		{input: `((. s contains) "parens" "ren")`, want: "true"},
		{input: `((. s index) "parens" "z")`, want: "-1"},
		{input: `((. s replace) "a.b.c" "." "/")`, want: `"a/b/c"`},
		{input: `((. s repeat) "ab" 3)`, want: `"ababab"`},
		{input: `((. (import os) getenv) "PARENS_TEST_VAR")`, want: `"set"`},
		{input: `((. (import os) getenv) "PARENS_TEST_UNSET_VAR")`, want: "nil"},
	} {
		v, err := l.Eval(tt.input)
		if err != nil {
			t.Errorf("%d) eval error %v", i, err)
			continue
		}
		if got := lisp.Repr(v); got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
}

func TestModuleErrors(t *testing.T) {
	l := lisp.New(lisp.WithResolver(Resolver()))
	for i, tt := range []struct {
		input string
		kind  error
	}{
		{input: "(import nope)", kind: lisp.ErrModuleNotFound},
		{input: "(. (import strings) nope)", kind: lisp.ErrAttribute},
		{input: `((. (import strings) upper) 5)`, kind: lisp.ErrName},
		{input: `((. (import strings) upper) "a" "b")`, kind: lisp.ErrName},
		{input: `((. (import strings) repeat) "a" -1)`, kind: lisp.ErrValue},
	} {
		_, err := l.Eval(tt.input)
		if !errors.Is(err, tt.kind) {
			t.Errorf("%d) got %v want %v", i, err, tt.kind)
		}
	}
}

func TestNames(t *testing.T) {
	for _, name := range Names() {
		if _, ok := native[name]; !ok {
			t.Errorf("%s listed but not resolvable", name)
		}
	}
	if len(Names()) != len(native) {
		t.Errorf("Names() = %v, %d modules registered", Names(), len(native))
	}
}
