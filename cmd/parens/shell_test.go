package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deosjr/parens/lisp"
	"github.com/google/go-cmp/cmp"
)

func TestShell(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.lisp")
	if err := os.WriteFile(script, []byte("(define r 2)\n(* r 3)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	sh := &shell{l: lisp.New(), out: &out}
	for i, tt := range []struct {
		line string
		want string
	}{
		{line: "(+ 1 2)", want: "R: 3\n"},
		{line: "(define x 5) (if 0 x)", want: "R: 5\nNR~\n"},
		{line: "_EXEC (* x 2)", want: "R: 10\n"},
		{line: "_LEX (+ 1 \"a b\")", want: `["(", "+", "1", "\"a b\"", ")"]` + "\n"},
		{line: "_PARSE (a (b)) c", want: "(a (b))\nc\n"},
		{line: "_PARSE (a", want: "SyntaxError: missing closing parenthesis\n"},
		{line: "_LOAD " + script, want: "R: 2\nR: 6\n"},
		{line: "_LOAD " + filepath.Join(dir, "nope.lisp"), want: "_LOAD FAIL: "},
		{line: "_NOPE", want: "*** Unknown syntax: _NOPE\n"},
		{line: "help _LEX", want: "Just lex a string, resulting in a list of tokens.\n"},
		{line: "? _FOO", want: "*** No help on _FOO\n"},
		{line: "?", want: "Documented commands (type help <topic>):\n_EXEC  _LEX  _LOAD  _PARSE\n"},
		{line: "   ", want: ""},
		{line: "(nope)", want: "NameError: no variable named nope\nNR~\n"},
	} {
		out.Reset()
		sh.handle(context.Background(), tt.line)
		if !strings.HasPrefix(out.String(), tt.want) {
			t.Errorf("%d) %q: got %q want %q", i, tt.line, out.String(), tt.want)
		}
	}
	if v, _ := sh.l.Env.Lookup("r"); v != lisp.Integer(2) {
		t.Errorf("_LOAD did not define r: %v", v)
	}
}

func TestComplete(t *testing.T) {
	l := lisp.New()
	l.Env.Add("zebra", lisp.Integer(1))
	l.Env.Add("zest", lisp.Integer(2))
	sh := &shell{l: l}
	for _, tt := range []struct {
		line string
		want []string
	}{
		{line: "(+ 1 ze", want: []string{"(+ 1 zebra", "(+ 1 zest"}},
		{line: "(zeb", want: []string{"(zebra"}},
		{line: "_LO", want: []string{"_LOAD"}},
		{line: "(", want: nil},
	} {
		if diff := cmp.Diff(tt.want, sh.complete(tt.line)); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}
