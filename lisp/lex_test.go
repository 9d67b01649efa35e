package lisp

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLex(t *testing.T) {
	for i, tt := range []struct {
		input string
		want  []string
	}{
		{
			input: "",
			want:  []string{},
		},
		{
			input: "   \t\n",
			want:  []string{},
		},
		{
			input: "(+ 1 2)",
			want:  []string{"(", "+", "1", "2", ")"},
		},
		{
			// tokens are whitespace and paren delimited only
			input: "(+1 2)",
			want:  []string{"(", "+1", "2", ")"},
		},
		{
			input: "  (a\t(b\nc))  ",
			want:  []string{"(", "a", "(", "b", "c", ")", ")"},
		},
		{
			input: `"hello"`,
			want:  []string{`"hello"`},
		},
		{
			input: `(print "hello (world)")`,
			want:  []string{"(", "print", `"hello (world)"`, ")"},
		},
		{
			input: `ab"cd"ef`,
			want:  []string{"ab", `"cd"`, "ef"},
		},
		{
			input: `""`,
			want:  []string{`""`},
		},
		{
			input: "(define x (+ 2 3)) (if x 1 0)",
			want:  []string{"(", "define", "x", "(", "+", "2", "3", ")", ")", "(", "if", "x", "1", "0", ")"},
		},
	} {
		got, err := Lex(tt.input)
		if err != nil {
			t.Errorf("%d) lex error %v", i, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%d) mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestLexQuoteMismatch(t *testing.T) {
	for _, input := range []string{`"hello`, `(print "a" "b)`, `"`} {
		_, err := Lex(input)
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: got %v want SyntaxError", input, err)
			continue
		}
		if err.Error() != "SyntaxError: quote mismatch" {
			t.Errorf("%q: got %q", input, err.Error())
		}
	}
}

func TestLexIdempotent(t *testing.T) {
	for _, input := range []string{
		"(define x (+ 2 3)) (if x 1 0)",
		"((a)(b))",
		"(+1 2)",
		"  \n(. obj\tattr)\n",
		"",
	} {
		once, err := Lex(input)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := Lex(strings.Join(once, " "))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("%q not idempotent (-once +twice):\n%s", input, diff)
		}
	}
}
