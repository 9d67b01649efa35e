package lisp

import (
	"errors"
	"math/big"
	"os"
	"strconv"
)

// ParseFile slurps in the entire file and returns its top-level expressions.
func ParseFile(filename string) ([]Expression, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Multiparse(string(b))
}

// Multiparse reads every top-level expression in program, stopping at the
// first error.
func Multiparse(program string) ([]Expression, error) {
	tokens, err := Lex(program)
	if err != nil {
		return nil, err
	}
	r := NewReader(tokens)
	list := []Expression{}
	for r.Len() > 0 {
		e, err := r.Read()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, nil
}

// Parse reads the first expression in program.
func Parse(program string) (Expression, error) {
	tokens, err := Lex(program)
	if err != nil {
		return nil, err
	}
	return NewReader(tokens).Read()
}

func mustParse(program string) Expression {
	p, err := Parse(program)
	if err != nil {
		panic(err)
	}
	return p
}

// Reader turns tokens into expressions, consuming them from the front.
type Reader struct {
	tokens []string
}

func NewReader(tokens []string) *Reader {
	return &Reader{tokens: tokens}
}

// Len is the number of tokens not yet consumed.
func (r *Reader) Len() int {
	return len(r.tokens)
}

func (r *Reader) pop() string {
	token := r.tokens[0]
	r.tokens = r.tokens[1:]
	return token
}

// Read consumes one expression. Every call consumes at least one token,
// even when it fails.
func (r *Reader) Read() (Expression, error) {
	if len(r.tokens) == 0 {
		return nil, syntaxErrorf("unexpected end of input")
	}
	switch token := r.pop(); token {
	case "(":
		list := List{}
		for {
			if len(r.tokens) == 0 {
				return nil, incomplete("missing closing parenthesis")
			}
			if r.tokens[0] == ")" {
				r.pop()
				return list, nil
			}
			e, err := r.Read()
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
	case ")":
		return nil, syntaxErrorf("unexpected closing parenthesis")
	default:
		return Atom(token), nil
	}
}

// Atom classifies a token: integer, then float, then symbol. Integers past
// int64 are read exactly as BigInt; floats past float64 read as ±Inf.
// String literals stay symbols with their quotes until evaluation.
func Atom(token string) Expression {
	n, err := strconv.ParseInt(token, 10, 64)
	if err == nil {
		return Integer(n)
	}
	if errors.Is(err, strconv.ErrRange) {
		if z, ok := new(big.Int).SetString(token, 10); ok {
			return BigInt{z}
		}
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return Float(f)
	}
	return Symbol(token)
}
