package lisp

import (
	"context"
	"math/big"
	"sort"
)

// Expression is a node in a parsed program. The set of expressions is closed:
// Integer, BigInt, Float, String, Symbol and List.
type Expression interface {
	String() string
	expression()
}

type Integer int64

// BigInt is an integer literal too wide for int64. It evaluates to a
// *big.Int, the same representation arithmetic grows into.
type BigInt struct {
	*big.Int
}

type Float float64

// String is literal text. The reader never produces one directly; evaluating
// a string-literal Symbol does.
type String string

// Symbol is an identifier. A symbol whose first byte is a double quote is a
// string literal that still carries its quotes.
type Symbol string

type List []Expression

func (Integer) expression() {}
func (BigInt) expression()  {}
func (Float) expression()   {}
func (String) expression()  {}
func (Symbol) expression()  {}
func (List) expression()    {}

// IsStringLiteral reports whether s was read from a quoted token.
func (s Symbol) IsStringLiteral() bool {
	return len(s) > 0 && s[0] == '"'
}

func (s Symbol) unquote() string {
	if len(s) < 2 {
		return ""
	}
	return string(s[1 : len(s)-1])
}

// Value is anything evaluation can produce: an Expression, a Bool, a
// Sequence, a *big.Int, a procedure, a module handle or an opaque host value.
type Value = any

type Bool bool

// Sequence is an evaluated list of values.
type Sequence []Value

// Proc is a host procedure receiving its evaluated arguments.
type Proc func(args []Value) (Value, error)

// EnvProc is a host procedure that also needs the caller's environment.
type EnvProc func(c *Caller, args []Value) (Value, error)

// Caller is handed to an EnvProc on every call.
type Caller struct {
	Env *Env
	ev  *evaluator
}

// Eval evaluates e in the caller's environment.
func (c *Caller) Eval(e Expression) (Value, error) {
	return c.ev.eval(e, c.Env)
}

// Context returns the context of the top-level form being evaluated.
func (c *Caller) Context() context.Context {
	return c.ev.ctx
}

// Attributer is implemented by values that support (. value name).
type Attributer interface {
	Attr(name string) (Value, error)
}

// Namespace is a module handle backed by a fixed set of members.
type Namespace struct {
	Name    string
	Members map[Symbol]Value
}

func NewNamespace(name string, members map[Symbol]Value) *Namespace {
	return &Namespace{Name: name, Members: members}
}

func (n *Namespace) Attr(name string) (Value, error) {
	if v, ok := n.Members[Symbol(name)]; ok {
		return v, nil
	}
	return nil, AttributeErrorf("module '%s' has no attribute '%s'", n.Name, name)
}

// Attrs lists member names in sorted order.
func (n *Namespace) Attrs() []string {
	names := make([]string, 0, len(n.Members))
	for k := range n.Members {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

func (n *Namespace) String() string {
	return "<module '" + n.Name + "'>"
}
