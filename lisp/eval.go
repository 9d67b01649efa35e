package lisp

import (
	"context"
	"fmt"
	"math/big"
)

type evaluator struct {
	ctx     context.Context
	modules *resolvers
}

func (ev *evaluator) eval(e Expression, env *Env) (Value, error) {
	if err := ev.ctx.Err(); err != nil {
		return nil, err
	}
	switch x := e.(type) {
	case Symbol:
		if x.IsStringLiteral() {
			return String(x.unquote()), nil
		}
		v, ok := env.Lookup(x)
		if !ok {
			return nil, nameErrorf("no variable named %s", x)
		}
		return v, nil
	case Integer, Float, String:
		return x, nil
	case BigInt:
		return new(big.Int).Set(x.Int), nil
	case List:
		return ev.evalList(x, env)
	}
	return nil, fmt.Errorf("cannot evaluate %T", e)
}

func (ev *evaluator) evalList(list List, env *Env) (Value, error) {
	if len(list) == 0 {
		return Sequence{}, nil
	}
	// special forms rely on their args not being evaluated first
	if s, ok := list[0].(Symbol); ok {
		switch s {
		case ".":
			return ev.evalDot(list, env)
		case "if":
			return ev.evalIf(list, env)
		case "define":
			return ev.evalDefine(list, env)
		case "import":
			return ev.evalImport(list, env)
		case "quote":
			if len(list) != 2 {
				return Bool(false), nil
			}
			return list[1], nil
		}
	}
	return ev.apply(list, env)
}

// (. parent child)
func (ev *evaluator) evalDot(list List, env *Env) (Value, error) {
	if len(list) != 3 {
		return nil, syntaxErrorf(". requires exactly two arguments (the object and the attribute name), got %s", list)
	}
	name, ok := list[2].(Symbol)
	if !ok {
		return nil, syntaxErrorf("attribute name must be a symbol, got %s", list[2])
	}
	parent, err := ev.eval(list[1], env)
	if err != nil {
		return nil, err
	}
	if name.IsStringLiteral() {
		return GetAttr(parent, name.unquote())
	}
	return GetAttr(parent, string(name))
}

// (if test conseq [alt])
func (ev *evaluator) evalIf(list List, env *Env) (Value, error) {
	if len(list) != 3 && len(list) != 4 {
		return nil, syntaxErrorf("if requires two or three arguments (test, consequence, and optional alternative), got %s", list)
	}
	tested, err := ev.eval(list[1], env)
	if err != nil {
		return nil, err
	}
	if Truthy(tested) {
		return ev.eval(list[2], env)
	}
	if len(list) == 3 {
		return Bool(false), nil
	}
	return ev.eval(list[3], env)
}

// (define name expr)
func (ev *evaluator) evalDefine(list List, env *Env) (Value, error) {
	if len(list) != 3 {
		return nil, syntaxErrorf("define requires exactly two arguments (the name of the variable and its value), got %s", list)
	}
	name, ok := list[1].(Symbol)
	if !ok || name.IsStringLiteral() {
		return nil, syntaxErrorf("define requires a symbol as its name, got %s", list[1])
	}
	v, err := ev.eval(list[2], env)
	if err != nil {
		return nil, err
	}
	env.Add(name, v)
	return v, nil
}

// (import name) takes a plain symbol literally; anything else must evaluate
// to a string.
func (ev *evaluator) evalImport(list List, env *Env) (Value, error) {
	if len(list) != 2 {
		return nil, syntaxErrorf("import requires exactly 1 argument (the name of the module), got %s", list)
	}
	if s, ok := list[1].(Symbol); ok && !s.IsStringLiteral() {
		return ev.modules.resolve(ev.ctx, string(s))
	}
	v, err := ev.eval(list[1], env)
	if err != nil {
		return nil, err
	}
	name, ok := v.(String)
	if !ok {
		return nil, TypeErrorf("module name must be a string, got %s", Repr(v))
	}
	return ev.modules.resolve(ev.ctx, string(name))
}

// (head arg1 .. argn): a call when head evaluates to a procedure,
// otherwise the construction of a sequence.
func (ev *evaluator) apply(list List, env *Env) (Value, error) {
	head, err := ev.eval(list[0], env)
	if err != nil {
		return nil, err
	}
	switch proc := head.(type) {
	case Proc:
		args, err := ev.evalArgs(list[1:], env)
		if err != nil {
			return nil, err
		}
		v, err := proc(args)
		if err != nil {
			return nil, callError(err)
		}
		return v, nil
	case EnvProc:
		args, err := ev.evalArgs(list[1:], env)
		if err != nil {
			return nil, err
		}
		v, err := proc(&Caller{Env: env, ev: ev}, args)
		if err != nil {
			return nil, callError(err)
		}
		return v, nil
	}
	seq := make(Sequence, 1, len(list))
	seq[0] = head
	for _, arg := range list[1:] {
		v, err := ev.eval(arg, env)
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
	}
	return seq, nil
}

func (ev *evaluator) evalArgs(exprs []Expression, env *Env) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, arg := range exprs {
		v, err := ev.eval(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
