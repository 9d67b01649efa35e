package lisp

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// GetAttr extracts the member called name from v. Attributer values answer
// for themselves; Go maps with string keys, exported struct fields and
// exported methods are found by reflection. A lowercase name also matches
// its exported spelling, so (. obj attr) finds a field Attr.
func GetAttr(v Value, name string) (Value, error) {
	if a, ok := v.(Attributer); ok {
		return a.Attr(name)
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, AttributeErrorf("'%s' object has no attribute '%s'", typeName(v), name)
	}
	for _, n := range []string{name, exported(name)} {
		if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
			mv := rv.MapIndex(reflect.ValueOf(n).Convert(rv.Type().Key()))
			if mv.IsValid() {
				return hostValue(n, mv), nil
			}
		}
		if m := rv.MethodByName(n); m.IsValid() {
			return methodProc(n, m), nil
		}
		ind := reflect.Indirect(rv)
		if ind.Kind() == reflect.Struct {
			sf, ok := ind.Type().FieldByName(n)
			if !ok || !sf.IsExported() {
				continue
			}
			// promoted through a nil embedded pointer
			f, err := ind.FieldByIndexErr(sf.Index)
			if err != nil || !f.CanInterface() {
				continue
			}
			return hostValue(n, f), nil
		}
	}
	return nil, AttributeErrorf("'%s' object has no attribute '%s'", typeName(v), name)
}

// hostValue converts a field or map entry. Go funcs become procedures.
func hostValue(name string, v reflect.Value) Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() == reflect.Func && !v.IsNil() {
		switch p := v.Interface().(type) {
		case Proc:
			return p
		case EnvProc:
			return p
		}
		return methodProc(name, v)
	}
	return FromGo(v.Interface())
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// methodProc wraps a bound Go method or func value as a procedure.
// Arguments are converted to the parameter types; a trailing non-nil error
// result is returned as the call's error.
func methodProc(name string, m reflect.Value) Proc {
	t := m.Type()
	return func(args []Value) (Value, error) {
		in := t.NumIn()
		if t.IsVariadic() {
			if err := CheckArity(name, args, in-1, -1); err != nil {
				return nil, err
			}
		} else if err := CheckArity(name, args, in, in); err != nil {
			return nil, err
		}
		params := make([]reflect.Value, len(args))
		for i, arg := range args {
			pt := paramType(t, i)
			av := reflect.ValueOf(ToGo(arg))
			if !av.IsValid() {
				params[i] = reflect.Zero(pt)
				continue
			}
			if !convertible(av.Type(), pt) {
				return nil, TypeErrorf("%s() argument %d must be %s, not %s", name, i+1, pt, typeName(arg))
			}
			params[i] = av.Convert(pt)
		}
		out, err := call(name, m, params)
		if err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && t.Out(n-1) == errorType {
			if err, _ := out[n-1].Interface().(error); err != nil {
				return nil, err
			}
			out = out[:n-1]
		}
		switch len(out) {
		case 0:
			return nil, nil
		case 1:
			return FromGo(out[0].Interface()), nil
		}
		seq := make(Sequence, len(out))
		for i, o := range out {
			seq[i] = FromGo(o.Interface())
		}
		return seq, nil
	}
}

// call recovers a panic in host code into an error.
func call(name string, m reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s() panicked: %v", name, r)
		}
	}()
	return m.Call(in), nil
}

func convertible(from, to reflect.Type) bool {
	if to.Kind() == reflect.Interface {
		return from.Implements(to)
	}
	// int to string converts to a rune, which is never what a caller means
	if (to.Kind() == reflect.String) != (from.Kind() == reflect.String) {
		return false
	}
	return from.ConvertibleTo(to)
}

func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

// FromGo maps Go scalars onto interpreter values; anything else is returned
// unchanged as an opaque host value.
func FromGo(v any) Value {
	switch x := v.(type) {
	case int:
		return Integer(x)
	case int8:
		return Integer(x)
	case int16:
		return Integer(x)
	case int32:
		return Integer(x)
	case int64:
		return Integer(x)
	case uint8:
		return Integer(x)
	case uint16:
		return Integer(x)
	case uint32:
		return Integer(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case []string:
		seq := make(Sequence, len(x))
		for i, s := range x {
			seq[i] = String(s)
		}
		return seq
	}
	return v
}

// ToGo is the inverse of FromGo for interpreter scalars.
func ToGo(v Value) any {
	switch x := v.(type) {
	case Integer:
		return int64(x)
	case Float:
		return float64(x)
	case String:
		return string(x)
	case Bool:
		return bool(x)
	}
	return v
}
