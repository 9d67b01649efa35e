package wasm

import (
	"math"

	"github.com/deosjr/parens/lisp"
	"github.com/tetratelabs/wazero/api"
)

func encode(name string, i int, t api.ValueType, v lisp.Value) (uint64, error) {
	switch t {
	case api.ValueTypeI32:
		n, ok := v.(lisp.Integer)
		if !ok {
			break
		}
		if n < math.MinInt32 || n > math.MaxUint32 {
			return 0, lisp.ValueErrorf("%s() argument %d out of range for i32", name, i+1)
		}
		return api.EncodeI32(int32(n)), nil
	case api.ValueTypeI64:
		if n, ok := v.(lisp.Integer); ok {
			return api.EncodeI64(int64(n)), nil
		}
	case api.ValueTypeF32:
		if f, ok := float(v); ok {
			return api.EncodeF32(float32(f)), nil
		}
	case api.ValueTypeF64:
		if f, ok := float(v); ok {
			return api.EncodeF64(f), nil
		}
	}
	return 0, lisp.TypeErrorf("%s() argument %d must be %s, not %s", name, i+1, api.ValueTypeName(t), lisp.Repr(v))
}

func float(v lisp.Value) (float64, bool) {
	switch x := v.(type) {
	case lisp.Integer:
		return float64(x), true
	case lisp.Float:
		return float64(x), true
	}
	return 0, false
}

func decode(t api.ValueType, v uint64) (lisp.Value, error) {
	switch t {
	case api.ValueTypeI32:
		return lisp.Integer(api.DecodeI32(v)), nil
	case api.ValueTypeI64:
		return lisp.Integer(int64(v)), nil
	case api.ValueTypeF32:
		return lisp.Float(api.DecodeF32(v)), nil
	case api.ValueTypeF64:
		return lisp.Float(api.DecodeF64(v)), nil
	}
	return nil, lisp.TypeErrorf("unsupported wasm value type %s", api.ValueTypeName(t))
}
