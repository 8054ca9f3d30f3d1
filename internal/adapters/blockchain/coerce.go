package blockchain

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// CoerceArgs converts Go values to the exact types abi packing expects for
// inputs, e.g. a uint64 delay to *big.Int for uint256 or to uint32 for uint32.
func CoerceArgs(inputs abi.Arguments, args []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("argument count mismatch: abi takes %d, got %d", len(inputs), len(args))
	}

	out := make([]any, len(args))
	for i, input := range inputs {
		v, err := coerce(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(t abi.Type, v any) (any, error) {
	if n, ok := v.(*big.Int); ok && n == nil {
		return nil, fmt.Errorf("nil integer")
	}

	target := t.GetType()
	if v != nil && reflect.TypeOf(v) == target {
		return v, nil
	}

	switch t.T {
	case abi.UintTy, abi.IntTy:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		if t.T == abi.UintTy {
			if n.Sign() < 0 {
				return nil, fmt.Errorf("negative value %s", n)
			}
			if n.BitLen() > t.Size {
				return nil, fmt.Errorf("value %s overflows uint%d", n, t.Size)
			}
		} else {
			limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
			if n.Cmp(new(big.Int).Neg(limit)) < 0 || n.Cmp(limit) >= 0 {
				return nil, fmt.Errorf("value %s overflows int%d", n, t.Size)
			}
		}

		if target == bigIntType {
			return n, nil
		}
		out := reflect.New(target).Elem()
		if t.T == abi.UintTy {
			out.SetUint(n.Uint64())
		} else {
			out.SetInt(n.Int64())
		}
		return out.Interface(), nil

	case abi.AddressTy:
		switch a := v.(type) {
		case *common.Address:
			if a != nil {
				return *a, nil
			}
		case string:
			if !common.IsHexAddress(a) {
				return nil, fmt.Errorf("'%s' is not an address", a)
			}
			return common.HexToAddress(a), nil
		}

	case abi.StringTy:
		if s, ok := v.(fmt.Stringer); ok {
			return s.String(), nil
		}

	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			break
		}
		if t.T == abi.ArrayTy && rv.Len() != t.Size {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Size, rv.Len())
		}

		var out reflect.Value
		if t.T == abi.SliceTy {
			out = reflect.MakeSlice(target, rv.Len(), rv.Len())
		} else {
			out = reflect.New(target).Elem()
		}
		for i := 0; i < rv.Len(); i++ {
			elem, err := coerce(*t.Elem, rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(elem))
		}
		return out.Interface(), nil
	}

	return nil, fmt.Errorf("cannot use %T as %s", v, t.String())
}

func toBig(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return n, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case string:
		s := strings.TrimSpace(n)
		base := 10
		if strings.HasPrefix(s, "0x") {
			s, base = s[2:], 16
		}
		out, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("'%s' is not an integer", n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot use %T as an integer", v)
	}
}
