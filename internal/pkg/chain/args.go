package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// coerceArgs converts loosely typed arguments into the Go types the ABI packer
// expects. Address strings are checked here, so a malformed recipient fails the call.
func coerceArgs(method abi.Method, args []interface{}) ([]interface{}, error) {
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", method.Name, len(method.Inputs), len(args))
	}

	out := make([]interface{}, len(args))
	for i, input := range method.Inputs {
		v, err := coerceArg(input.Type, args[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func coerceArg(t abi.Type, arg interface{}) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		switch v := arg.(type) {
		case common.Address:
			return v, nil
		case string:
			if !common.IsHexAddress(v) {
				return nil, fmt.Errorf("address %q is invalid", v)
			}
			return common.HexToAddress(v), nil
		}
	case abi.UintTy, abi.IntTy:
		if t.Size <= 64 {
			return arg, nil
		}
		n, err := toBigInt(arg)
		if err != nil {
			return nil, err
		}
		if t.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("value %s is negative for %s", n, t)
		}
		return n, nil
	default:
		return arg, nil
	}
	return nil, fmt.Errorf("cannot use %T as %s", arg, t)
}

func toBigInt(arg interface{}) (*big.Int, error) {
	switch v := arg.(type) {
	case *big.Int:
		return v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	}
	return nil, fmt.Errorf("cannot use %T as integer", arg)
}
