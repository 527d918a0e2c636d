package chain

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrEmptyPrivateKey = errors.New("private key is empty")

// Account is the signing identity derived from a raw private key.
type Account struct {
	key     *ecdsa.PrivateKey
	Address common.Address
}

// PrivateKeyToAccount derives an account from a hex key, with or without the 0x prefix.
// The key itself never appears in the returned error.
func PrivateKeyToAccount(hexKey string) (*Account, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, ErrEmptyPrivateKey
	}
	if strings.HasPrefix(hexKey, "0x") || strings.HasPrefix(hexKey, "0X") {
		hexKey = hexKey[2:]
	}

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, errors.New("invalid private key: expected 32 bytes of hex")
	}

	return &Account{
		key:     key,
		Address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (a *Account) String() string {
	return a.Address.Hex()
}
