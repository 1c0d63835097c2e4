package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Wallet describes a devnet account: a secp256k1 private key and the address derived from it.
type Wallet struct {
	// PrivateKey describes the wallet's signing key.
	PrivateKey *ecdsa.PrivateKey

	// Address describes the address derived from PrivateKey.
	Address common.Address
}

// Generate creates a wallet with a fresh random key. Returns the wallet, or an error if key generation fails.
func Generate() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Wallet{
		PrivateKey: privateKey,
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// FromHexKey reconstructs a wallet from a hex-encoded private key (with or without the "0x" prefix).
// Returns the wallet, or an error if the key cannot be parsed.
func FromHexKey(hexKey string) (*Wallet, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Wallet{
		PrivateKey: privateKey,
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// PrivateKeyHex returns the wallet's private key as a hex string without the "0x" prefix.
func (w *Wallet) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(w.PrivateKey))
}
