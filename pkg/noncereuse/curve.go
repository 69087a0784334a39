package noncereuse

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Curve carries the parameters the recovery needs: only the group order.
type Curve struct {
	Name  string
	Order *big.Int
}

// Secp256k1 returns the secp256k1 curve parameters.
func Secp256k1() Curve {
	return Curve{
		Name:  "secp256k1",
		Order: new(big.Int).Set(secp256k1.S256().Params().N),
	}
}

// Input builds a RecoveryInput over this curve's order.
func (c Curve) Input(a, b SignedHash) RecoveryInput {
	return RecoveryInput{
		Order: c.Order,
		Sig1:  a.Signature,
		Sig2:  b.Signature,
		Hash1: a.Hash,
		Hash2: b.Hash,
	}
}

// OrderFor decodes a public key and returns the group order of its curve.
// The key is only decoded to confirm it is a valid point, it takes no part in the arithmetic.
func (c Curve) OrderFor(publicKey []byte) (*big.Int, error) {
	if _, err := ParsePublicKey(publicKey); err != nil {
		return nil, err
	}
	return new(big.Int).Set(c.Order), nil
}

// ParsePublicKey parses a secp256k1 public key.
//
// Accepted encodings:
//   - 33 bytes, compressed (0x02/0x03 prefix)
//   - 65 bytes, uncompressed (0x04 prefix) or hybrid
//   - 64 bytes, raw X||Y with the format byte already stripped
func ParsePublicKey(publicKey []byte) (*secp256k1.PublicKey, error) {
	if len(publicKey) == 64 {
		publicKey = append([]byte{0x04}, publicKey...)
	}
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return pub, nil
}
