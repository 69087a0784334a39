package noncereuse

import (
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// VerifyRecoveredKey verifies that a recovered private key matches the given public key.
//
// Args:
//   - privateKey: Recovered private key
//   - publicKeyBytes: Public key in any encoding accepted by ParsePublicKey
//
// Returns:
//   - True if the private key matches the public key, false otherwise
func VerifyRecoveredKey(privateKey *big.Int, publicKeyBytes []byte) (bool, error) {
	pub, err := ParsePublicKey(publicKeyBytes)
	if err != nil {
		return false, err
	}
	return matchesPublicKey(privateKey, pub)
}

func matchesPublicKey(privateKey *big.Int, pub *secp256k1.PublicKey) (bool, error) {
	n := secp256k1.S256().Params().N
	if privateKey == nil || privateKey.Sign() <= 0 || privateKey.Cmp(n) >= 0 {
		return false, errors.New("private key out of valid range")
	}

	// FillBytes pads to the 32-byte scalar encoding
	privKey := secp256k1.PrivKeyFromBytes(privateKey.FillBytes(make([]byte, 32)))
	return privKey.PubKey().IsEqual(pub), nil
}

// SignatureValid reports whether sig is a valid secp256k1 signature of hash under pub.
// r and s must lie in [1, n) and hash must fit in 32 bytes.
func SignatureValid(pub *secp256k1.PublicKey, sig Signature, hash *big.Int) bool {
	if pub == nil || sig.R == nil || sig.S == nil || hash == nil || hash.Sign() < 0 {
		return false
	}
	if sig.R.BitLen() > 256 || sig.S.BitLen() > 256 || hash.BitLen() > 256 {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig.R.Bytes()); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig.S.Bytes()); overflow || s.IsZero() {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(hash.FillBytes(make([]byte, 32)), pub)
}

// RecoverWithPublicKey recovers the private key and confirms it against pub.
//
// The direct relation is tried first. A signer that normalised the second
// signature to low-S published n - s2 instead of s2, so the relation is
// retried with s2 negated. The first key that matches pub is returned with
// Verified set; if neither does, the direct result is returned unverified.
func RecoverWithPublicKey(in RecoveryInput, pub *secp256k1.PublicKey) (Result, error) {
	direct, err := RecoverPrivateKey(in)
	if err != nil || direct.Outcome != OutcomeRecovered || pub == nil {
		return direct, err
	}
	if ok, _ := matchesPublicKey(direct.PrivateKey, pub); ok {
		direct.Verified = true
		return direct, nil
	}

	flipped := in
	flipped.Sig2.S = reduce(new(big.Int).Neg(in.Sig2.S), in.Order)

	candidate, err := RecoverPrivateKey(flipped)
	if err != nil {
		return Result{}, err
	}
	if candidate.Outcome == OutcomeRecovered {
		if ok, _ := matchesPublicKey(candidate.PrivateKey, pub); ok {
			candidate.Relation = RelationNegatedS2
			candidate.Verified = true
			return candidate, nil
		}
	}
	return direct, nil
}
