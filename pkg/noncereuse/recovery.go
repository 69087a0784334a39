package noncereuse

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

// RecoverPrivateKey recovers the private key from two ECDSA signatures that reused a nonce.
//
// From the signing relation s = k⁻¹(h + priv·r) mod n, two signatures sharing k give
//
//	k = (h1 + priv·r) / s1 = (h2 + priv·r) / s2   mod n
//
// and solving for priv:
//
//	priv = (s2·h1 - s1·h2) · [r·(s1 - s2)]⁻¹   mod n
//
// Args:
//   - in: group order, both signatures and both digests
//
// Returns:
//   - Result tagged OutcomeRecovered with the key, OutcomeNotApplicable when r1 != r2, or
//     OutcomeDegenerateInput when the denominator is not invertible.
//   - error only for malformed input (ErrInvalidInput) or ErrInvariantViolation.
func RecoverPrivateKey(in RecoveryInput) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}
	n := in.Order

	// Check for nonce reuse
	if in.Sig1.R.Cmp(in.Sig2.R) != 0 {
		return Result{Outcome: OutcomeNotApplicable}, nil
	}

	// numerator: ((s2 * h1) mod n - (s1 * h2) mod n) mod n
	s2h1 := new(big.Int).Mul(in.Sig2.S, in.Hash1)
	s2h1.Mod(s2h1, n)

	s1h2 := new(big.Int).Mul(in.Sig1.S, in.Hash2)
	s1h2.Mod(s1h2, n)

	numerator := reduce(new(big.Int).Sub(s2h1, s1h2), n)

	// denominator: r * ((s1 - s2) mod n) mod n
	sDiff := reduce(new(big.Int).Sub(in.Sig1.S, in.Sig2.S), n)
	denominator := new(big.Int).Mul(in.Sig1.R, sDiff)
	denominator.Mod(denominator, n)

	denominatorInv, err := ModInverse(denominator, n)
	if err != nil {
		return Result{Outcome: OutcomeDegenerateInput}, nil
	}

	priv := new(big.Int).Mul(numerator, denominatorInv)
	priv.Mod(priv, n)

	if priv.Sign() < 0 || priv.Cmp(n) >= 0 {
		return Result{}, fmt.Errorf("%w: private key %s", ErrInvariantViolation, priv.Text(16))
	}

	return Result{Outcome: OutcomeRecovered, PrivateKey: priv, Relation: RelationDirect}, nil
}

// ModInverse returns a⁻¹ mod m. It fails with ErrNotInvertible when gcd(a, m) != 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if a == nil || m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrNotInvertible)
	}
	ar := reduce(new(big.Int).Set(a), m)
	if ar.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero modulo %s", ErrNotInvertible, m.Text(10))
	}
	inv := new(big.Int).ModInverse(ar, m)
	if inv == nil {
		return nil, fmt.Errorf("%w: gcd(%s, %s) != 1", ErrNotInvertible, ar.Text(10), m.Text(10))
	}
	return inv, nil
}

// HashMessage hashes a message using SHA-256 and returns it as an integer mod order.
func HashMessage(message []byte, order *big.Int) *big.Int {
	h := sha256.Sum256(message)
	z := new(big.Int).SetBytes(h[:])
	z.Mod(z, order)
	return z
}

// reduce sets x to x mod n in [0, n). big.Int.Mod is Euclidean, the
// explicit adjustment keeps the result normalised for negative x.
func reduce(x, n *big.Int) *big.Int {
	x.Mod(x, n)
	if x.Sign() < 0 {
		x.Add(x, n)
	}
	return x
}

func (in RecoveryInput) validate() error {
	if in.Order == nil || in.Order.Sign() <= 0 {
		return fmt.Errorf("%w: group order must be positive", ErrInvalidInput)
	}
	fields := []struct {
		name string
		v    *big.Int
	}{
		{"r1", in.Sig1.R},
		{"s1", in.Sig1.S},
		{"r2", in.Sig2.R},
		{"s2", in.Sig2.S},
		{"hash1", in.Hash1},
		{"hash2", in.Hash2},
	}
	for _, f := range fields {
		if f.v == nil {
			return fmt.Errorf("%w: %s is missing", ErrInvalidInput, f.name)
		}
		if f.v.Sign() < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidInput, f.name)
		}
	}
	return nil
}
