package noncereuse

import (
	"errors"
	"math/big"
)

// Signature is the (r, s) pair of an ECDSA signature.
type Signature struct {
	R *big.Int // nonce component, x-coordinate of k·G mod n
	S *big.Int // proof component
}

// SignedHash is a signature together with the digest it signs.
type SignedHash struct {
	Hash      *big.Int
	Signature Signature
}

// RecoveryInput is the full argument set of a recovery.
// Values are not required to be reduced modulo Order.
type RecoveryInput struct {
	Order *big.Int
	Sig1  Signature
	Sig2  Signature
	Hash1 *big.Int
	Hash2 *big.Int
}

// Outcome tags the result of a recovery.
type Outcome int

const (
	// OutcomeRecovered means a private key was computed.
	OutcomeRecovered Outcome = iota
	// OutcomeNotApplicable means r1 != r2, the signatures do not share a nonce.
	OutcomeNotApplicable
	// OutcomeDegenerateInput means r1·(s1 - s2) has no inverse modulo the order.
	OutcomeDegenerateInput
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecovered:
		return "recovered"
	case OutcomeNotApplicable:
		return "not_applicable"
	case OutcomeDegenerateInput:
		return "degenerate_input"
	default:
		return "unknown"
	}
}

// Relation names which sign convention of s2 produced a key.
type Relation int

const (
	// RelationDirect uses both s values as supplied.
	RelationDirect Relation = iota
	// RelationNegatedS2 uses n - s2, for a second signature that was low-S normalised.
	RelationNegatedS2
)

func (r Relation) String() string {
	if r == RelationNegatedS2 {
		return "negated_s2"
	}
	return "direct"
}

var (
	ErrNotApplicable      = errors.New("the signature pairs given are not susceptible to this attack: r values differ")
	ErrDegenerateInput    = errors.New("degenerate input: r·(s1 - s2) is not invertible modulo the group order")
	ErrInvalidInput       = errors.New("invalid recovery input")
	ErrInvariantViolation = errors.New("internal error: reduced value outside [0, n)")
	ErrNotInvertible      = errors.New("value has no modular inverse")
	ErrKeyMismatch        = errors.New("recovered key does not match the public key")
)

// Result contains the result of a key recovery operation.
// PrivateKey is nil unless Outcome is OutcomeRecovered.
type Result struct {
	Outcome    Outcome
	PrivateKey *big.Int
	Relation   Relation
	Verified   bool // whether the key was checked against a public key
}

// Err returns the sentinel error for a non-success outcome, or nil.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeNotApplicable:
		return ErrNotApplicable
	case OutcomeDegenerateInput:
		return ErrDegenerateInput
	}
	return nil
}

// Recovered reports whether a private key is present.
func (r Result) Recovered() bool {
	return r.Outcome == OutcomeRecovered && r.PrivateKey != nil
}
