package noncereuse

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

// Transaction 9ec4bc49e828d924af1d1029cacf709431abbde46d59554b62bc270e3b29c4b1 spends
// two inputs signed with the same nonce; see testdata/btc_pair.json.
const (
	btcPublicKeyHex = "04dbd0c61532279cf72981c3584fc32216e0127699635c2789f549e0730c059b81" +
		"ae133016a69c21e23f1859a95f06d52b7bf149a8f2fe4e8535c8a829b449c5ff"
	btcPrivateKeyHex = "c477f9f65c22cce20657faa5b2d1d8122336f851a508a1ed04e479c34985bf96"

	// signer of testdata/message_pair.json
	messagePublicKeyHex  = "025478aa0915ef9d33e70ecf5542c58b901aa7a6448dcbe2e4577fb5eb447a0c64"
	messagePrivateKeyDec = "14103396336171384352398344095705344681194723919808663775880953875133100707311"
)

func fixturesDir() string {
	return "testdata"
}

func fixture(name string) string {
	return filepath.Join(fixturesDir(), name)
}

// signWithNonce signs hash z with private key d using the given nonce k.
// s is not low-S normalised.
func signWithNonce(t *testing.T, d, k, z *big.Int) Signature {
	t.Helper()
	n := Secp256k1().Order

	var kScalar secp256k1.ModNScalar
	overflow := kScalar.SetByteSlice(k.Bytes())
	require.False(t, overflow, "nonce must be below the group order")
	require.False(t, kScalar.IsZero(), "nonce must be non-zero")

	// R = k * G
	var point secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&kScalar, &point)
	point.ToAffine()
	x := point.X
	x.Normalize()
	r := new(big.Int).SetBytes(x.Bytes()[:])
	r.Mod(r, n)

	// s = k^(-1) * (z + r*d) mod n
	kInv := new(big.Int).ModInverse(k, n)
	s := new(big.Int).Mul(r, d)
	s.Add(s, z)
	s.Mul(s, kInv)
	s.Mod(s, n)

	return Signature{R: r, S: s}
}

// randomScalar returns a uniformly random value in [1, n).
func randomScalar(t *testing.T) *big.Int {
	t.Helper()
	n := Secp256k1().Order
	for {
		v, err := rand.Int(rand.Reader, n)
		require.NoError(t, err)
		if v.Sign() > 0 {
			return v
		}
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func mustBigHex(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok, "invalid hex %q", s)
	return v
}

func mustBigDec(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid decimal %q", s)
	return v
}

func publicKeyOf(d *big.Int) *secp256k1.PublicKey {
	return secp256k1.PrivKeyFromBytes(d.FillBytes(make([]byte, 32))).PubKey()
}
