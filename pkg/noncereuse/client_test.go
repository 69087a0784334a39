package noncereuse

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/ecdsa-nonce-reuse/internal/parser"
)

var btcArgs = []string{
	btcPublicKeyHex,
	"d47ce4c025c35ec440bc81d99834a624875161a26bf56ef7fdc0f5d52f843ad1",
	"c0e2d0a89a348de88fda08211c70d1d7e52ccef2eb9459911bf977d587784c6e",
	"44e1ff2dfd8102cf7a47c21d5c9fd5701610d04953c6836596b4fe9dd2f53e3e",
	"17b0f41c8c337ac1e18c98759e83a8cccbc368dd9d89e5f03cb633c265fd0ddc",
	"9a5f1c75e461d7ceb1cf3cab9013eb2dc85b6d0da8c3c6e27e3a5a5b3faa5bab",
}

func TestClient_RecoverFromArgs(t *testing.T) {
	client := NewClient()

	res, err := client.RecoverFromArgs(context.Background(), btcArgs)
	require.NoError(t, err)
	require.True(t, res.Recovered())
	assert.True(t, res.Verified)
	assert.Equal(t, btcPrivateKeyHex, res.PrivateKey.Text(16))
}

func TestClient_RecoverFromArgs_FormatError(t *testing.T) {
	args := append([]string(nil), btcArgs...)
	args[3] = "not-hex"

	_, err := NewClient().RecoverFromArgs(context.Background(), args)

	var ferr *parser.InputFormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "s1", ferr.Arg)
}

func TestClient_RecoverFromArgs_BadPublicKey(t *testing.T) {
	args := append([]string(nil), btcArgs...)
	args[0] = "05" + args[0][2:]

	_, err := NewClient().RecoverFromArgs(context.Background(), args)

	var ferr *parser.InputFormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "pubkey", ferr.Arg)
}

func TestClient_RecoverFromFile_JSON(t *testing.T) {
	res, err := NewClient().RecoverFromFile(context.Background(), fixture("btc_pair.json"), btcPublicKeyHex)
	require.NoError(t, err)
	require.True(t, res.Recovered())
	assert.True(t, res.Verified)
	assert.Equal(t, btcPrivateKeyHex, res.PrivateKey.Text(16))
}

func TestClient_RecoverFromFile_Messages(t *testing.T) {
	res, err := NewClient().RecoverFromFile(context.Background(), fixture("message_pair.json"), messagePublicKeyHex)
	require.NoError(t, err)
	require.True(t, res.Recovered())
	assert.True(t, res.Verified)
	assert.Equal(t, messagePrivateKeyDec, res.PrivateKey.Text(10))
}

func TestClient_RecoverFromFile_CSVWithoutPublicKey(t *testing.T) {
	client := NewClient().WithParser(&CSVParser{})

	res, err := client.RecoverFromFile(context.Background(), fixture("scenario_pair.csv"), "")
	require.NoError(t, err)
	require.True(t, res.Recovered())
	assert.False(t, res.Verified)
	assert.Equal(t, "12345", res.PrivateKey.Text(10))
}

func TestClient_RecoverFromFile_NotApplicable(t *testing.T) {
	res, err := NewClient().RecoverFromFile(context.Background(), fixture("mismatch_pair.json"), "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotApplicable, res.Outcome)
	assert.ErrorIs(t, res.Err(), ErrNotApplicable)
}

func TestClient_RecoverFromFile_ParseError(t *testing.T) {
	_, err := NewClient().RecoverFromFile(context.Background(), fixture("three_sigs.json"), "")
	assert.ErrorIs(t, err, ErrPairSize)
}

func TestClient_StrictVerification(t *testing.T) {
	// key of an unrelated signer
	other := publicKeyOf(big.NewInt(987654321)).SerializeCompressed()
	args := append([]string(nil), btcArgs...)
	args[0] = hex.EncodeToString(other)

	logger, hook := test.NewNullLogger()
	client := NewClient().WithLogger(logger)

	res, err := client.RecoverFromArgs(context.Background(), args)
	require.NoError(t, err)
	assert.True(t, res.Recovered())
	assert.False(t, res.Verified)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	_, err = client.WithStrictVerification(true).RecoverFromArgs(context.Background(), args)
	assert.ErrorIs(t, err, ErrKeyMismatch)
}

func TestClient_LogsInvalidSignatures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	// signatures of the message fixture checked against the bitcoin key
	pair, err := (&JSONParser{}).ParseSignatures(fixture("message_pair.json"))
	require.NoError(t, err)

	_, err = NewClient().WithLogger(logger).Recover(context.Background(), mustHex(t, btcPublicKeyHex), pair[0], pair[1])
	require.NoError(t, err)

	warned := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "Signature does not verify under the public key" {
			warned++
		}
	}
	assert.Equal(t, 2, warned)
}

func TestClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().RecoverFromArgs(ctx, btcArgs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_WithCurve(t *testing.T) {
	// n = 101, d = 17, r = 33, k = 9
	curve := Curve{Name: "toy", Order: big.NewInt(101)}
	client := NewClient().WithCurve(curve)

	res, err := client.Recover(context.Background(), nil,
		SignedHash{Hash: big.NewInt(5), Signature: Signature{R: big.NewInt(33), S: big.NewInt(toySign(5))}},
		SignedHash{Hash: big.NewInt(80), Signature: Signature{R: big.NewInt(33), S: big.NewInt(toySign(80))}},
	)
	require.NoError(t, err)
	require.True(t, res.Recovered())
	assert.Equal(t, int64(17), res.PrivateKey.Int64())
}

func TestClient_WithParser(t *testing.T) {
	client := NewClient().WithParser(&CSVParser{})
	_, ok := client.parser.(*CSVParser)
	assert.True(t, ok)
}

// toySign computes s = k⁻¹(h + d·r) mod 101 for d = 17, r = 33, k = 9.
func toySign(h int64) int64 {
	n := big.NewInt(101)
	kInv := new(big.Int).ModInverse(big.NewInt(9), n)
	s := big.NewInt(17 * 33)
	s.Add(s, big.NewInt(h))
	s.Mul(s, kInv)
	return s.Mod(s, n).Int64()
}
