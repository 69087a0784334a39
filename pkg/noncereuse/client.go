package noncereuse

import (
	"context"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/ecdsa-nonce-reuse/internal/parser"
)

// Client provides a high-level API for nonce-reuse key recovery.
type Client struct {
	curve  Curve
	parser SignatureParser
	logger logrus.FieldLogger
	strict bool
}

// NewClient creates a new client with default settings: secp256k1, JSON input, no logging.
func NewClient() *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Client{
		curve:  Secp256k1(),
		parser: &JSONParser{},
		logger: logger,
	}
}

// WithCurve sets the curve whose order the recovery runs over.
func (c *Client) WithCurve(curve Curve) *Client {
	c.curve = curve
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithLogger sets the logger diagnostics are written to.
func (c *Client) WithLogger(logger logrus.FieldLogger) *Client {
	c.logger = logger
	return c
}

// WithStrictVerification makes a key that does not match the public key an error.
func (c *Client) WithStrictVerification(strict bool) *Client {
	c.strict = strict
	return c
}

// RecoverFromArgs recovers a key from the six hex arguments
// pubkey, r, hash1, s1, hash2, s2. Decoding failures are *parser.InputFormatError.
func (c *Client) RecoverFromArgs(ctx context.Context, args []string) (Result, error) {
	a, err := parser.ParseArgs(args)
	if err != nil {
		return Result{}, err
	}
	first := SignedHash{Hash: a.Hash1, Signature: Signature{R: a.R, S: a.S1}}
	second := SignedHash{Hash: a.Hash2, Signature: Signature{R: a.R, S: a.S2}}
	return c.Recover(ctx, a.PublicKey, first, second)
}

// RecoverFromFile recovers a key from the signature pair held in source.
// publicKeyHex is optional.
func (c *Client) RecoverFromFile(ctx context.Context, source string, publicKeyHex string) (Result, error) {
	pair, err := c.parser.ParseSignatures(source)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse signatures: %w", err)
	}

	var publicKey []byte
	if publicKeyHex != "" {
		publicKey, err = parser.DecodeHex("pubkey", publicKeyHex)
		if err != nil {
			return Result{}, err
		}
	}
	return c.Recover(ctx, publicKey, pair[0], pair[1])
}

// Recover runs the recovery over the client's curve. When publicKey is set it
// supplies the group order check and the recovered key is confirmed against it.
func (c *Client) Recover(ctx context.Context, publicKey []byte, first, second SignedHash) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	in := c.curve.Input(first, second)

	var pub *secp256k1.PublicKey
	if len(publicKey) > 0 {
		order, err := c.curve.OrderFor(publicKey)
		if err != nil {
			return Result{}, &parser.InputFormatError{Arg: "pubkey", Err: err}
		}
		in.Order = order

		pub, _ = ParsePublicKey(publicKey)
		for i, sh := range []SignedHash{first, second} {
			if !SignatureValid(pub, sh.Signature, sh.Hash) {
				c.logger.WithFields(logrus.Fields{
					"signature": i + 1,
					"r":         sh.Signature.R.Text(16),
					"s":         sh.Signature.S.Text(16),
				}).Warn("Signature does not verify under the public key")
			}
		}
	}

	res, err := RecoverWithPublicKey(in, pub)
	if err != nil {
		return Result{}, err
	}

	log := c.logger.WithFields(logrus.Fields{
		"curve":   c.curve.Name,
		"outcome": res.Outcome.String(),
	})
	if !res.Recovered() {
		log.Debug("Recovery not possible")
		return res, nil
	}

	log = log.WithField("relation", res.Relation.String())
	switch {
	case res.Verified:
		log.Info("Recovered private key matches the public key")
	case pub != nil && c.strict:
		return res, ErrKeyMismatch
	case pub != nil:
		log.Warn("Recovered private key does not match the public key")
	default:
		log.Info("Recovered private key without a public key to verify against")
	}
	return res, nil
}
