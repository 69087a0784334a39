// Package noncereuse recovers an ECDSA private key from two signatures that
// reused the same nonce, and therefore share the same r value.
//
// Given the group order n, signatures (r, s1) and (r, s2) over digests h1 and h2:
//
//	priv = (s2·h1 - s1·h2) · [r·(s1 - s2)]⁻¹ mod n
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/ecdsa-nonce-reuse/pkg/noncereuse"
//
//	curve := noncereuse.Secp256k1()
//	res, err := noncereuse.RecoverPrivateKey(noncereuse.RecoveryInput{
//	    Order: curve.Order,
//	    Sig1:  noncereuse.Signature{R: r, S: s1},
//	    Sig2:  noncereuse.Signature{R: r, S: s2},
//	    Hash1: h1,
//	    Hash2: h2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	switch res.Outcome {
//	case noncereuse.OutcomeRecovered:
//	    fmt.Println(res.PrivateKey.Text(10))
//	case noncereuse.OutcomeNotApplicable:
//	    // r values differ, the signatures did not reuse a nonce
//	case noncereuse.OutcomeDegenerateInput:
//	    // s1 == s2 or another non-invertible denominator
//	}
//
// # Public key confirmation
//
// RecoverWithPublicKey checks the recovered key against the signer's public
// key, and retries with the second s negated when the signer normalised it to
// low-S:
//
//	pub, _ := noncereuse.ParsePublicKey(pubBytes)
//	res, err := noncereuse.RecoverWithPublicKey(in, pub)
//	if res.Verified { ... }
//
// # Client
//
// Client wraps parsing, verification and logging:
//
//	client := noncereuse.NewClient().
//	    WithParser(&noncereuse.CSVParser{}).
//	    WithLogger(logrus.StandardLogger())
//
//	res, err := client.RecoverFromFile(ctx, "pair.csv", "04...")
package noncereuse
