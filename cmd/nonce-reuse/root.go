package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/ecdsa-nonce-reuse/internal/parser"
	"github.com/mahdiidarabi/ecdsa-nonce-reuse/pkg/noncereuse"
)

// Cli holds state shared by all commands.
type Cli struct {
	logger *logrus.Logger
	client *noncereuse.Client

	logLevel string
	base     int
	strict   bool
}

// NewRootCommand recovers a key from the six positional hex arguments.
func NewRootCommand(cli *Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nonce-reuse <pubkey> <r> <hash1> <s1> <hash2> <s2>",
		Short: "Recover a secp256k1 private key from two signatures that reused a nonce.",
		Long: `Recover a secp256k1 private key from two ECDSA signatures sharing the same r.

All arguments are hexadecimal: the signer's public key (compressed, uncompressed
or raw X||Y), the shared r, then the digest and s value of each signature.`,
		Args:          cobra.ExactArgs(len(parser.ArgNames)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cli.client.RecoverFromArgs(context.Background(), args)
			if err != nil {
				return err
			}
			return cli.report(cmd, res)
		},
	}

	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "warn", "log level: debug|info|warn|error")
	cmd.PersistentFlags().IntVar(&cli.base, "base", 10, "output base for the private key: 10 or 16")
	cmd.PersistentFlags().BoolVar(&cli.strict, "strict", false, "fail when the recovered key does not match the public key")

	cmd.AddCommand(NewFileCommand(cli))
	return cmd
}

func (c *Cli) setup() error {
	level, err := logrus.ParseLevel(c.logLevel)
	if err != nil {
		return &parser.InputFormatError{Arg: "--log-level", Value: c.logLevel, Err: err}
	}
	c.logger.SetLevel(level)

	if c.base != 10 && c.base != 16 {
		return &parser.InputFormatError{Arg: "--base", Value: fmt.Sprint(c.base), Err: fmt.Errorf("must be 10 or 16")}
	}

	c.client = noncereuse.NewClient().
		WithLogger(c.logger).
		WithStrictVerification(c.strict)
	return nil
}

// report prints the key on success and turns the other outcomes into errors.
func (c *Cli) report(cmd *cobra.Command, res noncereuse.Result) error {
	if err := res.Err(); err != nil {
		return err
	}
	if !res.Recovered() {
		return fmt.Errorf("%w: outcome %s without a key", noncereuse.ErrInvariantViolation, res.Outcome)
	}

	c.logger.WithFields(logrus.Fields{
		"verified": res.Verified,
		"relation": res.Relation.String(),
	}).Debug("Writing recovered key")
	fmt.Fprintln(cmd.OutOrStdout(), formatKey(res.PrivateKey, c.base))
	return nil
}

func formatKey(key *big.Int, base int) string {
	if base == 16 {
		return fmt.Sprintf("%064x", key)
	}
	return key.Text(10)
}
