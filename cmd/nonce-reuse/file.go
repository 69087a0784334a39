package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/ecdsa-nonce-reuse/internal/parser"
	"github.com/mahdiidarabi/ecdsa-nonce-reuse/pkg/noncereuse"
)

// FileCommand recovers a key from a signature pair stored in a file.
type FileCommand struct {
	cli    *Cli
	cmd    *cobra.Command
	format string
}

// NewFileCommand new file cmd
func NewFileCommand(cli *Cli) *cobra.Command {
	c := &FileCommand{cli: cli}
	c.cmd = &cobra.Command{
		Use:   "file <path> [pubkey]",
		Short: "Recover a private key from a JSON or CSV file holding two signatures.",
		Long: `Recover a private key from a file holding exactly two signatures.

Each entry carries r, s and either z (the digest) or message (hashed with SHA-256).
Strings are hexadecimal; JSON numbers are decimal.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.recover(cmd, args)
		},
	}
	c.cmd.Flags().StringVar(&c.format, "format", "", "file format: json or csv (default: from the extension)")
	return c.cmd
}

func (c *FileCommand) recover(cmd *cobra.Command, args []string) error {
	sigParser, err := c.parser(args[0])
	if err != nil {
		return err
	}

	publicKeyHex := ""
	if len(args) == 2 {
		publicKeyHex = args[1]
	}

	res, err := c.cli.client.WithParser(sigParser).RecoverFromFile(context.Background(), args[0], publicKeyHex)
	if err != nil {
		return err
	}
	return c.cli.report(cmd, res)
}

func (c *FileCommand) parser(path string) (noncereuse.SignatureParser, error) {
	format := strings.ToLower(c.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch format {
	case "csv":
		return &noncereuse.CSVParser{}, nil
	case "json", "":
		return &noncereuse.JSONParser{}, nil
	default:
		return nil, &parser.InputFormatError{Arg: "--format", Value: format, Err: fmt.Errorf("must be json or csv")}
	}
}
