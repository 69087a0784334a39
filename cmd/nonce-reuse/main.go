// Command nonce-reuse recovers an ECDSA private key from two secp256k1
// signatures that share the same r value.
//
//	nonce-reuse <pubkey> <r> <hash1> <s1> <hash2> <s2>
//	nonce-reuse file pair.json [pubkey]
//
// All values are hexadecimal. The recovered key is the only thing written to
// stdout; diagnostics go to stderr.
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cli := &Cli{logger: logger}
	root := NewRootCommand(cli)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	code := exitCode(err)
	if err != nil {
		logger.WithField("exitCode", code).Error(err)
	}
	return code
}
