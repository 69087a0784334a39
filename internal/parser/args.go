// Package parser decodes the hexadecimal command-line arguments of a recovery.
package parser

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ArgNames lists the positional arguments in the order they are expected.
var ArgNames = [...]string{"pubkey", "r", "hash1", "s1", "hash2", "s2"}

var (
	errMissing  = errors.New("value is required")
	errArgCount = errors.New("wrong number of arguments")
)

// InputFormatError reports an argument that is missing or fails to decode.
type InputFormatError struct {
	Arg   string
	Value string
	Err   error
}

func (e *InputFormatError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Arg, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Arg, e.Value, e.Err)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

// Args holds the decoded positional arguments.
type Args struct {
	PublicKey []byte
	R         *big.Int
	Hash1     *big.Int
	S1        *big.Int
	Hash2     *big.Int
	S2        *big.Int
}

// DecodeHex decodes a hex string, handling a 0x prefix and odd length.
func DecodeHex(arg, value string) ([]byte, error) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if s == "" {
		return nil, &InputFormatError{Arg: arg, Value: value, Err: errMissing}
	}
	// Pad with leading zero if odd length
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &InputFormatError{Arg: arg, Value: value, Err: err}
	}
	return b, nil
}

// HexInt decodes a big-endian hex string into a non-negative integer.
func HexInt(arg, value string) (*big.Int, error) {
	b, err := DecodeHex(arg, value)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// ParseArgs decodes exactly six arguments: pubkey, r, hash1, s1, hash2, s2.
// The public key keeps its format byte.
func ParseArgs(args []string) (*Args, error) {
	if len(args) != len(ArgNames) {
		return nil, &InputFormatError{
			Arg: "arguments",
			Err: fmt.Errorf("%w: want %d (%s), got %d", errArgCount, len(ArgNames), strings.Join(ArgNames[:], ", "), len(args)),
		}
	}

	pub, err := DecodeHex(ArgNames[0], args[0])
	if err != nil {
		return nil, err
	}

	ints := make([]*big.Int, len(ArgNames)-1)
	for i := range ints {
		v, err := HexInt(ArgNames[i+1], args[i+1])
		if err != nil {
			return nil, err
		}
		ints[i] = v
	}

	return &Args{
		PublicKey: pub,
		R:         ints[0],
		Hash1:     ints[1],
		S1:        ints[2],
		Hash2:     ints[3],
		S2:        ints[4],
	}, nil
}
