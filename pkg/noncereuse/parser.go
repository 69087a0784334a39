package noncereuse

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
)

// ErrPairSize is returned when a signature file does not hold exactly two signatures.
var ErrPairSize = errors.New("signature file must contain exactly two signatures")

// SignatureParser defines the interface for reading a nonce-reuse pair from a source.
type SignatureParser interface {
	// ParseSignatures parses the two signed hashes held by source.
	ParseSignatures(source string) ([2]SignedHash, error)
}

// JSONParser parses signatures from JSON files.
type JSONParser struct {
	MessageField string // Field name for message (default: "message")
	RField       string // Field name for r (default: "r")
	SField       string // Field name for s (default: "s")
	ZField       string // Field name for z/hash (default: "z")

	// Order reduces hashed messages; defaults to the secp256k1 order.
	Order *big.Int
}

// ParseSignatures parses the signature pair from a JSON file.
//
// Expected format:
//
//	[
//	  {"z": "0x...", "r": "0x...", "s": "0x..."},
//	  {"message": "...", "r": "...", "s": "..."}
//	]
//
// Strings are hexadecimal, JSON numbers are decimal. A message is only
// hashed when the entry has no z field.
func (p *JSONParser) ParseSignatures(jsonFile string) ([2]SignedHash, error) {
	var pair [2]SignedHash

	file, err := os.Open(jsonFile)
	if err != nil {
		return pair, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return pair, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if len(items) != 2 {
		return pair, fmt.Errorf("%w: got %d", ErrPairSize, len(items))
	}

	messageField := orDefault(p.MessageField, "message")
	rField := orDefault(p.RField, "r")
	sField := orDefault(p.SField, "s")
	zField := orDefault(p.ZField, "z")
	order := p.Order
	if order == nil {
		order = Secp256k1().Order
	}

	for i, item := range items {
		// Get z (message hash)
		if zVal, ok := item[zField]; ok {
			z, err := parseBigInt(zVal)
			if err != nil {
				return pair, fmt.Errorf("entry %d: failed to parse z: %w", i, err)
			}
			pair[i].Hash = z
		} else if msgVal, ok := item[messageField]; ok {
			message, ok := msgVal.(string)
			if !ok {
				return pair, fmt.Errorf("entry %d: message field must be a string", i)
			}
			pair[i].Hash = HashMessage([]byte(message), order)
		} else {
			return pair, fmt.Errorf("entry %d: missing message or z field", i)
		}

		rVal, ok := item[rField]
		if !ok {
			return pair, fmt.Errorf("entry %d: missing r field", i)
		}
		r, err := parseBigInt(rVal)
		if err != nil {
			return pair, fmt.Errorf("entry %d: failed to parse r: %w", i, err)
		}
		pair[i].Signature.R = r

		sVal, ok := item[sField]
		if !ok {
			return pair, fmt.Errorf("entry %d: missing s field", i)
		}
		s, err := parseBigInt(sVal)
		if err != nil {
			return pair, fmt.Errorf("entry %d: failed to parse s: %w", i, err)
		}
		pair[i].Signature.S = s
	}

	return pair, nil
}

// CSVParser parses signatures from CSV files with a header row.
type CSVParser struct {
	MessageCol string // Column name for message (default: "message")
	RCol       string // Column name for r (default: "r")
	SCol       string // Column name for s (default: "s")
	ZCol       string // Column name for z/hash (default: "z")

	Order *big.Int
}

// ParseSignatures parses the signature pair from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([2]SignedHash, error) {
	var pair [2]SignedHash

	file, err := os.Open(csvFile)
	if err != nil {
		return pair, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return pair, fmt.Errorf("failed to read header: %w", err)
	}

	messageCol := orDefault(p.MessageCol, "message")
	rCol := orDefault(p.RCol, "r")
	sCol := orDefault(p.SCol, "s")
	zCol := orDefault(p.ZCol, "z")
	order := p.Order
	if order == nil {
		order = Secp256k1().Order
	}

	messageIdx, rIdx, sIdx, zIdx := -1, -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case messageCol:
			messageIdx = i
		case rCol:
			rIdx = i
		case sCol:
			sIdx = i
		case zCol:
			zIdx = i
		}
	}
	if rIdx == -1 || sIdx == -1 {
		return pair, fmt.Errorf("missing required columns: r or s")
	}
	if zIdx == -1 && messageIdx == -1 {
		return pair, fmt.Errorf("missing message or z column")
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pair, fmt.Errorf("failed to read record: %w", err)
		}
		if count >= 2 {
			return pair, fmt.Errorf("%w: got more than 2", ErrPairSize)
		}

		sh := SignedHash{}
		if zIdx >= 0 {
			z, err := parseBigInt(record[zIdx])
			if err != nil {
				return pair, fmt.Errorf("row %d: failed to parse z: %w", count, err)
			}
			sh.Hash = z
		} else {
			sh.Hash = HashMessage([]byte(record[messageIdx]), order)
		}

		r, err := parseBigInt(record[rIdx])
		if err != nil {
			return pair, fmt.Errorf("row %d: failed to parse r: %w", count, err)
		}
		s, err := parseBigInt(record[sIdx])
		if err != nil {
			return pair, fmt.Errorf("row %d: failed to parse s: %w", count, err)
		}
		sh.Signature = Signature{R: r, S: s}

		pair[count] = sh
		count++
	}
	if count != 2 {
		return pair, fmt.Errorf("%w: got %d", ErrPairSize, count)
	}

	return pair, nil
}

// parseBigInt parses a big integer from a hex string (optional 0x prefix) or a JSON number.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(v), "0x")
		s = strings.TrimPrefix(s, "0X")
		if s == "" {
			return nil, fmt.Errorf("empty value")
		}
		if len(s)%2 != 0 {
			s = "0" + s
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q: %w", v, err)
		}
		return new(big.Int).SetBytes(b), nil

	case json.Number:
		z := new(big.Int)
		if _, ok := z.SetString(string(v), 10); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
