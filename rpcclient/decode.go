package rpcclient

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/coldtrail/utxotx/codec"
)

// DecodeAmount parses a node-reported bigint amount, wire-encoded as a
// decimal string, into a uint64.
func DecodeAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rpcclient: decode amount %q: %w", s, err)
	}
	return v, nil
}

// EncodeAmount renders amt as the decimal string the node expects for a
// bigint field.
func EncodeAmount(amt uint64) string {
	return strconv.FormatUint(amt, 10)
}

// DecodeHex decodes a 0x-prefixed (or bare) hex string into bytes.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: decode hex %q: %w", s, err)
	}
	return b, nil
}

// EncodeHex renders b as a 0x-prefixed hex string.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// DecodeCB58 decodes a checksummed base-58 field, e.g. a tx ID or address
// returned by the node.
func DecodeCB58(s string) ([]byte, error) {
	return codec.CB58Decode(s)
}

// EncodeCB58 renders b as a checksummed base-58 string.
func EncodeCB58(b []byte) string {
	return codec.CB58Encode(b)
}
