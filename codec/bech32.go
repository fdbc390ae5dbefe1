package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// FormatAddressHRP builds the human-readable part used by this module's
// bech32 addresses: "<networkHRP>-<chainAlias>".
func FormatAddressHRP(networkHRP, chainAlias string) string {
	return networkHRP + "-" + chainAlias
}

// Bech32AddressEncode converts the raw 20-byte address into 5-bit words and
// encodes it with the given human-readable part. The encoded string, and so
// its human-readable part, is all lowercase.
func Bech32AddressEncode(hrp string, addr [20]byte) (string, error) {
	words, err := bech32.ConvertBits(addr[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32 convert bits: %w", err)
	}
	encoded, err := bech32.Encode(hrp, words)
	if err != nil {
		return "", fmt.Errorf("bech32 encode: %w", err)
	}
	return encoded, nil
}

// Bech32AddressDecode reverses Bech32AddressEncode, returning the
// human-readable part (lowercased) and the raw 20-byte address.
func Bech32AddressDecode(encoded string) (hrp string, addr [20]byte, err error) {
	hrp, words, err := bech32.Decode(encoded)
	if err != nil {
		return "", addr, fmt.Errorf("bech32 decode: %w", err)
	}
	raw, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", addr, fmt.Errorf("bech32 convert bits: %w", err)
	}
	if len(raw) != len(addr) {
		return "", addr, fmt.Errorf("%w: decoded address is %d bytes, want %d", ErrInvalidLength, len(raw), len(addr))
	}
	copy(addr[:], raw)
	return hrp, addr, nil
}
