package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

func TestBech32AddressRoundTrip(t *testing.T) {
	var addr [20]byte
	for i := range addr {
		addr[i] = byte(i * 3)
	}
	hrp := FormatAddressHRP("avax", "X")

	encoded, err := Bech32AddressEncode(hrp, addr)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	gotHRP, gotAddr, err := Bech32AddressDecode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gotHRP != strings.ToLower(hrp) {
		t.Fatalf("hrp = %q, want %q", gotHRP, strings.ToLower(hrp))
	}
	if gotAddr != addr {
		t.Fatalf("addr = %x, want %x", gotAddr, addr)
	}
}

func TestBech32AddressDecodeRejectsWrongLength(t *testing.T) {
	words, err := Bech32AddressEncode("avax-X", [20]byte{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Sanity: a valid address decodes back to 20 bytes.
	if _, _, err := Bech32AddressDecode(words); err != nil {
		t.Fatalf("decode valid address: %v", err)
	}

	// A well-formed bech32 string carrying a 19-byte payload is rejected.
	short, err := bech32.ConvertBits(make([]byte, 19), 8, 5, true)
	if err != nil {
		t.Fatalf("convert bits: %v", err)
	}
	encoded, err := bech32.Encode("avax-x", short)
	if err != nil {
		t.Fatalf("bech32 encode: %v", err)
	}
	if _, _, err := Bech32AddressDecode(encoded); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("decode 19-byte payload: err = %v, want ErrInvalidLength", err)
	}
}
