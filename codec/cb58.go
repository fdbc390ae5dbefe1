package codec

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const checksumLen = 4

// CB58Encode encodes payload as base-58 (Bitcoin alphabet, via the teacher's
// btcutil/base58) of payload ‖ sha256(payload)[28:32].
func CB58Encode(payload []byte) string {
	sum := sha256.Sum256(payload)
	buf := make([]byte, len(payload)+checksumLen)
	copy(buf, payload)
	copy(buf[len(payload):], sum[len(sum)-checksumLen:])
	return base58.Encode(buf)
}

// CB58Decode reverses CB58Encode, verifying the trailing 4-byte checksum.
func CB58Decode(s string) ([]byte, error) {
	raw := base58.Decode(s)
	if len(raw) < checksumLen {
		return nil, fmt.Errorf("%w: cb58 string too short", ErrInvalidChecksum)
	}
	payload := raw[:len(raw)-checksumLen]
	gotChecksum := raw[len(raw)-checksumLen:]

	sum := sha256.Sum256(payload)
	wantChecksum := sum[len(sum)-checksumLen:]
	for i := range gotChecksum {
		if gotChecksum[i] != wantChecksum[i] {
			return nil, fmt.Errorf("%w: cb58 checksum mismatch", ErrInvalidChecksum)
		}
	}
	return payload, nil
}
