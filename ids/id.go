// Package ids implements the fixed-width identifier types used pervasively
// by this module: 32-byte IDs (asset IDs, transaction IDs, chain IDs) and
// 20-byte addresses, both with cb58 string encoding.
package ids

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/coldtrail/utxotx/codec"
)

// IDLen is the width in bytes of an ID.
const IDLen = 32

// ID is an opaque 32-byte identifier, compared byte-wise. It is used for
// asset IDs, transaction IDs, blockchain IDs and UTXO output hashes.
type ID [IDLen]byte

// Empty is the all-zero ID.
var Empty ID

// FromBytes copies b into a new ID. It errors if b is not exactly IDLen
// bytes.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLen {
		return id, fmt.Errorf("%w: id must be %d bytes, got %d", codec.ErrInvalidLength, IDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// FromString parses a cb58-encoded ID.
func FromString(s string) (ID, error) {
	b, err := codec.CB58Decode(s)
	if err != nil {
		return ID{}, err
	}
	return FromBytes(b)
}

// Compare returns -1, 0 or 1 depending on the byte-wise ordering of id and
// other.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// Bytes returns a copy of the raw 32 bytes.
func (id ID) Bytes() []byte {
	b := make([]byte, IDLen)
	copy(b, id[:])
	return b
}

// String cb58-encodes the ID.
func (id ID) String() string {
	return codec.CB58Encode(id[:])
}

// IsEmpty reports whether this is the all-zero ID.
func (id ID) IsEmpty() bool {
	return id == Empty
}

// MarshalJSON renders the ID as its cb58 string form, quoted.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON parses a cb58 string form into the ID.
func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// SortIDs sorts ids in place in ascending byte order.
func SortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Compare(ids[j]) < 0
	})
}

// IDsAreSortedAndUnique reports whether ids is strictly ascending.
func IDsAreSortedAndUnique(ids []ID) bool {
	for i := 1; i < len(ids); i++ {
		if ids[i-1].Compare(ids[i]) >= 0 {
			return false
		}
	}
	return true
}
