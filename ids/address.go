package ids

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/coldtrail/utxotx/codec"
)

// AddressLen is the width in bytes of an Address.
const AddressLen = 20

// Address is a raw 20-byte address, compared byte-wise.
type Address [AddressLen]byte

// AddressFromBytes copies b into a new Address.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("%w: address must be %d bytes, got %d", codec.ErrInvalidLength, AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Compare returns -1, 0 or 1 depending on the byte-wise ordering of a and
// other.
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// Bytes returns a copy of the raw 20 bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLen)
	copy(b, a[:])
	return b
}

// Bech32 encodes the address with the given human-readable part.
func (a Address) Bech32(hrp string) (string, error) {
	return codec.Bech32AddressEncode(hrp, a)
}

// String cb58-encodes the raw address bytes. Prefer Bech32 for the
// human-facing wallet address form; String is used for debug output and map
// keys.
func (a Address) String() string {
	return codec.CB58Encode(a[:])
}

// MarshalJSON renders the address as its cb58 string form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON parses a cb58 string form into the address.
func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	raw, err := codec.CB58Decode(s)
	if err != nil {
		return err
	}
	parsed, err := AddressFromBytes(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// SortAddresses sorts addrs in place in ascending byte order.
func SortAddresses(addrs []Address) {
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Compare(addrs[j]) < 0
	})
}

// AddressesAreSortedAndUnique reports whether addrs is strictly ascending.
func AddressesAreSortedAndUnique(addrs []Address) bool {
	for i := 1; i < len(addrs); i++ {
		if addrs[i-1].Compare(addrs[i]) >= 0 {
			return false
		}
	}
	return true
}

// OutputOwners is the (locktime, threshold, addresses) triple that every
// spendable output carries. Addresses are kept sorted ascending; the
// constructor takes ownership of a defensive copy.
type OutputOwners struct {
	Locktime  uint64
	Threshold uint32
	addresses []Address
}

// NewOutputOwners builds an OutputOwners, sorting a copy of addrs.
func NewOutputOwners(locktime uint64, threshold uint32, addrs []Address) *OutputOwners {
	sorted := make([]Address, len(addrs))
	copy(sorted, addrs)
	SortAddresses(sorted)
	return &OutputOwners{
		Locktime:  locktime,
		Threshold: threshold,
		addresses: sorted,
	}
}

// Addresses returns the owner address list. Callers must not mutate it.
func (o *OutputOwners) Addresses() []Address {
	return o.addresses
}

// Verify checks the structural invariant threshold <= len(addresses) and
// that addresses are sorted and unique.
func (o *OutputOwners) Verify() error {
	if int(o.Threshold) > len(o.addresses) {
		return fmt.Errorf("threshold %d exceeds %d addresses", o.Threshold, len(o.addresses))
	}
	if !AddressesAreSortedAndUnique(o.addresses) {
		return fmt.Errorf("addresses are not sorted and unique")
	}
	return nil
}

// GetSpenders walks the owner addresses in their stored order, collecting
// every address that also appears in candidates, stopping once Threshold
// matches have been found. It returns an empty slice if asOf <= Locktime
// (the output is still locked). Duplicates in candidates contribute at most
// one match each; the returned order is the owner-list order, which is why
// downstream signature indices come out ascending for free.
func (o *OutputOwners) GetSpenders(candidates []Address, asOf uint64) []Address {
	if asOf <= o.Locktime {
		return nil
	}

	candidateSet := make(map[Address]bool, len(candidates))
	for _, c := range candidates {
		candidateSet[c] = true
	}

	spenders := make([]Address, 0, o.Threshold)
	for _, owner := range o.addresses {
		if !candidateSet[owner] {
			continue
		}
		spenders = append(spenders, owner)
		if uint32(len(spenders)) == o.Threshold {
			break
		}
	}
	return spenders
}

// MeetsThreshold reports whether GetSpenders(candidates, asOf) would collect
// at least Threshold addresses.
func (o *OutputOwners) MeetsThreshold(candidates []Address, asOf uint64) bool {
	return uint32(len(o.GetSpenders(candidates, asOf))) >= o.Threshold
}

// SigIndices returns, for each address in spenders, its ascending position
// within the owner address list. SpenderMismatch-style bugs (a spender not
// actually present in the owner set) surface as a second return of false.
func (o *OutputOwners) SigIndices(spenders []Address) ([]uint32, bool) {
	pos := make(map[Address]uint32, len(o.addresses))
	for i, addr := range o.addresses {
		pos[addr] = uint32(i)
	}

	idxs := make([]uint32, 0, len(spenders))
	for _, s := range spenders {
		idx, ok := pos[s]
		if !ok {
			return nil, false
		}
		idxs = append(idxs, idx)
	}
	sort.Slice(idxs, func(i, j int) bool { return idxs[i] < idxs[j] })
	return idxs, true
}

// Marshal writes locktime(8) || threshold(4) || numAddrs(4) || addrs.
func (o *OutputOwners) Marshal(p *codec.Packer) {
	p.PackLong(o.Locktime)
	p.PackInt(o.Threshold)
	p.PackCount(len(o.addresses))
	for _, a := range o.addresses {
		p.PackFixedBytes(a[:])
	}
}

// UnmarshalOutputOwners reads the wire form written by Marshal. Per spec,
// decoding does not re-sort; addresses are expected to already be sorted,
// but this defensively verifies that invariant.
func UnmarshalOutputOwners(p *codec.Packer) (*OutputOwners, error) {
	locktime := p.UnpackLong()
	threshold := p.UnpackInt()
	numAddrs := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}

	addrs := make([]Address, numAddrs)
	for i := range addrs {
		raw := p.UnpackFixedBytes(AddressLen)
		if p.Err != nil {
			return nil, p.Err
		}
		addr, err := AddressFromBytes(raw)
		if err != nil {
			return nil, err
		}
		addrs[i] = addr
	}

	owners := &OutputOwners{Locktime: locktime, Threshold: threshold, addresses: addrs}
	if err := owners.Verify(); err != nil {
		return nil, fmt.Errorf("unmarshal output owners: %w", err)
	}
	return owners, nil
}

// Equal reports whether o and other have the same locktime, threshold and
// address list.
func (o *OutputOwners) Equal(other *OutputOwners) bool {
	if other == nil {
		return false
	}
	if o.Locktime != other.Locktime || o.Threshold != other.Threshold {
		return false
	}
	if len(o.addresses) != len(other.addresses) {
		return false
	}
	for i := range o.addresses {
		if o.addresses[i] != other.addresses[i] {
			return false
		}
	}
	return true
}
