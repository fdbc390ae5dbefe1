package ids

import (
	"testing"

	"github.com/coldtrail/utxotx/codec"
)

func addrFor(b byte) Address {
	var a Address
	a[0] = b
	return a
}

// TestOutputOwnersMeetsThreshold covers scenario S2: OutputOwners with
// locktime=0, threshold=1, addresses [X,Y].
func TestOutputOwnersMeetsThreshold(t *testing.T) {
	x := addrFor(1)
	y := addrFor(2)
	owners := NewOutputOwners(0, 1, []Address{y, x}) // unsorted input; NewOutputOwners sorts.

	if got := owners.Addresses(); got[0] != x || got[1] != y {
		t.Fatalf("expected addresses sorted [x,y], got %v", got)
	}

	if !owners.MeetsThreshold([]Address{y}, 1) {
		t.Fatalf("expected [y] to meet threshold at asOf=1")
	}
	if owners.MeetsThreshold(nil, 1) {
		t.Fatalf("expected no candidates to fail threshold")
	}
	if owners.MeetsThreshold([]Address{y}, 0) {
		t.Fatalf("expected locked output (asOf <= locktime) to fail threshold")
	}
}

func TestGetSpendersStopsAtThresholdInOwnerOrder(t *testing.T) {
	a, b, c := addrFor(1), addrFor(2), addrFor(3)
	owners := NewOutputOwners(0, 2, []Address{a, b, c})

	spenders := owners.GetSpenders([]Address{c, a, b}, 1)
	if len(spenders) != 2 {
		t.Fatalf("expected exactly 2 spenders (threshold), got %v", spenders)
	}
	if spenders[0] != a || spenders[1] != b {
		t.Fatalf("expected owner-list order [a,b], got %v", spenders)
	}
}

func TestGetSpendersDeduplicatesCandidates(t *testing.T) {
	a := addrFor(1)
	owners := NewOutputOwners(0, 1, []Address{a})

	spenders := owners.GetSpenders([]Address{a, a, a}, 1)
	if len(spenders) != 1 {
		t.Fatalf("duplicate candidates should contribute at most one match, got %v", spenders)
	}
}

func TestSigIndicesAscendingAndMismatch(t *testing.T) {
	a, b, c := addrFor(1), addrFor(2), addrFor(3)
	owners := NewOutputOwners(0, 2, []Address{a, b, c})

	idxs, ok := owners.SigIndices([]Address{c, a})
	if !ok {
		t.Fatalf("expected sig indices to resolve")
	}
	if len(idxs) != 2 || idxs[0] != 0 || idxs[1] != 2 {
		t.Fatalf("expected ascending indices [0,2], got %v", idxs)
	}

	if _, ok := owners.SigIndices([]Address{addrFor(99)}); ok {
		t.Fatalf("expected a spender outside the owner set to fail")
	}
}

func TestOutputOwnersMarshalUnmarshalRoundTrip(t *testing.T) {
	a, b := addrFor(1), addrFor(2)
	owners := NewOutputOwners(1234, 1, []Address{b, a})

	p := codec.NewPacker()
	owners.Marshal(p)
	if p.Err != nil {
		t.Fatalf("marshal: %v", p.Err)
	}

	r := codec.NewPackerFromBytes(p.Bytes)
	got, err := UnmarshalOutputOwners(r)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(owners) {
		t.Fatalf("got %+v, want %+v", got, owners)
	}
}

func TestUnmarshalOutputOwnersRejectsBadThreshold(t *testing.T) {
	p := codec.NewPacker()
	p.PackLong(0)
	p.PackInt(5) // threshold
	p.PackInt(1) // one address
	a1 := addrFor(1)
	p.PackFixedBytes(a1[:])

	if _, err := UnmarshalOutputOwners(codec.NewPackerFromBytes(p.Bytes)); err == nil {
		t.Fatalf("expected threshold > len(addresses) to be rejected")
	}
}
