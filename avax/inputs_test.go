package avax

import (
	"testing"

	"github.com/coldtrail/utxotx/codec"
)

func TestInputRoundTripAllKinds(t *testing.T) {
	typeIDs := testTypeIDs()
	cases := []Input{
		&SECPTransferInput{Amt: 5, SigIdxs: []uint32{0, 2}},
		&SECPMintInput{SigIdxs: []uint32{1}},
		&NFTTransferInput{Group: 7, SigIdxs: []uint32{0}},
		&NFTMintInput{Group: 7, SigIdxs: []uint32{0, 1}},
	}

	for _, want := range cases {
		p := codec.NewPacker()
		MarshalInput(p, typeIDs, want)
		if p.Err != nil {
			t.Fatalf("marshal(%T): %v", want, p.Err)
		}
		got, err := UnmarshalInput(codec.NewPackerFromBytes(p.Bytes), typeIDs)
		if err != nil {
			t.Fatalf("unmarshal(%T): %v", want, err)
		}
		if got.Kind() != want.Kind() {
			t.Fatalf("kind mismatch: got %v, want %v", got.Kind(), want.Kind())
		}
	}
}

func TestNewSECPTransferInputRejectsUnsortedSigIndices(t *testing.T) {
	if _, err := NewSECPTransferInput(1, []uint32{2, 0}); err == nil {
		t.Fatal("expected error for non-ascending sig indices")
	}
	if _, err := NewSECPTransferInput(1, []uint32{0, 0}); err == nil {
		t.Fatal("expected error for duplicate sig indices")
	}
	if _, err := NewSECPTransferInput(1, []uint32{0, 1, 2}); err != nil {
		t.Fatalf("ascending sig indices should be accepted: %v", err)
	}
}

func TestUnmarshalInputUnknownTypeID(t *testing.T) {
	typeIDs := testTypeIDs()
	p := codec.NewPacker()
	p.PackInt(999999)
	if _, err := UnmarshalInput(codec.NewPackerFromBytes(p.Bytes), typeIDs); err == nil {
		t.Fatal("expected error for unknown input type id")
	}
}
