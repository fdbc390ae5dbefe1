package txs

import (
	"testing"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
)

func TestNewBaseTxRejectsOversizeMemo(t *testing.T) {
	memo := make([]byte, MaxMemoLen+1)
	if _, err := NewBaseTx(1, mustID(t, 1), nil, nil, memo); err == nil {
		t.Fatal("expected error for oversize memo")
	}
}

func TestBaseTxMarshalUnmarshalRoundTrip(t *testing.T) {
	typeIDs := testOutputTypeIDs()
	owner := mustAddress(t, 1)
	base, err := NewBaseTx(5, mustID(t, 2), []*avax.TransferableOutput{sampleOutput(t, 100, owner)}, []*avax.TransferableInput{sampleInput(t, 3, 0, 100)}, []byte("hi"))
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}

	p := codec.NewPacker()
	base.marshalFields(p, typeIDs)
	if p.Err != nil {
		t.Fatalf("marshal: %v", p.Err)
	}

	got, err := UnmarshalBaseTx(codec.NewPackerFromBytes(p.Bytes), typeIDs)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.NetworkID != base.NetworkID || got.BlockchainID != base.BlockchainID {
		t.Fatal("round trip mismatch on network/blockchain id")
	}
	if string(got.Memo) != "hi" {
		t.Fatalf("memo = %q, want %q", got.Memo, "hi")
	}
}

func TestBaseTxAssetTotals(t *testing.T) {
	owner := mustAddress(t, 1)
	base, err := NewBaseTx(1, mustID(t, 2), []*avax.TransferableOutput{sampleOutput(t, 40, owner)}, []*avax.TransferableInput{sampleInput(t, 3, 0, 100)}, nil)
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}
	ins, outs := base.AssetTotals()
	asset := mustID(t, 9)
	if ins[asset] != 100 {
		t.Fatalf("ins[asset] = %d, want 100", ins[asset])
	}
	if outs[asset] != 40 {
		t.Fatalf("outs[asset] = %d, want 40", outs[asset])
	}
}
