package txs

import (
	"strings"
	"testing"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

func TestNewCreateAssetTxRejectsOversizeName(t *testing.T) {
	base, err := NewBaseTx(1, mustID(t, 1), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}
	name := strings.Repeat("a", MaxAssetNameLen+1)
	if _, err := NewCreateAssetTx(base, name, "TOK", 0, nil); err == nil {
		t.Fatal("expected error for oversize name")
	}
}

func TestNewCreateAssetTxRejectsOversizeSymbol(t *testing.T) {
	base, err := NewBaseTx(1, mustID(t, 1), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}
	if _, err := NewCreateAssetTx(base, "Token", "TOOLONG", 0, nil); err == nil {
		t.Fatal("expected error for oversize symbol")
	}
}

func TestNewCreateAssetTxRejectsNonASCIISymbol(t *testing.T) {
	base, err := NewBaseTx(1, mustID(t, 1), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}
	if _, err := NewCreateAssetTx(base, "Token", "TéK", 0, nil); err == nil {
		t.Fatal("expected error for non-ASCII symbol")
	}
}

func TestNewCreateAssetTxRejectsOversizeDenomination(t *testing.T) {
	base, err := NewBaseTx(1, mustID(t, 1), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}
	if _, err := NewCreateAssetTx(base, "Token", "TOK", MaxDenomination+1, nil); err == nil {
		t.Fatal("expected error for oversize denomination")
	}
}

func TestCreateAssetTxRoundTrip(t *testing.T) {
	typeIDs := testOutputTypeIDs()
	base, err := NewBaseTx(1, mustID(t, 1), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}
	owner := mustAddress(t, 2)
	state := &InitialState{
		FxID: 0,
		Outs: []avax.Output{&avax.SECPTransferOutput{
			Amt:       1_000_000,
			OutOwners: ids.NewOutputOwners(0, 1, []ids.Address{owner}),
		}},
	}
	tx, err := NewCreateAssetTx(base, "My Token", "TOK", 9, []*InitialState{state})
	if err != nil {
		t.Fatalf("NewCreateAssetTx: %v", err)
	}

	p := codec.NewPacker()
	tx.marshalBody(p, typeIDs)
	if p.Err != nil {
		t.Fatalf("marshal: %v", p.Err)
	}

	got, err := UnmarshalCreateAssetTx(codec.NewPackerFromBytes(p.Bytes), typeIDs)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "My Token" || got.Symbol != "TOK" || got.Denomination != 9 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.InitialStates) != 1 || len(got.InitialStates[0].Outs) != 1 {
		t.Fatalf("InitialStates round trip mismatch: %+v", got.InitialStates)
	}
}
