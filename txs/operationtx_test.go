package txs

import (
	"testing"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

func nftOutput(t *testing.T, group uint32, owner ids.Address) *avax.NFTTransferOutput {
	t.Helper()
	return &avax.NFTTransferOutput{
		Group:        group,
		PayloadBytes: []byte("payload"),
		OutOwners:    ids.NewOutputOwners(0, 1, []ids.Address{owner}),
	}
}

func TestOperationTxRoundTrip(t *testing.T) {
	typeIDs := testOutputTypeIDs()
	opTypeIDs := testTxTypeIDs()
	owner := mustAddress(t, 1)

	transferOp := &TransferableOp{
		Asset:   mustID(t, 9),
		UTXOIDs: []UTXORef{{TxID: mustID(t, 2), OutputIndex: 0}},
		Op:      &NFTTransferOp{SigIdxs: []uint32{0}, Output: nftOutput(t, 5, owner)},
	}
	mintOp := &TransferableOp{
		Asset:   mustID(t, 9),
		UTXOIDs: []UTXORef{{TxID: mustID(t, 3), OutputIndex: 0}},
		Op:      &NFTMintOp{SigIdxs: []uint32{0}, GroupID: 5, Outputs: []*avax.NFTTransferOutput{nftOutput(t, 5, owner)}},
	}

	base, err := NewBaseTx(1, mustID(t, 4), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBaseTx: %v", err)
	}
	tx := NewOperationTx(base, []*TransferableOp{transferOp, mintOp}, opTypeIDs)

	p := codec.NewPacker()
	tx.marshalBody(p, typeIDs)
	if p.Err != nil {
		t.Fatalf("marshal: %v", p.Err)
	}

	got, err := UnmarshalOperationTx(codec.NewPackerFromBytes(p.Bytes), typeIDs, opTypeIDs)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Ops) != 2 {
		t.Fatalf("len(Ops) = %d, want 2", len(got.Ops))
	}
	if _, ok := got.Ops[0].Op.(*NFTTransferOp); !ok {
		t.Fatalf("Ops[0].Op type = %T, want *NFTTransferOp", got.Ops[0].Op)
	}
	mint, ok := got.Ops[1].Op.(*NFTMintOp)
	if !ok {
		t.Fatalf("Ops[1].Op type = %T, want *NFTMintOp", got.Ops[1].Op)
	}
	if len(mint.Outputs) != 1 {
		t.Fatalf("len(mint.Outputs) = %d, want 1", len(mint.Outputs))
	}
}

func TestSortTransferableOpsOrdersByFirstUTXORef(t *testing.T) {
	owner := mustAddress(t, 1)
	opHigh := &TransferableOp{
		Asset:   mustID(t, 9),
		UTXOIDs: []UTXORef{{TxID: mustID(t, 9), OutputIndex: 0}},
		Op:      &NFTTransferOp{SigIdxs: []uint32{0}, Output: nftOutput(t, 1, owner)},
	}
	opLow := &TransferableOp{
		Asset:   mustID(t, 9),
		UTXOIDs: []UTXORef{{TxID: mustID(t, 1), OutputIndex: 0}},
		Op:      &NFTTransferOp{SigIdxs: []uint32{0}, Output: nftOutput(t, 1, owner)},
	}

	ops := []*TransferableOp{opHigh, opLow}
	SortTransferableOps(ops)

	if ops[0] != opLow || ops[1] != opHigh {
		t.Fatal("SortTransferableOps did not order by first source UTXO-ID pair")
	}
}
