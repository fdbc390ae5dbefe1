package txs

import (
	"testing"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/ids"
)

func mustID(t *testing.T, seed byte) ids.ID {
	t.Helper()
	var b [ids.IDLen]byte
	b[0] = seed
	id, err := ids.FromBytes(b[:])
	if err != nil {
		t.Fatalf("mustID: %v", err)
	}
	return id
}

func mustAddress(t *testing.T, seed byte) ids.Address {
	t.Helper()
	var b [ids.AddressLen]byte
	b[0] = seed
	addr, err := ids.AddressFromBytes(b[:])
	if err != nil {
		t.Fatalf("mustAddress: %v", err)
	}
	return addr
}

func testOutputTypeIDs() *avax.TypeIDs {
	return &avax.TypeIDs{
		SECPTransferOutput: 7,
		SECPMintOutput:     6,
		NFTTransferOutput:  11,
		NFTMintOutput:      10,

		SECPTransferInput: 5,
		SECPMintInput:     6,
		NFTTransferInput:  13,
		NFTMintInput:      12,

		SECPCredential: 9,
		NFTCredential:  14,
	}
}

func testTxTypeIDs() *TypeIDs {
	return &TypeIDs{
		BaseTx:               0,
		CreateAssetTx:        1,
		OperationTx:          2,
		ImportTx:             3,
		ExportTx:             4,
		AddValidatorTx:       5,
		AddDelegatorTx:       6,
		AddSubnetValidatorTx: 7,

		NFTTransferOp: 20,
		NFTMintOp:     21,
	}
}

func sampleOutput(t *testing.T, amt uint64, owner ids.Address) *avax.TransferableOutput {
	t.Helper()
	return &avax.TransferableOutput{
		Asset: mustID(t, 9),
		Out: &avax.SECPTransferOutput{
			Amt:       amt,
			OutOwners: ids.NewOutputOwners(0, 1, []ids.Address{owner}),
		},
	}
}

func sampleInput(t *testing.T, txSeed byte, idx uint32, amt uint64) *avax.TransferableInput {
	t.Helper()
	in, err := avax.NewSECPTransferInput(amt, []uint32{0})
	if err != nil {
		t.Fatalf("NewSECPTransferInput: %v", err)
	}
	return &avax.TransferableInput{
		TxID:        mustID(t, txSeed),
		OutputIndex: idx,
		Asset:       mustID(t, 9),
		In:          in,
	}
}
