package avax

import (
	"testing"

	"github.com/coldtrail/utxotx/ids"
)

// mustID returns a deterministic ids.ID for seed, for use as a stand-in
// asset or tx ID in tests that don't care about its actual value.
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

// mustAddress returns a deterministic ids.Address for seed.
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

// testTypeIDs returns a TypeIDs table with distinct, arbitrary numbers,
// standing in for a chain's configured codec table.
func testTypeIDs() *TypeIDs {
	return &TypeIDs{
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
