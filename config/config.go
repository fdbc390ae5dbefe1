// Package config holds the static, non-secret configuration a builder or
// façade needs: per-network chain tables, wire-format constants, and the
// per-chain TypeIDs tables that AVM and PlatformVM fill in with their own
// numeric IDs for the same logical output/input/credential kinds.
package config

import (
	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/ids"
	"github.com/coldtrail/utxotx/txs"
)

// Wire-format constants, fixed regardless of network.
const (
	MinStake      uint64 = 2_000 * OneAVAX
	OneAVAX       uint64 = 1_000_000_000
	AssetNameLen         = 128
	SymbolMaxLen         = 4
	AddressLength        = 20
	AssetIDLen           = 32
	LatestCodec   uint16 = 0

	// GooseEggFeeThreshold is the "absurd fee" multiple from the goose-egg
	// check: fee > GooseEggFeeThreshold*OneAVAX AND fee > outputTotal(AVAX)
	// is rejected.
	GooseEggFeeThreshold = 10
)

// Network IDs, matching the node's own numbering.
const (
	MainnetID uint32 = 1
	TestnetID uint32 = 5
	LocalID   uint32 = 12345
)

// Chain aliases.
const (
	XChainAlias = "X"
	PChainAlias = "P"
	CChainAlias = "C"
)

// ChainConfig holds the per-chain settings a façade needs to build and
// submit transactions on one chain of one network.
type ChainConfig struct {
	BlockchainID ids.ID
	Alias        string
	TxFee        uint64
	CreateAssetTxFee uint64
}

// NetworkConfig is the full per-network table: blockchain IDs, aliases and
// fees for every chain this module knows how to build transactions for.
type NetworkConfig struct {
	NetworkID uint32
	HRP       string
	Chains    map[string]ChainConfig
}

// Networks is the static networkID -> config table. BlockchainIDs below are
// placeholders recognizable as such (all-zero is never a production
// blockchain ID); callers deploying against a real network supply their own
// NetworkConfig rather than relying on these defaults.
var Networks = map[uint32]*NetworkConfig{
	MainnetID: {
		NetworkID: MainnetID,
		HRP:       "avax",
		Chains: map[string]ChainConfig{
			XChainAlias: {Alias: XChainAlias, TxFee: 1_000_000, CreateAssetTxFee: 10_000_000},
			PChainAlias: {Alias: PChainAlias, TxFee: 1_000_000, CreateAssetTxFee: 10_000_000},
		},
	},
	TestnetID: {
		NetworkID: TestnetID,
		HRP:       "fuji",
		Chains: map[string]ChainConfig{
			XChainAlias: {Alias: XChainAlias, TxFee: 1_000_000, CreateAssetTxFee: 10_000_000},
			PChainAlias: {Alias: PChainAlias, TxFee: 1_000_000, CreateAssetTxFee: 10_000_000},
		},
	},
	LocalID: {
		NetworkID: LocalID,
		HRP:       "local",
		Chains: map[string]ChainConfig{
			XChainAlias: {Alias: XChainAlias, TxFee: 0, CreateAssetTxFee: 0},
			PChainAlias: {Alias: PChainAlias, TxFee: 0, CreateAssetTxFee: 0},
		},
	},
}

// AVMTypeIDs is the wire-type table AVM (X-chain) codecs use.
var AVMTypeIDs = &avax.TypeIDs{
	SECPTransferOutput: 7,
	SECPMintOutput:     6,
	NFTTransferOutput:  11,
	NFTMintOutput:      10,

	SECPTransferInput: 5,
	SECPMintInput:     6,
	NFTTransferInput:  13,
	NFTMintInput:       12,

	SECPCredential: 9,
	NFTCredential:  14,
}

// PlatformVMTypeIDs is the wire-type table PlatformVM (P-chain) codecs use.
// PlatformVM has no NFT support; those entries are unused sentinel values
// that never appear on the wire for this chain.
var PlatformVMTypeIDs = &avax.TypeIDs{
	SECPTransferOutput: 7,
	SECPMintOutput:     6,
	NFTTransferOutput:  0xFFFFFFFE,
	NFTMintOutput:      0xFFFFFFFD,

	SECPTransferInput: 5,
	SECPMintInput:     6,
	NFTTransferInput:  0xFFFFFFFC,
	NFTMintInput:      0xFFFFFFFB,

	SECPCredential: 9,
	NFTCredential:  0xFFFFFFFA,
}

// AVMTxTypeIDs is the transaction-envelope wire table AVM uses.
var AVMTxTypeIDs = &txs.TypeIDs{
	BaseTx:        0,
	CreateAssetTx: 1,
	OperationTx:   2,
	ImportTx:      3,
	ExportTx:      4,

	NFTTransferOp: 12,
	NFTMintOp:     13,
}

// PlatformVMTxTypeIDs is the transaction-envelope wire table PlatformVM
// uses. PlatformVM has no CreateAssetTx/OperationTx equivalents; those type
// IDs are unused sentinel values that never appear on the wire.
var PlatformVMTxTypeIDs = &txs.TypeIDs{
	BaseTx:               0,
	ImportTx:             1,
	ExportTx:             2,
	AddValidatorTx:       3,
	AddDelegatorTx:       4,
	AddSubnetValidatorTx: 5,

	CreateAssetTx: 0xFFFFFFF0,
	OperationTx:   0xFFFFFFF1,
	NFTTransferOp: 0xFFFFFFF2,
	NFTMintOp:     0xFFFFFFF3,
}
