package txs

import "fmt"

// TxKind is the logical transaction-body variant. The numeric wire value
// for each kind is per-chain, supplied by a TypeIDs table, mirroring how
// avax.TypeIDs maps output/input/credential kinds to per-chain numbers.
type TxKind uint8

const (
	KindBaseTx TxKind = iota
	KindCreateAssetTx
	KindOperationTx
	KindImportTx
	KindExportTx
	KindAddValidatorTx
	KindAddDelegatorTx
	KindAddSubnetValidatorTx
)

// OpKind is the logical variant of a TransferableOp inside an OperationTx.
type OpKind uint8

const (
	KindNFTTransferOp OpKind = iota
	KindNFTMintOp
)

// TypeIDs maps TxKind/OpKind to the 32-bit wire type IDs a chain's codec
// uses for its transaction envelope.
type TypeIDs struct {
	BaseTx               uint32
	CreateAssetTx        uint32
	OperationTx          uint32
	ImportTx             uint32
	ExportTx             uint32
	AddValidatorTx       uint32
	AddDelegatorTx       uint32
	AddSubnetValidatorTx uint32

	NFTTransferOp uint32
	NFTMintOp     uint32
}

func (t *TypeIDs) txID(k TxKind) uint32 {
	switch k {
	case KindBaseTx:
		return t.BaseTx
	case KindCreateAssetTx:
		return t.CreateAssetTx
	case KindOperationTx:
		return t.OperationTx
	case KindImportTx:
		return t.ImportTx
	case KindExportTx:
		return t.ExportTx
	case KindAddValidatorTx:
		return t.AddValidatorTx
	case KindAddDelegatorTx:
		return t.AddDelegatorTx
	case KindAddSubnetValidatorTx:
		return t.AddSubnetValidatorTx
	default:
		panic(fmt.Sprintf("txs: unknown tx kind %d", k))
	}
}

func (t *TypeIDs) txKind(typeID uint32) (TxKind, bool) {
	switch typeID {
	case t.BaseTx:
		return KindBaseTx, true
	case t.CreateAssetTx:
		return KindCreateAssetTx, true
	case t.OperationTx:
		return KindOperationTx, true
	case t.ImportTx:
		return KindImportTx, true
	case t.ExportTx:
		return KindExportTx, true
	case t.AddValidatorTx:
		return KindAddValidatorTx, true
	case t.AddDelegatorTx:
		return KindAddDelegatorTx, true
	case t.AddSubnetValidatorTx:
		return KindAddSubnetValidatorTx, true
	default:
		return 0, false
	}
}

func (t *TypeIDs) opID(k OpKind) uint32 {
	switch k {
	case KindNFTTransferOp:
		return t.NFTTransferOp
	case KindNFTMintOp:
		return t.NFTMintOp
	default:
		panic(fmt.Sprintf("txs: unknown op kind %d", k))
	}
}

func (t *TypeIDs) opKind(typeID uint32) (OpKind, bool) {
	switch typeID {
	case t.NFTTransferOp:
		return KindNFTTransferOp, true
	case t.NFTMintOp:
		return KindNFTMintOp, true
	default:
		return 0, false
	}
}
