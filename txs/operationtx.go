package txs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// UTXORef identifies a source UTXO an operation consumes, without the asset
// and typed-input fields a TransferableInput carries — operations spend by
// reference only, the outputs they produce carry the new asset state.
type UTXORef struct {
	TxID        ids.ID
	OutputIndex uint32
}

// Bytes returns the (txid ‖ outputIdx) sort/compare key.
func (r UTXORef) Bytes() []byte {
	buf := make([]byte, ids.IDLen+4)
	copy(buf, r.TxID[:])
	binary.BigEndian.PutUint32(buf[ids.IDLen:], r.OutputIndex)
	return buf
}

// Operation is the common interface NFT transfer/mint operations implement.
type Operation interface {
	Kind() OpKind
	SigIndices() []uint32
	marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs)
}

// NFTTransferOp moves one NFT instance to a new owner set.
type NFTTransferOp struct {
	SigIdxs []uint32
	Output  *avax.NFTTransferOutput
}

func (o *NFTTransferOp) Kind() OpKind          { return KindNFTTransferOp }
func (o *NFTTransferOp) SigIndices() []uint32  { return o.SigIdxs }
func (o *NFTTransferOp) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	marshalOpSigIndices(p, o.SigIdxs)
	avax.MarshalOutput(p, typeIDs, o.Output)
}

// NFTMintOp mints new instances of an NFT group to one or more owner sets.
type NFTMintOp struct {
	SigIdxs []uint32
	GroupID uint32
	Outputs []*avax.NFTTransferOutput
}

func (o *NFTMintOp) Kind() OpKind         { return KindNFTMintOp }
func (o *NFTMintOp) SigIndices() []uint32 { return o.SigIdxs }
func (o *NFTMintOp) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	marshalOpSigIndices(p, o.SigIdxs)
	p.PackInt(o.GroupID)
	p.PackCount(len(o.Outputs))
	for _, out := range o.Outputs {
		avax.MarshalOutput(p, typeIDs, out)
	}
}

func marshalOpSigIndices(p *codec.Packer, idxs []uint32) {
	p.PackCount(len(idxs))
	for _, i := range idxs {
		p.PackInt(i)
	}
}

func unmarshalOpSigIndices(p *codec.Packer) []uint32 {
	n := p.UnpackInt()
	if p.Err != nil {
		return nil
	}
	idxs := make([]uint32, n)
	for i := range idxs {
		idxs[i] = p.UnpackInt()
		if p.Err != nil {
			return nil
		}
	}
	return idxs
}

func marshalOperation(p *codec.Packer, opTypeIDs *TypeIDs, typeIDs *avax.TypeIDs, op Operation) {
	p.PackInt(opTypeIDs.opID(op.Kind()))
	op.marshalBody(p, typeIDs)
}

func unmarshalOperation(p *codec.Packer, opTypeIDs *TypeIDs, typeIDs *avax.TypeIDs) (Operation, error) {
	typeID := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	kind, ok := opTypeIDs.opKind(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: operation type %d", codec.ErrUnknownTypeID, typeID)
	}

	switch kind {
	case KindNFTTransferOp:
		idxs := unmarshalOpSigIndices(p)
		if p.Err != nil {
			return nil, p.Err
		}
		out, err := avax.UnmarshalOutput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		nftOut, ok := out.(*avax.NFTTransferOutput)
		if !ok {
			return nil, fmt.Errorf("txs: NFTTransferOp output is not an NFT transfer output")
		}
		return &NFTTransferOp{SigIdxs: idxs, Output: nftOut}, nil
	case KindNFTMintOp:
		idxs := unmarshalOpSigIndices(p)
		group := p.UnpackInt()
		numOuts := p.UnpackInt()
		if p.Err != nil {
			return nil, p.Err
		}
		outs := make([]*avax.NFTTransferOutput, numOuts)
		for i := range outs {
			out, err := avax.UnmarshalOutput(p, typeIDs)
			if err != nil {
				return nil, err
			}
			nftOut, ok := out.(*avax.NFTTransferOutput)
			if !ok {
				return nil, fmt.Errorf("txs: NFTMintOp output is not an NFT transfer output")
			}
			outs[i] = nftOut
		}
		return &NFTMintOp{SigIdxs: idxs, GroupID: group, Outputs: outs}, nil
	default:
		return nil, fmt.Errorf("%w: operation type %d", codec.ErrUnknownTypeID, typeID)
	}
}

// TransferableOp pairs the source UTXOs an operation consumes, the asset
// they belong to, and the operation itself.
type TransferableOp struct {
	Asset   ids.ID
	UTXOIDs []UTXORef
	Op      Operation
}

func (o *TransferableOp) sortKey() []byte {
	if len(o.UTXOIDs) == 0 {
		return nil
	}
	return o.UTXOIDs[0].Bytes()
}

func (o *TransferableOp) marshal(p *codec.Packer, opTypeIDs *TypeIDs, typeIDs *avax.TypeIDs) {
	p.PackFixedBytes(o.Asset[:])
	p.PackCount(len(o.UTXOIDs))
	for _, ref := range o.UTXOIDs {
		p.PackFixedBytes(ref.TxID[:])
		p.PackInt(ref.OutputIndex)
	}
	marshalOperation(p, opTypeIDs, typeIDs, o.Op)
}

func unmarshalTransferableOp(p *codec.Packer, opTypeIDs *TypeIDs, typeIDs *avax.TypeIDs) (*TransferableOp, error) {
	assetBytes := p.UnpackFixedBytes(ids.IDLen)
	numRefs := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	asset, err := ids.FromBytes(assetBytes)
	if err != nil {
		return nil, err
	}

	refs := make([]UTXORef, numRefs)
	for i := range refs {
		txIDBytes := p.UnpackFixedBytes(ids.IDLen)
		outputIdx := p.UnpackInt()
		if p.Err != nil {
			return nil, p.Err
		}
		txID, err := ids.FromBytes(txIDBytes)
		if err != nil {
			return nil, err
		}
		refs[i] = UTXORef{TxID: txID, OutputIndex: outputIdx}
	}

	op, err := unmarshalOperation(p, opTypeIDs, typeIDs)
	if err != nil {
		return nil, err
	}
	return &TransferableOp{Asset: asset, UTXOIDs: refs, Op: op}, nil
}

// SortTransferableOps sorts ops ascending by their first source UTXO-ID
// pair.
func SortTransferableOps(ops []*TransferableOp) {
	sort.SliceStable(ops, func(i, j int) bool {
		return bytes.Compare(ops[i].sortKey(), ops[j].sortKey()) < 0
	})
}

// OperationTx extends BaseTx with a list of operations that consume NFT
// UTXOs and mint or transfer NFT outputs. It carries the tx-envelope
// TypeIDs table (which also holds the NFTTransferOp/NFTMintOp tags) so that
// marshalBody can satisfy the plain Body interface without an extra
// parameter.
type OperationTx struct {
	BaseTx    *BaseTx
	Ops       []*TransferableOp
	opTypeIDs *TypeIDs
}

// NewOperationTx builds an OperationTx bound to the chain's tx-envelope
// TypeIDs table, used both for the OperationTx tag itself and for tagging
// each operation inside Ops.
func NewOperationTx(base *BaseTx, ops []*TransferableOp, txTypeIDs *TypeIDs) *OperationTx {
	return &OperationTx{BaseTx: base, Ops: ops, opTypeIDs: txTypeIDs}
}

func (t *OperationTx) Kind() TxKind  { return KindOperationTx }
func (t *OperationTx) Base() *BaseTx { return t.BaseTx }

func (t *OperationTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	t.BaseTx.marshalFields(p, typeIDs)
	p.PackCount(len(t.Ops))
	for _, op := range t.Ops {
		op.marshal(p, t.opTypeIDs, typeIDs)
	}
}

// UnmarshalOperationTx reads an OperationTx body written by marshalBody.
func UnmarshalOperationTx(p *codec.Packer, typeIDs *avax.TypeIDs, opTypeIDs *TypeIDs) (*OperationTx, error) {
	base, err := unmarshalBaseTxFields(p, typeIDs)
	if err != nil {
		return nil, err
	}
	numOps := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	ops := make([]*TransferableOp, numOps)
	for i := range ops {
		op, err := unmarshalTransferableOp(p, opTypeIDs, typeIDs)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return &OperationTx{BaseTx: base, Ops: ops, opTypeIDs: opTypeIDs}, nil
}
