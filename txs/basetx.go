package txs

import (
	"fmt"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// MaxMemoLen is the maximum byte length of a BaseTx memo field.
const MaxMemoLen = 256

// Body is the common interface every transaction-body variant implements.
// Kind identifies the variant for wire-type dispatch; Base exposes the
// embedded BaseTx so fee-conservation and goose-egg checks can scan inputs
// and outputs uniformly regardless of the concrete body type.
type Body interface {
	Kind() TxKind
	Base() *BaseTx
	marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs)
}

// BaseTx is the common envelope every transaction body embeds: network and
// chain identity, the sorted outputs and inputs, and an optional memo.
type BaseTx struct {
	NetworkID    uint32
	BlockchainID ids.ID
	Outs         []*avax.TransferableOutput
	Ins          []*avax.TransferableInput
	Memo         []byte
}

// NewBaseTx validates the memo length before returning a BaseTx.
func NewBaseTx(networkID uint32, blockchainID ids.ID, outs []*avax.TransferableOutput, ins []*avax.TransferableInput, memo []byte) (*BaseTx, error) {
	if len(memo) > MaxMemoLen {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrMemoTooLong, len(memo), MaxMemoLen)
	}
	return &BaseTx{
		NetworkID:    networkID,
		BlockchainID: blockchainID,
		Outs:         outs,
		Ins:          ins,
		Memo:         memo,
	}, nil
}

func (b *BaseTx) Kind() TxKind { return KindBaseTx }
func (b *BaseTx) Base() *BaseTx { return b }

func (b *BaseTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	b.marshalFields(p, typeIDs)
}

// marshalFields writes networkID ‖ blockchainID ‖ numOuts ‖ outs ‖ numIns ‖
// ins ‖ memo, shared verbatim by every subclass body.
func (b *BaseTx) marshalFields(p *codec.Packer, typeIDs *avax.TypeIDs) {
	p.PackInt(b.NetworkID)
	p.PackFixedBytes(b.BlockchainID[:])
	p.PackCount(len(b.Outs))
	for _, o := range b.Outs {
		o.Marshal(p, typeIDs)
	}
	p.PackCount(len(b.Ins))
	for _, i := range b.Ins {
		i.Marshal(p, typeIDs)
	}
	p.PackBytes(b.Memo)
}

// unmarshalBaseTxFields reads the fields written by marshalFields.
func unmarshalBaseTxFields(p *codec.Packer, typeIDs *avax.TypeIDs) (*BaseTx, error) {
	networkID := p.UnpackInt()
	blockchainIDBytes := p.UnpackFixedBytes(ids.IDLen)
	if p.Err != nil {
		return nil, p.Err
	}
	blockchainID, err := ids.FromBytes(blockchainIDBytes)
	if err != nil {
		return nil, err
	}

	numOuts := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	outs := make([]*avax.TransferableOutput, numOuts)
	for i := range outs {
		out, err := avax.UnmarshalTransferableOutput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		outs[i] = out
	}

	numIns := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	ins := make([]*avax.TransferableInput, numIns)
	for i := range ins {
		in, err := avax.UnmarshalTransferableInput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		ins[i] = in
	}

	memo := p.UnpackBytes()
	if p.Err != nil {
		return nil, p.Err
	}

	return &BaseTx{
		NetworkID:    networkID,
		BlockchainID: blockchainID,
		Outs:         outs,
		Ins:          ins,
		Memo:         memo,
	}, nil
}

// UnmarshalBaseTx reads a bare BaseTx body (no embedding subclass fields).
func UnmarshalBaseTx(p *codec.Packer, typeIDs *avax.TypeIDs) (*BaseTx, error) {
	return unmarshalBaseTxFields(p, typeIDs)
}

// SortBaseTx sorts b's outputs and inputs into canonical order.
func SortBaseTx(b *BaseTx, outputTypeIDs *avax.TypeIDs) error {
	if err := avax.SortTransferableOutputs(b.Outs, outputTypeIDs); err != nil {
		return err
	}
	avax.SortTransferableInputs(b.Ins)
	return nil
}

// AssetTotals sums every asset's input and output amounts across a BaseTx's
// ins/outs, for fee-conservation checks (inputs - outputs == burn, per
// asset).
func (b *BaseTx) AssetTotals() (ins, outs map[ids.ID]uint64) {
	ins = make(map[ids.ID]uint64)
	outs = make(map[ids.ID]uint64)
	for _, in := range b.Ins {
		if amt, ok := in.In.Amount(); ok {
			ins[in.Asset] += amt
		}
	}
	for _, out := range b.Outs {
		if amt, ok := out.Out.Amount(); ok {
			outs[out.Asset] += amt
		}
	}
	return ins, outs
}
