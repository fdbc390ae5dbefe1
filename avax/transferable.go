package avax

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// TransferableOutput pairs an asset ID with a typed output. Sequences of
// these are sorted by (outputTypeID ‖ output bytes) ascending before a
// digest is ever taken, so two builds over the same inputs always produce
// byte-identical transactions regardless of construction order.
type TransferableOutput struct {
	Asset ids.ID
	Out   Output
}

// Marshal writes assetID ‖ typed output.
func (o *TransferableOutput) Marshal(p *codec.Packer, typeIDs *TypeIDs) {
	p.PackFixedBytes(o.Asset[:])
	MarshalOutput(p, typeIDs, o.Out)
}

// UnmarshalTransferableOutput reads assetID ‖ typed output.
func UnmarshalTransferableOutput(p *codec.Packer, typeIDs *TypeIDs) (*TransferableOutput, error) {
	assetBytes := p.UnpackFixedBytes(ids.IDLen)
	if p.Err != nil {
		return nil, p.Err
	}
	asset, err := ids.FromBytes(assetBytes)
	if err != nil {
		return nil, err
	}
	out, err := UnmarshalOutput(p, typeIDs)
	if err != nil {
		return nil, err
	}
	return &TransferableOutput{Asset: asset, Out: out}, nil
}

// SortTransferableOutputs sorts outs ascending by (outputTypeID ‖ output
// bytes), per spec. If any output cannot be serialized, the error is
// returned and outs is left in its original order.
func SortTransferableOutputs(outs []*TransferableOutput, typeIDs *TypeIDs) error {
	keys := make([][]byte, len(outs))
	for i, o := range outs {
		b, err := OutputBytes(typeIDs, o.Out)
		if err != nil {
			return err
		}
		keys[i] = b
	}

	idx := make([]int, len(outs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return bytes.Compare(keys[idx[i]], keys[idx[j]]) < 0
	})

	sorted := make([]*TransferableOutput, len(outs))
	for newPos, oldPos := range idx {
		sorted[newPos] = outs[oldPos]
	}
	copy(outs, sorted)
	return nil
}

// TransferableOutputsAreSorted reports whether outs is already in the
// canonical ascending order.
func TransferableOutputsAreSorted(outs []*TransferableOutput, typeIDs *TypeIDs) (bool, error) {
	for i := 1; i < len(outs); i++ {
		a, err := OutputBytes(typeIDs, outs[i-1].Out)
		if err != nil {
			return false, err
		}
		b, err := OutputBytes(typeIDs, outs[i].Out)
		if err != nil {
			return false, err
		}
		if bytes.Compare(a, b) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// TransferableInput references a source UTXO and carries a typed input.
// Sequences of these are sorted by (txid ‖ outputIdx) ascending.
type TransferableInput struct {
	TxID        ids.ID
	OutputIndex uint32
	Asset       ids.ID
	In          Input
}

// UTXOKey returns the (txid, outputIdx) byte key used both for sorting and
// for looking the referenced UTXO up in a UTXOSet.
func (i *TransferableInput) UTXOKey() []byte {
	buf := make([]byte, ids.IDLen+4)
	copy(buf, i.TxID[:])
	binary.BigEndian.PutUint32(buf[ids.IDLen:], i.OutputIndex)
	return buf
}

// Marshal writes txid ‖ outputIdx ‖ assetID ‖ typed input.
func (i *TransferableInput) Marshal(p *codec.Packer, typeIDs *TypeIDs) {
	p.PackFixedBytes(i.TxID[:])
	p.PackInt(i.OutputIndex)
	p.PackFixedBytes(i.Asset[:])
	MarshalInput(p, typeIDs, i.In)
}

// UnmarshalTransferableInput reads txid ‖ outputIdx ‖ assetID ‖ typed input.
func UnmarshalTransferableInput(p *codec.Packer, typeIDs *TypeIDs) (*TransferableInput, error) {
	txIDBytes := p.UnpackFixedBytes(ids.IDLen)
	outputIdx := p.UnpackInt()
	assetBytes := p.UnpackFixedBytes(ids.IDLen)
	if p.Err != nil {
		return nil, p.Err
	}
	txID, err := ids.FromBytes(txIDBytes)
	if err != nil {
		return nil, err
	}
	asset, err := ids.FromBytes(assetBytes)
	if err != nil {
		return nil, err
	}
	in, err := UnmarshalInput(p, typeIDs)
	if err != nil {
		return nil, err
	}
	return &TransferableInput{TxID: txID, OutputIndex: outputIdx, Asset: asset, In: in}, nil
}

// SortTransferableInputs sorts ins ascending by (txid ‖ outputIdx).
func SortTransferableInputs(ins []*TransferableInput) {
	sort.SliceStable(ins, func(i, j int) bool {
		return bytes.Compare(ins[i].UTXOKey(), ins[j].UTXOKey()) < 0
	})
}

// TransferableInputsAreSorted reports whether ins is already ascending.
func TransferableInputsAreSorted(ins []*TransferableInput) bool {
	for i := 1; i < len(ins); i++ {
		if bytes.Compare(ins[i-1].UTXOKey(), ins[i].UTXOKey()) > 0 {
			return false
		}
	}
	return true
}
