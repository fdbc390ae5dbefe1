package txs

import (
	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// ImportTx moves funds from another chain's atomic UTXOs onto this chain.
// Fees may be paid from the imported inputs or from ImportedIns being drawn
// down alongside local BaseTx inputs; both possibilities are represented by
// simply letting ImportedIns and BaseTx.Ins both be non-empty.
type ImportTx struct {
	BaseTx      *BaseTx
	SourceChain ids.ID
	ImportedIns []*avax.TransferableInput
}

func (t *ImportTx) Kind() TxKind  { return KindImportTx }
func (t *ImportTx) Base() *BaseTx { return t.BaseTx }

func (t *ImportTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	t.BaseTx.marshalFields(p, typeIDs)
	p.PackFixedBytes(t.SourceChain[:])
	p.PackCount(len(t.ImportedIns))
	for _, in := range t.ImportedIns {
		in.Marshal(p, typeIDs)
	}
}

// UnmarshalImportTx reads an ImportTx body written by marshalBody.
func UnmarshalImportTx(p *codec.Packer, typeIDs *avax.TypeIDs) (*ImportTx, error) {
	base, err := unmarshalBaseTxFields(p, typeIDs)
	if err != nil {
		return nil, err
	}

	sourceChainBytes := p.UnpackFixedBytes(ids.IDLen)
	numImported := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	sourceChain, err := ids.FromBytes(sourceChainBytes)
	if err != nil {
		return nil, err
	}

	imported := make([]*avax.TransferableInput, numImported)
	for i := range imported {
		in, err := avax.UnmarshalTransferableInput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		imported[i] = in
	}

	return &ImportTx{BaseTx: base, SourceChain: sourceChain, ImportedIns: imported}, nil
}

// AllInputTotals sums both local and imported inputs per asset, the shape
// fee-conservation checks need for an ImportTx.
func (t *ImportTx) AllInputTotals() map[ids.ID]uint64 {
	totals := make(map[ids.ID]uint64)
	for _, in := range t.BaseTx.Ins {
		if amt, ok := in.In.Amount(); ok {
			totals[in.Asset] += amt
		}
	}
	for _, in := range t.ImportedIns {
		if amt, ok := in.In.Amount(); ok {
			totals[in.Asset] += amt
		}
	}
	return totals
}
