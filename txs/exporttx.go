package txs

import (
	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// ExportTx moves funds from this chain to another chain's atomic UTXO set.
// ExportedOuts are kept separate from BaseTx.Outs: the former become
// atomic UTXOs on the destination chain, the latter are ordinary
// change/destination outputs on this chain.
type ExportTx struct {
	BaseTx            *BaseTx
	DestinationChain  ids.ID
	ExportedOuts      []*avax.TransferableOutput
}

func (t *ExportTx) Kind() TxKind  { return KindExportTx }
func (t *ExportTx) Base() *BaseTx { return t.BaseTx }

func (t *ExportTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	t.BaseTx.marshalFields(p, typeIDs)
	p.PackFixedBytes(t.DestinationChain[:])
	p.PackCount(len(t.ExportedOuts))
	for _, out := range t.ExportedOuts {
		out.Marshal(p, typeIDs)
	}
}

// UnmarshalExportTx reads an ExportTx body written by marshalBody.
func UnmarshalExportTx(p *codec.Packer, typeIDs *avax.TypeIDs) (*ExportTx, error) {
	base, err := unmarshalBaseTxFields(p, typeIDs)
	if err != nil {
		return nil, err
	}

	destChainBytes := p.UnpackFixedBytes(ids.IDLen)
	numExported := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	destChain, err := ids.FromBytes(destChainBytes)
	if err != nil {
		return nil, err
	}

	exported := make([]*avax.TransferableOutput, numExported)
	for i := range exported {
		out, err := avax.UnmarshalTransferableOutput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		exported[i] = out
	}

	return &ExportTx{BaseTx: base, DestinationChain: destChain, ExportedOuts: exported}, nil
}

// AllOutputTotals sums both local and exported outputs per asset.
func (t *ExportTx) AllOutputTotals() map[ids.ID]uint64 {
	totals := make(map[ids.ID]uint64)
	for _, out := range t.BaseTx.Outs {
		if amt, ok := out.Out.Amount(); ok {
			totals[out.Asset] += amt
		}
	}
	for _, out := range t.ExportedOuts {
		if amt, ok := out.Out.Amount(); ok {
			totals[out.Asset] += amt
		}
	}
	return totals
}
