package avax

import (
	"encoding/binary"

	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// LatestCodecVersion is the only codec version this module emits.
const LatestCodecVersion uint16 = 0

// UTXO is an individual unspent-output record.
type UTXO struct {
	CodecVersion uint16
	TxID         ids.ID
	OutputIndex  uint32
	Asset        ids.ID
	Out          Output
}

// ID returns this UTXO's ID: cb58(txid ‖ be32(outputIdx)).
func (u *UTXO) ID() string {
	return UTXOID(u.TxID, u.OutputIndex)
}

// UTXOID computes the cb58 UTXO-ID string for a (txid, outputIdx) pair.
func UTXOID(txID ids.ID, outputIndex uint32) string {
	buf := make([]byte, ids.IDLen+4)
	copy(buf, txID[:])
	binary.BigEndian.PutUint32(buf[ids.IDLen:], outputIndex)
	return codec.CB58Encode(buf)
}

// Marshal writes codecVersion(2) ‖ txid(32) ‖ outputIdx(4) ‖ assetID(32) ‖
// typed output.
func (u *UTXO) Marshal(p *codec.Packer, typeIDs *TypeIDs) {
	p.PackShort(u.CodecVersion)
	p.PackFixedBytes(u.TxID[:])
	p.PackInt(u.OutputIndex)
	p.PackFixedBytes(u.Asset[:])
	MarshalOutput(p, typeIDs, u.Out)
}

// UTXOBytes returns the canonical wire form of u.
func UTXOBytes(typeIDs *TypeIDs, u *UTXO) ([]byte, error) {
	p := codec.NewPacker()
	u.Marshal(p, typeIDs)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Bytes, nil
}

// UnmarshalUTXO reads the wire form written by Marshal.
func UnmarshalUTXO(p *codec.Packer, typeIDs *TypeIDs) (*UTXO, error) {
	codecVersion := p.UnpackShort()
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
	out, err := UnmarshalOutput(p, typeIDs)
	if err != nil {
		return nil, err
	}
	return &UTXO{
		CodecVersion: codecVersion,
		TxID:         txID,
		OutputIndex:  outputIdx,
		Asset:        asset,
		Out:          out,
	}, nil
}

// Copy returns a shallow struct copy of u; Out is shared (outputs are
// treated as immutable once constructed).
func (u *UTXO) Copy() *UTXO {
	cp := *u
	return &cp
}
