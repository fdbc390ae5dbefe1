package txs

import (
	"fmt"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
)

// UnsignedTx wraps one transaction body with the codec version and wraps
// the type tagging needed to round-trip it on the wire. Construction from a
// builder already produces sorted outputs/inputs; UnsignedTx itself adds no
// further canonicalization.
type UnsignedTx struct {
	CodecVersion uint16
	Body         Body
}

// NewUnsignedTx wraps body at the latest codec version.
func NewUnsignedTx(body Body) *UnsignedTx {
	return &UnsignedTx{CodecVersion: avax.LatestCodecVersion, Body: body}
}

// Marshal writes codecVersion(2) ‖ txTypeID(4) ‖ body.
func (u *UnsignedTx) Marshal(p *codec.Packer, typeIDs *avax.TypeIDs, txTypeIDs *TypeIDs) {
	p.PackShort(u.CodecVersion)
	p.PackInt(txTypeIDs.txID(u.Body.Kind()))
	u.Body.marshalBody(p, typeIDs)
}

// Bytes returns the canonical wire form of u.
func (u *UnsignedTx) Bytes(typeIDs *avax.TypeIDs, txTypeIDs *TypeIDs) ([]byte, error) {
	p := codec.NewPacker()
	u.Marshal(p, typeIDs, txTypeIDs)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Bytes, nil
}

// UnmarshalUnsignedTx reads the wire form written by Marshal, dispatching
// to the matching body type by its tx-envelope type ID.
func UnmarshalUnsignedTx(p *codec.Packer, typeIDs *avax.TypeIDs, txTypeIDs *TypeIDs) (*UnsignedTx, error) {
	codecVersion := p.UnpackShort()
	typeID := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}

	kind, ok := txTypeIDs.txKind(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: tx type %d", ErrUnknownTxKind, typeID)
	}

	var body Body
	var err error
	switch kind {
	case KindBaseTx:
		body, err = UnmarshalBaseTx(p, typeIDs)
	case KindCreateAssetTx:
		body, err = UnmarshalCreateAssetTx(p, typeIDs)
	case KindOperationTx:
		body, err = UnmarshalOperationTx(p, typeIDs, txTypeIDs)
	case KindImportTx:
		body, err = UnmarshalImportTx(p, typeIDs)
	case KindExportTx:
		body, err = UnmarshalExportTx(p, typeIDs)
	case KindAddValidatorTx:
		body, err = UnmarshalAddValidatorTx(p, typeIDs)
	case KindAddDelegatorTx:
		body, err = UnmarshalAddDelegatorTx(p, typeIDs)
	case KindAddSubnetValidatorTx:
		body, err = UnmarshalAddSubnetValidatorTx(p, typeIDs)
	default:
		return nil, fmt.Errorf("%w: tx type %d", ErrUnknownTxKind, typeID)
	}
	if err != nil {
		return nil, err
	}

	return &UnsignedTx{CodecVersion: codecVersion, Body: body}, nil
}

// BaseTx for a plain BaseTx-shaped unmarshal satisfies Body directly;
// UnmarshalBaseTx already returns one. The switch above relies on the Go
// compiler checking each returned concrete type against Body implicitly
// through the assignment to the body variable.
var (
	_ Body = (*BaseTx)(nil)
	_ Body = (*CreateAssetTx)(nil)
	_ Body = (*OperationTx)(nil)
	_ Body = (*ImportTx)(nil)
	_ Body = (*ExportTx)(nil)
	_ Body = (*AddValidatorTx)(nil)
	_ Body = (*AddDelegatorTx)(nil)
	_ Body = (*AddSubnetValidatorTx)(nil)
)
