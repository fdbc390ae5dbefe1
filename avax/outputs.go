package avax

import (
	"fmt"

	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// Output is the common interface every typed output variant implements.
// Amount and GroupID report ok=false when the variant does not carry that
// field, matching the "mixed NFT/amount assets allowed" edge case: coin
// selection skips outputs where Amount's ok is false.
type Output interface {
	Kind() OutputKind
	Owners() *ids.OutputOwners
	Amount() (uint64, bool)
	GroupID() (uint32, bool)
	Payload() ([]byte, bool)
	marshalBody(p *codec.Packer)
}

// SECPTransferOutput is a plain amount-bearing SECP256k1 output.
type SECPTransferOutput struct {
	Amt        uint64
	OutOwners *ids.OutputOwners
}

func (o *SECPTransferOutput) Kind() OutputKind          { return KindSECPTransferOutput }
func (o *SECPTransferOutput) Owners() *ids.OutputOwners { return o.OutOwners }
func (o *SECPTransferOutput) Amount() (uint64, bool)    { return o.Amt, true }
func (o *SECPTransferOutput) GroupID() (uint32, bool)   { return 0, false }
func (o *SECPTransferOutput) Payload() ([]byte, bool)   { return nil, false }
func (o *SECPTransferOutput) marshalBody(p *codec.Packer) {
	p.PackLong(o.Amt)
	o.OutOwners.Marshal(p)
}

// SECPMintOutput grants the right to mint more of an asset; it carries no
// amount.
type SECPMintOutput struct {
	OutOwners *ids.OutputOwners
}

func (o *SECPMintOutput) Kind() OutputKind          { return KindSECPMintOutput }
func (o *SECPMintOutput) Owners() *ids.OutputOwners { return o.OutOwners }
func (o *SECPMintOutput) Amount() (uint64, bool)    { return 0, false }
func (o *SECPMintOutput) GroupID() (uint32, bool)   { return 0, false }
func (o *SECPMintOutput) Payload() ([]byte, bool)   { return nil, false }
func (o *SECPMintOutput) marshalBody(p *codec.Packer) {
	o.OutOwners.Marshal(p)
}

// NFTTransferOutput carries an NFT group ID and opaque payload; it is not
// amount-bearing.
type NFTTransferOutput struct {
	Group      uint32
	PayloadBytes []byte
	OutOwners  *ids.OutputOwners
}

func (o *NFTTransferOutput) Kind() OutputKind          { return KindNFTTransferOutput }
func (o *NFTTransferOutput) Owners() *ids.OutputOwners { return o.OutOwners }
func (o *NFTTransferOutput) Amount() (uint64, bool)    { return 0, false }
func (o *NFTTransferOutput) GroupID() (uint32, bool)   { return o.Group, true }
func (o *NFTTransferOutput) Payload() ([]byte, bool)   { return o.PayloadBytes, true }
func (o *NFTTransferOutput) marshalBody(p *codec.Packer) {
	p.PackInt(o.Group)
	p.PackBytes(o.PayloadBytes)
	o.OutOwners.Marshal(p)
}

// NFTMintOutput grants the right to mint a specific NFT group.
type NFTMintOutput struct {
	Group     uint32
	OutOwners *ids.OutputOwners
}

func (o *NFTMintOutput) Kind() OutputKind          { return KindNFTMintOutput }
func (o *NFTMintOutput) Owners() *ids.OutputOwners { return o.OutOwners }
func (o *NFTMintOutput) Amount() (uint64, bool)    { return 0, false }
func (o *NFTMintOutput) GroupID() (uint32, bool)   { return o.Group, true }
func (o *NFTMintOutput) Payload() ([]byte, bool)   { return nil, false }
func (o *NFTMintOutput) marshalBody(p *codec.Packer) {
	p.PackInt(o.Group)
	o.OutOwners.Marshal(p)
}

// MarshalOutput writes the typeID (looked up in typeIDs for o.Kind()) and
// then the variant's body.
func MarshalOutput(p *codec.Packer, typeIDs *TypeIDs, o Output) {
	p.PackInt(typeIDs.outputID(o.Kind()))
	o.marshalBody(p)
}

// OutputBytes returns the canonical typeID ‖ body bytes for o, used when
// sorting TransferableOutput sequences.
func OutputBytes(typeIDs *TypeIDs, o Output) ([]byte, error) {
	p := codec.NewPacker()
	MarshalOutput(p, typeIDs, o)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Bytes, nil
}

// UnmarshalOutput reads a typeID and dispatches to the matching variant,
// the "SelectOutputClass" dispatch from the design notes.
func UnmarshalOutput(p *codec.Packer, typeIDs *TypeIDs) (Output, error) {
	typeID := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	kind, ok := typeIDs.outputKind(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: output type %d", codec.ErrUnknownTypeID, typeID)
	}

	switch kind {
	case KindSECPTransferOutput:
		amt := p.UnpackLong()
		owners, err := ids.UnmarshalOutputOwners(p)
		if err != nil {
			return nil, err
		}
		if p.Err != nil {
			return nil, p.Err
		}
		return &SECPTransferOutput{Amt: amt, OutOwners: owners}, nil
	case KindSECPMintOutput:
		owners, err := ids.UnmarshalOutputOwners(p)
		if err != nil {
			return nil, err
		}
		return &SECPMintOutput{OutOwners: owners}, nil
	case KindNFTTransferOutput:
		group := p.UnpackInt()
		payload := p.UnpackBytes()
		owners, err := ids.UnmarshalOutputOwners(p)
		if err != nil {
			return nil, err
		}
		if p.Err != nil {
			return nil, p.Err
		}
		return &NFTTransferOutput{Group: group, PayloadBytes: payload, OutOwners: owners}, nil
	case KindNFTMintOutput:
		group := p.UnpackInt()
		owners, err := ids.UnmarshalOutputOwners(p)
		if err != nil {
			return nil, err
		}
		if p.Err != nil {
			return nil, p.Err
		}
		return &NFTMintOutput{Group: group, OutOwners: owners}, nil
	default:
		return nil, fmt.Errorf("%w: output type %d", codec.ErrUnknownTypeID, typeID)
	}
}
