package avax

import (
	"fmt"

	"github.com/coldtrail/utxotx/codec"
)

// Input is the common interface every typed input variant implements.
// SigIndices are ascending indices into the referenced output's owner
// address list.
type Input interface {
	Kind() InputKind
	SigIndices() []uint32
	Amount() (uint64, bool)
	GroupID() (uint32, bool)
	marshalBody(p *codec.Packer)
}

func sigIndicesAscending(idxs []uint32) bool {
	for i := 1; i < len(idxs); i++ {
		if idxs[i-1] >= idxs[i] {
			return false
		}
	}
	return true
}

func marshalSigIndices(p *codec.Packer, idxs []uint32) {
	p.PackCount(len(idxs))
	for _, i := range idxs {
		p.PackInt(i)
	}
}

func unmarshalSigIndices(p *codec.Packer) []uint32 {
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

// SECPTransferInput spends an amount-bearing SECP256k1 output.
type SECPTransferInput struct {
	Amt     uint64
	SigIdxs []uint32
}

func NewSECPTransferInput(amt uint64, sigIdxs []uint32) (*SECPTransferInput, error) {
	if !sigIndicesAscending(sigIdxs) {
		return nil, fmt.Errorf("avax: sig indices must be strictly ascending")
	}
	return &SECPTransferInput{Amt: amt, SigIdxs: sigIdxs}, nil
}

func (i *SECPTransferInput) Kind() InputKind        { return KindSECPTransferInput }
func (i *SECPTransferInput) SigIndices() []uint32   { return i.SigIdxs }
func (i *SECPTransferInput) Amount() (uint64, bool)  { return i.Amt, true }
func (i *SECPTransferInput) GroupID() (uint32, bool) { return 0, false }
func (i *SECPTransferInput) marshalBody(p *codec.Packer) {
	p.PackLong(i.Amt)
	marshalSigIndices(p, i.SigIdxs)
}

// SECPMintInput spends a mint-right output; it carries no amount.
type SECPMintInput struct {
	SigIdxs []uint32
}

func (i *SECPMintInput) Kind() InputKind        { return KindSECPMintInput }
func (i *SECPMintInput) SigIndices() []uint32   { return i.SigIdxs }
func (i *SECPMintInput) Amount() (uint64, bool)  { return 0, false }
func (i *SECPMintInput) GroupID() (uint32, bool) { return 0, false }
func (i *SECPMintInput) marshalBody(p *codec.Packer) {
	marshalSigIndices(p, i.SigIdxs)
}

// NFTTransferInput spends an NFT transfer output.
type NFTTransferInput struct {
	Group   uint32
	SigIdxs []uint32
}

func (i *NFTTransferInput) Kind() InputKind        { return KindNFTTransferInput }
func (i *NFTTransferInput) SigIndices() []uint32   { return i.SigIdxs }
func (i *NFTTransferInput) Amount() (uint64, bool)  { return 0, false }
func (i *NFTTransferInput) GroupID() (uint32, bool) { return i.Group, true }
func (i *NFTTransferInput) marshalBody(p *codec.Packer) {
	p.PackInt(i.Group)
	marshalSigIndices(p, i.SigIdxs)
}

// NFTMintInput spends an NFT mint-right output.
type NFTMintInput struct {
	Group   uint32
	SigIdxs []uint32
}

func (i *NFTMintInput) Kind() InputKind        { return KindNFTMintInput }
func (i *NFTMintInput) SigIndices() []uint32   { return i.SigIdxs }
func (i *NFTMintInput) Amount() (uint64, bool)  { return 0, false }
func (i *NFTMintInput) GroupID() (uint32, bool) { return i.Group, true }
func (i *NFTMintInput) marshalBody(p *codec.Packer) {
	p.PackInt(i.Group)
	marshalSigIndices(p, i.SigIdxs)
}

// MarshalInput writes the typeID and then the variant's body.
func MarshalInput(p *codec.Packer, typeIDs *TypeIDs, in Input) {
	p.PackInt(typeIDs.inputID(in.Kind()))
	in.marshalBody(p)
}

// UnmarshalInput reads a typeID and dispatches to the matching variant.
func UnmarshalInput(p *codec.Packer, typeIDs *TypeIDs) (Input, error) {
	typeID := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	kind, ok := typeIDs.inputKind(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: input type %d", codec.ErrUnknownTypeID, typeID)
	}

	switch kind {
	case KindSECPTransferInput:
		amt := p.UnpackLong()
		idxs := unmarshalSigIndices(p)
		if p.Err != nil {
			return nil, p.Err
		}
		return &SECPTransferInput{Amt: amt, SigIdxs: idxs}, nil
	case KindSECPMintInput:
		idxs := unmarshalSigIndices(p)
		if p.Err != nil {
			return nil, p.Err
		}
		return &SECPMintInput{SigIdxs: idxs}, nil
	case KindNFTTransferInput:
		group := p.UnpackInt()
		idxs := unmarshalSigIndices(p)
		if p.Err != nil {
			return nil, p.Err
		}
		return &NFTTransferInput{Group: group, SigIdxs: idxs}, nil
	case KindNFTMintInput:
		group := p.UnpackInt()
		idxs := unmarshalSigIndices(p)
		if p.Err != nil {
			return nil, p.Err
		}
		return &NFTMintInput{Group: group, SigIdxs: idxs}, nil
	default:
		return nil, fmt.Errorf("%w: input type %d", codec.ErrUnknownTypeID, typeID)
	}
}
