package txs

import (
	"fmt"
	"unicode"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
)

// MaxAssetNameLen and MaxSymbolLen bound CreateAssetTx's name/symbol fields.
const (
	MaxAssetNameLen = 128
	MaxSymbolLen    = 4
	MaxDenomination = 32
)

// InitialState binds a feature-extension ID to the outputs it mints at
// asset-creation time (e.g. the secp256k1 fx minting the initial supply).
type InitialState struct {
	FxID uint32
	Outs []avax.Output
}

func (s *InitialState) marshal(p *codec.Packer, typeIDs *avax.TypeIDs) {
	p.PackInt(s.FxID)
	p.PackCount(len(s.Outs))
	for _, out := range s.Outs {
		avax.MarshalOutput(p, typeIDs, out)
	}
}

func unmarshalInitialState(p *codec.Packer, typeIDs *avax.TypeIDs) (*InitialState, error) {
	fxID := p.UnpackInt()
	numOuts := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	outs := make([]avax.Output, numOuts)
	for i := range outs {
		out, err := avax.UnmarshalOutput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		outs[i] = out
	}
	return &InitialState{FxID: fxID, Outs: outs}, nil
}

// CreateAssetTx defines a new asset: its name, ticker symbol, the number of
// decimal places it's denominated in, and the outputs that mint its initial
// supply.
type CreateAssetTx struct {
	BaseTx        *BaseTx
	Name          string
	Symbol        string
	Denomination  uint8
	InitialStates []*InitialState
}

// NewCreateAssetTx validates name/symbol/denomination before returning the
// transaction body.
func NewCreateAssetTx(base *BaseTx, name, symbol string, denomination uint8, initialStates []*InitialState) (*CreateAssetTx, error) {
	if len(name) == 0 || len(name) > MaxAssetNameLen {
		return nil, fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}
	if len(symbol) == 0 || len(symbol) > MaxSymbolLen || !isASCII(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrSymbolInvalid, symbol)
	}
	if denomination > MaxDenomination {
		return nil, fmt.Errorf("%w: %d", ErrDenominationRange, denomination)
	}
	return &CreateAssetTx{
		BaseTx:        base,
		Name:          name,
		Symbol:        symbol,
		Denomination:  denomination,
		InitialStates: initialStates,
	}, nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func (t *CreateAssetTx) Kind() TxKind  { return KindCreateAssetTx }
func (t *CreateAssetTx) Base() *BaseTx { return t.BaseTx }

func (t *CreateAssetTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	t.BaseTx.marshalFields(p, typeIDs)
	p.PackBytes([]byte(t.Name))
	p.PackBytes([]byte(t.Symbol))
	p.PackByte(t.Denomination)
	p.PackCount(len(t.InitialStates))
	for _, s := range t.InitialStates {
		s.marshal(p, typeIDs)
	}
}

// UnmarshalCreateAssetTx reads a CreateAssetTx body written by marshalBody.
func UnmarshalCreateAssetTx(p *codec.Packer, typeIDs *avax.TypeIDs) (*CreateAssetTx, error) {
	base, err := unmarshalBaseTxFields(p, typeIDs)
	if err != nil {
		return nil, err
	}

	nameBytes := p.UnpackBytes()
	symbolBytes := p.UnpackBytes()
	denom := p.UnpackByte()
	numStates := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}

	states := make([]*InitialState, numStates)
	for i := range states {
		s, err := unmarshalInitialState(p, typeIDs)
		if err != nil {
			return nil, err
		}
		states[i] = s
	}

	return &CreateAssetTx{
		BaseTx:        base,
		Name:          string(nameBytes),
		Symbol:        string(symbolBytes),
		Denomination:  denom,
		InitialStates: states,
	}, nil
}
