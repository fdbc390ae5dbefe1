package txs

import (
	"fmt"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
)

// Tx is a fully signed transaction: an UnsignedTx plus one Credential per
// input, in the same order as the unsigned body's sorted inputs.
type Tx struct {
	Unsigned    *UnsignedTx
	Credentials []*avax.Credential
}

// Marshal writes unsignedBytes ‖ numCreds(4) ‖ credentials.
func (t *Tx) Marshal(p *codec.Packer, typeIDs *avax.TypeIDs, txTypeIDs *TypeIDs) error {
	if len(t.Credentials) != len(t.Unsigned.Body.Base().Ins) {
		return fmt.Errorf("%w: %d credentials, %d inputs", ErrCredentialCount, len(t.Credentials), len(t.Unsigned.Body.Base().Ins))
	}
	t.Unsigned.Marshal(p, typeIDs, txTypeIDs)
	p.PackCount(len(t.Credentials))
	for _, c := range t.Credentials {
		c.Marshal(p, typeIDs)
	}
	return nil
}

// Bytes returns the canonical wire form of the signed transaction.
func (t *Tx) Bytes(typeIDs *avax.TypeIDs, txTypeIDs *TypeIDs) ([]byte, error) {
	p := codec.NewPacker()
	if err := t.Marshal(p, typeIDs, txTypeIDs); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Bytes, nil
}

// UnmarshalTx reads the wire form written by Marshal.
func UnmarshalTx(p *codec.Packer, typeIDs *avax.TypeIDs, txTypeIDs *TypeIDs) (*Tx, error) {
	unsigned, err := UnmarshalUnsignedTx(p, typeIDs, txTypeIDs)
	if err != nil {
		return nil, err
	}

	numCreds := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	creds := make([]*avax.Credential, numCreds)
	for i := range creds {
		c, err := avax.UnmarshalCredential(p, typeIDs)
		if err != nil {
			return nil, err
		}
		creds[i] = c
	}

	if int(numCreds) != len(unsigned.Body.Base().Ins) {
		return nil, fmt.Errorf("%w: %d credentials, %d inputs", ErrCredentialCount, numCreds, len(unsigned.Body.Base().Ins))
	}

	return &Tx{Unsigned: unsigned, Credentials: creds}, nil
}
