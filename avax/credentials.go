package avax

import (
	"fmt"

	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/keychain"
)

// Credential bundles the signatures attached to one input, in the same
// order as that input's SigIndices.
type Credential struct {
	CredKind   CredentialKind
	Signatures [][keychain.SignatureLen]byte
}

// Marshal writes credTag ‖ numSigs ‖ sigs.
func (c *Credential) Marshal(p *codec.Packer, typeIDs *TypeIDs) {
	p.PackInt(typeIDs.credentialID(c.CredKind))
	p.PackCount(len(c.Signatures))
	for _, sig := range c.Signatures {
		p.PackFixedBytes(sig[:])
	}
}

// UnmarshalCredential reads credTag ‖ numSigs ‖ sigs.
func UnmarshalCredential(p *codec.Packer, typeIDs *TypeIDs) (*Credential, error) {
	typeID := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	kind, ok := typeIDs.credentialKind(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: credential type %d", codec.ErrUnknownTypeID, typeID)
	}

	numSigs := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	sigs := make([][keychain.SignatureLen]byte, numSigs)
	for i := range sigs {
		raw := p.UnpackFixedBytes(keychain.SignatureLen)
		if p.Err != nil {
			return nil, p.Err
		}
		copy(sigs[i][:], raw)
	}
	return &Credential{CredKind: kind, Signatures: sigs}, nil
}
