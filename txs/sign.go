package txs

import (
	"crypto/sha256"
	"fmt"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/ids"
	"github.com/coldtrail/utxotx/keychain"
)

// Digest returns the SHA-256 digest of the unsigned transaction's canonical
// bytes. This is the single-round SHA-256 the signing pipeline signs over;
// it is distinct from the double-SHA-256 construction btcsuite's chainhash
// package uses for Bitcoin-style block/tx hashing, so that package is not
// reused here.
func Digest(unsigned *UnsignedTx, typeIDs *avax.TypeIDs, txTypeIDs *TypeIDs) ([32]byte, error) {
	raw, err := unsigned.Bytes(typeIDs, txTypeIDs)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(raw), nil
}

// Sign builds a Tx by producing one Credential per input of unsigned's
// body, in input order. ownersByUTXO must map each input's UTXOKey() to the
// OutputOwners of the UTXO it spends, so the signer knows which address
// each of that input's sigIdxs refers to; builders populate this from the
// same UTXOSet coin selection drew from.
func Sign(
	unsigned *UnsignedTx,
	typeIDs *avax.TypeIDs,
	txTypeIDs *TypeIDs,
	ownersByUTXO map[string]*ids.OutputOwners,
	kc keychain.KeyChain,
) (*Tx, error) {
	digest, err := Digest(unsigned, typeIDs, txTypeIDs)
	if err != nil {
		return nil, err
	}

	ins := unsigned.Body.Base().Ins
	credentials := make([]*avax.Credential, len(ins))
	for i, in := range ins {
		owners, ok := ownersByUTXO[string(in.UTXOKey())]
		if !ok {
			return nil, fmt.Errorf("%w: no owners recorded for input %d", ErrStateError, i)
		}

		addrs := owners.Addresses()
		sigIdxs := in.In.SigIndices()
		sigs := make([][keychain.SignatureLen]byte, len(sigIdxs))
		for j, idx := range sigIdxs {
			if int(idx) >= len(addrs) {
				return nil, fmt.Errorf("%w: sig index %d out of range for input %d", avax.ErrSpenderMismatch, idx, i)
			}
			sig, err := kc.Sign(addrs[idx], digest)
			if err != nil {
				return nil, err
			}
			sigs[j] = sig
		}

		credentials[i] = &avax.Credential{
			CredKind:   avax.CredentialKindForInput(in.In.Kind()),
			Signatures: sigs,
		}
	}

	return &Tx{Unsigned: unsigned, Credentials: credentials}, nil
}
