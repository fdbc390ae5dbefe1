package keychain

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

func shaHash(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// ecdsaSignRecoverable signs digest and returns a 65-byte r ‖ s ‖ v
// signature, where v is the plain (0 or 1) recovery id rather than btcec's
// compact-signature header byte.
func ecdsaSignRecoverable(key *btcec.PrivateKey, digest [32]byte) ([]byte, error) {
	compact := btcecdsa.SignCompact(key, digest[:], false)
	if len(compact) != 1+32+32 {
		return nil, fmt.Errorf("keychain: unexpected compact signature length %d", len(compact))
	}

	header := compact[0]
	recID := header - 27
	if recID >= 4 {
		recID -= 4
	}

	out := make([]byte, SignatureLen)
	copy(out[:64], compact[1:])
	out[64] = recID
	return out, nil
}

// ecdsaVerify recovers the public key from sig and checks it matches pub.
func ecdsaVerify(pub *ecdsa.PublicKey, digest [32]byte, sig []byte) bool {
	if len(sig) != SignatureLen {
		return false
	}
	compact := make([]byte, SignatureLen)
	compact[0] = 27 + sig[64]
	copy(compact[1:], sig[:64])

	recoveredPub, _, err := btcecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return false
	}
	recovered := recoveredPub.ToECDSA()
	return recovered.X.Cmp(pub.X) == 0 && recovered.Y.Cmp(pub.Y) == 0
}
