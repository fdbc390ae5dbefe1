// Package keychain abstracts the elliptic-curve signing capability that the
// rest of this module consumes. The core never touches private key material
// directly; it asks a KeyChain to sign a digest on behalf of an address.
package keychain

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address derivation needs ripemd160, same as the upstream chain's address scheme.

	"github.com/coldtrail/utxotx/ids"
)

// SignatureLen is the width of a 65-byte recoverable secp256k1 signature
// (r ‖ s ‖ v).
const SignatureLen = 65

// KeyChain is the capability the signing pipeline consumes: check whether it
// holds a key for an address, and produce a signature over a digest.
type KeyChain interface {
	// HasAddress reports whether this keychain can sign on behalf of addr.
	HasAddress(addr ids.Address) bool
	// Sign produces a 65-byte recoverable signature over digest using the
	// key that owns addr.
	Sign(addr ids.Address, digest [32]byte) ([SignatureLen]byte, error)
}

// PrivateKey wraps a secp256k1 private key and exposes the address it
// derives, using the same sha256-then-ripemd160 scheme as the upstream
// chain's short addresses.
type PrivateKey struct {
	key     *btcec.PrivateKey
	address ids.Address
}

// NewPrivateKey derives the address for priv and wraps it.
func NewPrivateKey(priv *btcec.PrivateKey) (*PrivateKey, error) {
	addr, err := AddressFromPublicKey(priv.PubKey())
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: priv, address: addr}, nil
}

// Address returns the 20-byte address derived from the key's public key.
func (p *PrivateKey) Address() ids.Address {
	return p.address
}

// AddressFromPublicKey hashes a compressed secp256k1 public key with
// sha256 then ripemd160, matching the upstream chain's short-address scheme.
func AddressFromPublicKey(pub *btcec.PublicKey) (ids.Address, error) {
	shaSum := shaHash(pub.SerializeCompressed())
	h := ripemd160.New()
	if _, err := h.Write(shaSum); err != nil {
		return ids.Address{}, fmt.Errorf("ripemd160 address hash: %w", err)
	}
	return ids.AddressFromBytes(h.Sum(nil))
}

// Sign produces a 65-byte recoverable signature (r ‖ s ‖ v) over digest.
func (p *PrivateKey) Sign(digest [32]byte) ([SignatureLen]byte, error) {
	var out [SignatureLen]byte
	sig, err := ecdsaSignRecoverable(p.key, digest)
	if err != nil {
		return out, err
	}
	copy(out[:], sig)
	return out, nil
}

// MemKeyChain is an in-memory KeyChain over a fixed set of private keys. It
// is a minimal concrete implementation for tests and CLI use; production
// callers are expected to supply their own KeyChain backed by a hardware
// wallet or remote signer.
type MemKeyChain struct {
	keys map[ids.Address]*PrivateKey
}

// NewMemKeyChain builds a KeyChain over keys, indexed by derived address.
func NewMemKeyChain(keys ...*PrivateKey) *MemKeyChain {
	m := &MemKeyChain{keys: make(map[ids.Address]*PrivateKey, len(keys))}
	for _, k := range keys {
		m.keys[k.Address()] = k
	}
	return m
}

// HasAddress implements KeyChain.
func (m *MemKeyChain) HasAddress(addr ids.Address) bool {
	_, ok := m.keys[addr]
	return ok
}

// Sign implements KeyChain.
func (m *MemKeyChain) Sign(addr ids.Address, digest [32]byte) ([SignatureLen]byte, error) {
	key, ok := m.keys[addr]
	if !ok {
		return [SignatureLen]byte{}, fmt.Errorf("keychain: no key for address %s", addr)
	}
	return key.Sign(digest)
}

// verify is a package-private helper kept next to Sign so both directions of
// the ECDSA math live in one place; it is only exercised by tests.
func verify(pub *ecdsa.PublicKey, digest [32]byte, sig []byte) bool {
	return ecdsaVerify(pub, digest, sig)
}
