package avax

import (
	"testing"

	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/keychain"
)

func TestCredentialRoundTrip(t *testing.T) {
	typeIDs := testTypeIDs()
	var sig [keychain.SignatureLen]byte
	sig[0] = 0xAB

	c := &Credential{CredKind: KindSECPCredential, Signatures: [][keychain.SignatureLen]byte{sig}}

	p := codec.NewPacker()
	c.Marshal(p, typeIDs)
	if p.Err != nil {
		t.Fatalf("marshal: %v", p.Err)
	}

	got, err := UnmarshalCredential(codec.NewPackerFromBytes(p.Bytes), typeIDs)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.CredKind != c.CredKind {
		t.Fatalf("CredKind = %v, want %v", got.CredKind, c.CredKind)
	}
	if len(got.Signatures) != 1 || got.Signatures[0] != sig {
		t.Fatal("signature did not round trip")
	}
}

func TestUnmarshalCredentialUnknownTypeID(t *testing.T) {
	typeIDs := testTypeIDs()
	p := codec.NewPacker()
	p.PackInt(999999)
	if _, err := UnmarshalCredential(codec.NewPackerFromBytes(p.Bytes), typeIDs); err == nil {
		t.Fatal("expected error for unknown credential type id")
	}
}
