package avax

import "fmt"

// OutputKind, InputKind and CredentialKind are the logical tagged-union
// variants every chain implements. The numeric wire value for each kind is
// per-chain (AVM and PlatformVM use different IDs for the same logical
// type) and lives in a TypeIDs table supplied by configuration, not here.
type OutputKind uint8

const (
	KindSECPTransferOutput OutputKind = iota
	KindSECPMintOutput
	KindNFTTransferOutput
	KindNFTMintOutput
)

type InputKind uint8

const (
	KindSECPTransferInput InputKind = iota
	KindSECPMintInput
	KindNFTTransferInput
	KindNFTMintInput
)

type CredentialKind uint8

const (
	KindSECPCredential CredentialKind = iota
	KindNFTCredential
)

// TypeIDs maps the logical tagged-union kinds above to the 32-bit wire type
// IDs used by one chain's codec. Both AVM and PlatformVM build one of these
// (see the config package) with their own numbers for the same kinds.
type TypeIDs struct {
	SECPTransferOutput uint32
	SECPMintOutput      uint32
	NFTTransferOutput   uint32
	NFTMintOutput       uint32

	SECPTransferInput uint32
	SECPMintInput     uint32
	NFTTransferInput  uint32
	NFTMintInput      uint32

	SECPCredential uint32
	NFTCredential  uint32
}

func (t *TypeIDs) outputID(k OutputKind) uint32 {
	switch k {
	case KindSECPTransferOutput:
		return t.SECPTransferOutput
	case KindSECPMintOutput:
		return t.SECPMintOutput
	case KindNFTTransferOutput:
		return t.NFTTransferOutput
	case KindNFTMintOutput:
		return t.NFTMintOutput
	default:
		panic(fmt.Sprintf("avax: unknown output kind %d", k))
	}
}

func (t *TypeIDs) outputKind(typeID uint32) (OutputKind, bool) {
	switch typeID {
	case t.SECPTransferOutput:
		return KindSECPTransferOutput, true
	case t.SECPMintOutput:
		return KindSECPMintOutput, true
	case t.NFTTransferOutput:
		return KindNFTTransferOutput, true
	case t.NFTMintOutput:
		return KindNFTMintOutput, true
	default:
		return 0, false
	}
}

func (t *TypeIDs) inputID(k InputKind) uint32 {
	switch k {
	case KindSECPTransferInput:
		return t.SECPTransferInput
	case KindSECPMintInput:
		return t.SECPMintInput
	case KindNFTTransferInput:
		return t.NFTTransferInput
	case KindNFTMintInput:
		return t.NFTMintInput
	default:
		panic(fmt.Sprintf("avax: unknown input kind %d", k))
	}
}

func (t *TypeIDs) inputKind(typeID uint32) (InputKind, bool) {
	switch typeID {
	case t.SECPTransferInput:
		return KindSECPTransferInput, true
	case t.SECPMintInput:
		return KindSECPMintInput, true
	case t.NFTTransferInput:
		return KindNFTTransferInput, true
	case t.NFTMintInput:
		return KindNFTMintInput, true
	default:
		return 0, false
	}
}

func (t *TypeIDs) credentialID(k CredentialKind) uint32 {
	switch k {
	case KindSECPCredential:
		return t.SECPCredential
	case KindNFTCredential:
		return t.NFTCredential
	default:
		panic(fmt.Sprintf("avax: unknown credential kind %d", k))
	}
}

func (t *TypeIDs) credentialKind(typeID uint32) (CredentialKind, bool) {
	switch typeID {
	case t.SECPCredential:
		return KindSECPCredential, true
	case t.NFTCredential:
		return KindNFTCredential, true
	default:
		return 0, false
	}
}

// CredentialKindForInput reports the credential kind an input of this kind
// must be signed with: amount-bearing and SECP-mint inputs take a SECP
// credential, NFT-transfer and NFT-mint inputs take an NFT credential.
func CredentialKindForInput(k InputKind) CredentialKind {
	switch k {
	case KindNFTTransferInput, KindNFTMintInput:
		return KindNFTCredential
	default:
		return KindSECPCredential
	}
}
