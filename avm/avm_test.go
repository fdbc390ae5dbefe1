package avm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/config"
	"github.com/coldtrail/utxotx/ids"
	"github.com/coldtrail/utxotx/keychain"
	"github.com/coldtrail/utxotx/rpcclient"
)

func mustID(t *testing.T, seed byte) ids.ID {
	t.Helper()
	var b [ids.IDLen]byte
	b[0] = seed
	id, err := ids.FromBytes(b[:])
	if err != nil {
		t.Fatalf("mustID: %v", err)
	}
	return id
}

func testNetwork() *config.NetworkConfig {
	var blockchainIDBytes [ids.IDLen]byte
	blockchainIDBytes[0] = 0xA
	blockchainID, _ := ids.FromBytes(blockchainIDBytes[:])
	return &config.NetworkConfig{
		NetworkID: config.LocalID,
		HRP:       "local",
		Chains: map[string]config.ChainConfig{
			config.XChainAlias: {Alias: config.XChainAlias, BlockchainID: blockchainID, TxFee: 1000},
		},
	}
}

func generateKey(t *testing.T) *keychain.PrivateKey {
	t.Helper()
	raw, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("btcec.NewPrivateKey: %v", err)
	}
	priv, err := keychain.NewPrivateKey(raw)
	if err != nil {
		t.Fatalf("keychain.NewPrivateKey: %v", err)
	}
	return priv
}

type stubTransport struct {
	handler func(method string, params any) (json.RawMessage, error)
}

func (s *stubTransport) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return s.handler(method, params)
}

func newClient(t *testing.T, handler func(method string, params any) (json.RawMessage, error)) *Client {
	t.Helper()
	rpc := rpcclient.New(&stubTransport{handler: handler}, 0, 0, time.Millisecond)
	c, err := New(rpc, testNetwork())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRejectsNetworkWithoutXChain(t *testing.T) {
	network := &config.NetworkConfig{NetworkID: config.LocalID, HRP: "local", Chains: map[string]config.ChainConfig{}}
	rpc := rpcclient.New(&stubTransport{handler: func(string, any) (json.RawMessage, error) { return nil, nil }}, 0, 0, time.Millisecond)
	if _, err := New(rpc, network); err == nil {
		t.Fatal("expected error for a network missing the X chain")
	}
}

func TestAVAXAssetIDResolvesViaGetAssetDescription(t *testing.T) {
	want := mustID(t, 9)
	c := newClient(t, func(method string, params any) (json.RawMessage, error) {
		if method != "avm.getAssetDescription" {
			t.Fatalf("method = %q, want avm.getAssetDescription", method)
		}
		p := params.(getAssetDescriptionParams)
		if p.AssetID != "AVAX" {
			t.Fatalf("AssetID = %q, want AVAX", p.AssetID)
		}
		return json.Marshal(getAssetDescriptionResult{AssetID: want.String()})
	})

	got, err := c.AVAXAssetID(context.Background())
	if err != nil {
		t.Fatalf("AVAXAssetID: %v", err)
	}
	if got != want {
		t.Fatalf("AVAXAssetID() = %v, want %v", got, want)
	}
}

func TestRefreshBlockchainIDUpdatesInPlace(t *testing.T) {
	newID := mustID(t, 0xB)
	c := newClient(t, func(method string, params any) (json.RawMessage, error) {
		if method != "info.getBlockchainID" {
			t.Fatalf("method = %q, want info.getBlockchainID", method)
		}
		return json.Marshal(getBlockchainIDResult{BlockchainID: newID.String()})
	})

	if err := c.RefreshBlockchainID(context.Background()); err != nil {
		t.Fatalf("RefreshBlockchainID: %v", err)
	}
	if c.blockchainID != newID {
		t.Fatalf("blockchainID = %v, want %v", c.blockchainID, newID)
	}
}

func encodedUTXO(t *testing.T, txID ids.ID, idx uint32, asset ids.ID, amt uint64, owner ids.Address) string {
	t.Helper()
	u := &avax.UTXO{
		CodecVersion: avax.LatestCodecVersion,
		TxID:         txID,
		OutputIndex:  idx,
		Asset:        asset,
		Out:          &avax.SECPTransferOutput{Amt: amt, OutOwners: ids.NewOutputOwners(0, 1, []ids.Address{owner})},
	}
	p := codec.NewPacker()
	u.Marshal(p, config.AVMTypeIDs)
	return rpcclient.EncodeCB58(p.Bytes)
}

func addressFrom(t *testing.T, seed byte) ids.Address {
	t.Helper()
	var b [ids.AddressLen]byte
	b[0] = seed
	addr, err := ids.AddressFromBytes(b[:])
	if err != nil {
		t.Fatalf("AddressFromBytes: %v", err)
	}
	return addr
}

func TestBuildSignSubmitBaseTxRoundTrip(t *testing.T) {
	asset := mustID(t, 9)
	dest := addressFrom(t, 2)
	change := addressFrom(t, 3)

	priv := generateKey(t)
	senderAddr := priv.Address()
	kc := keychain.NewMemKeyChain(priv)

	set := avax.NewUTXOSet()
	set.Add(mustParseUTXO(t, encodedUTXO(t, mustID(t, 1), 0, asset, 1000, senderAddr)), true)

	var issuedTxID ids.ID
	submitted := false
	c := newClient(t, func(method string, params any) (json.RawMessage, error) {
		if method == "avm.issueTx" {
			submitted = true
			issuedTxID = mustID(t, 42)
			return json.Marshal(map[string]string{"txID": issuedTxID.String()})
		}
		if method == "avm.getAssetDescription" {
			return json.Marshal(map[string]string{"assetID": asset.String()})
		}
		t.Fatalf("unexpected method %q", method)
		return nil, nil
	})

	unsigned, owners, err := c.NewBaseTxFromUTXOs(set, []ids.Address{senderAddr}, []ids.Address{dest}, []ids.Address{change}, asset, 500, asset, 100, 1, 0, 1, nil)
	if err != nil {
		t.Fatalf("NewBaseTxFromUTXOs: %v", err)
	}

	signed, err := c.Sign(unsigned, owners, kc)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	gotTxID, err := c.Submit(context.Background(), signed, 100)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !submitted {
		t.Fatal("expected avm.issueTx to be called")
	}
	if gotTxID != issuedTxID {
		t.Fatalf("Submit() = %v, want %v", gotTxID, issuedTxID)
	}
}

func mustParseUTXO(t *testing.T, encoded string) *avax.UTXO {
	t.Helper()
	u, err := avax.ParseUTXO(encoded, config.AVMTypeIDs)
	if err != nil {
		t.Fatalf("ParseUTXO: %v", err)
	}
	return u
}

func TestNewExportTxRejectsNonAVAXFee(t *testing.T) {
	asset := mustID(t, 9)
	avaxAsset := mustID(t, 1)
	otherAsset := mustID(t, 2)
	sender := addressFrom(t, 1)
	dest := addressFrom(t, 2)
	change := addressFrom(t, 3)

	set := avax.NewUTXOSet()
	set.Add(mustParseUTXO(t, encodedUTXO(t, mustID(t, 1), 0, asset, 1000, sender)), true)

	c := newClient(t, func(method string, params any) (json.RawMessage, error) {
		return json.Marshal(map[string]string{"assetID": avaxAsset.String()})
	})

	_, _, err := c.NewExportTxFromUTXOs(context.Background(), set, []ids.Address{sender}, []ids.Address{dest}, []ids.Address{change}, mustID(t, 0xC), asset, 500, otherAsset, 0, 0, 0, 1, nil)
	if err == nil {
		t.Fatal("expected export to reject a non-AVAX fee asset")
	}
}
