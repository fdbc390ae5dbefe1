// Package facade holds the plumbing AVM and PlatformVM façades share: UTXO
// fetch over the node's JSON-RPC API (single address group or a
// workerpool-driven fan-out across many), write-once caching of the chain's
// AVAX asset ID and base fee, and a submit helper that runs the goose-egg
// check before handing a signed transaction to the node.
//
// Neither exported type here is itself a façade; avm.Client and
// platformvm.Client each hold a *Base and add the RPC method names and
// transaction builders specific to their chain.
package facade

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/config"
	"github.com/coldtrail/utxotx/ids"
	"github.com/coldtrail/utxotx/pkg/workerpool"
	"github.com/coldtrail/utxotx/rpcclient"
	"github.com/coldtrail/utxotx/txs"
)

// Base is the shared state and RPC plumbing for one chain of one façade
// instance. Namespace is the JSON-RPC method prefix the node expects
// ("avm" or "platform"); it is prepended to every method this type calls.
type Base struct {
	Client        *rpcclient.Client
	Network       *config.NetworkConfig
	OutputTypeIDs *avax.TypeIDs
	TxTypeIDs     *txs.TypeIDs
	Namespace     string

	avaxAssetIDOnce sync.Once
	avaxAssetID     ids.ID
	avaxAssetIDErr  error

	feeOnce sync.Once
	fee     uint64
	feeErr  error
}

// NewBase constructs a Base. It does not contact the node; asset ID and fee
// discovery happen lazily on first use.
func NewBase(client *rpcclient.Client, network *config.NetworkConfig, outputTypeIDs *avax.TypeIDs, txTypeIDs *txs.TypeIDs, namespace string) *Base {
	return &Base{
		Client:        client,
		Network:       network,
		OutputTypeIDs: outputTypeIDs,
		TxTypeIDs:     txTypeIDs,
		Namespace:     namespace,
	}
}

// AVAXAssetID returns the chain's AVAX asset ID, discovering it via discover
// on first call and caching the result (success or failure) for the
// lifetime of this Base. A façade that needs to retry discovery must be
// rebuilt rather than have this cache cleared.
func (b *Base) AVAXAssetID(ctx context.Context, discover func(context.Context) (ids.ID, error)) (ids.ID, error) {
	b.avaxAssetIDOnce.Do(func() {
		b.avaxAssetID, b.avaxAssetIDErr = discover(ctx)
	})
	return b.avaxAssetID, b.avaxAssetIDErr
}

// Fee returns the chain's base transaction fee, discovering it via discover
// on first call and caching the result for the lifetime of this Base.
func (b *Base) Fee(ctx context.Context, discover func(context.Context) (uint64, error)) (uint64, error) {
	b.feeOnce.Do(func() {
		b.fee, b.feeErr = discover(ctx)
	})
	return b.fee, b.feeErr
}

type getUTXOsParams struct {
	Addresses   []string `json:"addresses"`
	SourceChain string   `json:"sourceChain,omitempty"`
	Encoding    string   `json:"encoding"`
}

type getUTXOsResult struct {
	UTXOs []string `json:"utxos"`
}

// GetUTXOs fetches every UTXO the node reports for addresses, optionally
// restricted to those originating on sourceChain (for an atomic import).
// Addresses are rendered with the network's HRP before being sent.
func (b *Base) GetUTXOs(ctx context.Context, addresses []ids.Address, sourceChain *ids.ID) (*avax.UTXOSet, error) {
	bech32Addrs := make([]string, len(addresses))
	for i, addr := range addresses {
		encoded, err := addr.Bech32(b.Network.HRP)
		if err != nil {
			return nil, fmt.Errorf("facade: encode address: %w", err)
		}
		bech32Addrs[i] = encoded
	}

	params := getUTXOsParams{Addresses: bech32Addrs, Encoding: "cb58"}
	if sourceChain != nil {
		params.SourceChain = sourceChain.String()
	}

	raw, err := b.Client.Call(ctx, b.Namespace+".getUTXOs", params)
	if err != nil {
		return nil, err
	}

	var result getUTXOsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("facade: decode getUTXOs result: %w", err)
	}

	set := avax.NewUTXOSet()
	for _, encoded := range result.UTXOs {
		utxo, err := avax.ParseUTXO(encoded, b.OutputTypeIDs)
		if err != nil {
			return nil, fmt.Errorf("facade: parse utxo: %w", err)
		}
		set.Add(utxo, true)
	}
	return set, nil
}

// FetchUTXOsFanOut issues one GetUTXOs call per address group concurrently,
// bounded by workers, and merges the results into a single set. Callers
// with more addresses than fit comfortably in one RPC call split them into
// groups; a single group degenerates to one GetUTXOs call.
func (b *Base) FetchUTXOsFanOut(ctx context.Context, addressGroups [][]ids.Address, sourceChain *ids.ID, workers int) (*avax.UTXOSet, error) {
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		idx   int
		addrs []ids.Address
	}
	jobs := make([]job, len(addressGroups))
	results := make([]*avax.UTXOSet, len(addressGroups))
	for i, g := range addressGroups {
		jobs[i] = job{idx: i, addrs: g}
	}

	err := workerpool.Process(ctx, workers, jobs, func(ctx context.Context, j job) error {
		set, err := b.GetUTXOs(ctx, j.addrs, sourceChain)
		if err != nil {
			return err
		}
		results[j.idx] = set
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	merged := avax.NewUTXOSet()
	for _, set := range results {
		if set == nil {
			continue
		}
		merged.AddArray(set.GetAllUTXOs())
	}
	return merged, nil
}

type issueTxParams struct {
	Tx       string `json:"tx"`
	Encoding string `json:"encoding"`
}

type issueTxResult struct {
	TxID string `json:"txID"`
}

// Submit runs the goose-egg check against signed's own body and fee, then
// hands the signed transaction to the node. threshold is the goose-egg
// multiple of oneAVAX; callers pass 0 to take CheckGooseEgg's default.
func (b *Base) Submit(ctx context.Context, signed *txs.Tx, avaxAssetID ids.ID, fee uint64, threshold uint64) (ids.ID, error) {
	if err := txs.CheckGooseEgg(signed.Unsigned.Body, avaxAssetID, fee, config.OneAVAX, threshold); err != nil {
		return ids.ID{}, err
	}

	raw, err := signed.Bytes(b.OutputTypeIDs, b.TxTypeIDs)
	if err != nil {
		return ids.ID{}, err
	}

	params := issueTxParams{Tx: rpcclient.EncodeCB58(raw), Encoding: "cb58"}
	rawResult, err := b.Client.Call(ctx, b.Namespace+".issueTx", params)
	if err != nil {
		return ids.ID{}, err
	}

	var result issueTxResult
	if err := json.Unmarshal(rawResult, &result); err != nil {
		return ids.ID{}, fmt.Errorf("facade: decode issueTx result: %w", err)
	}

	txID, err := ids.FromString(result.TxID)
	if err != nil {
		return ids.ID{}, fmt.Errorf("facade: parse issued txID: %w", err)
	}
	return txID, nil
}

// OwnersByUTXO builds the map txs.Sign needs from the same set coin
// selection drew ins from: each input's UTXOKey maps to the OutputOwners of
// the UTXO it spends. set is keyed by the cb58 UTXO ID (avax.UTXO.ID()),
// while UTXOKey is the raw (txid‖outputIdx) bytes txs.Sign looks keys up
// by, so the two must be bridged through avax.UTXOID rather than compared
// directly.
func OwnersByUTXO(set *avax.UTXOSet, ins []*avax.TransferableInput) (map[string]*ids.OutputOwners, error) {
	owners := make(map[string]*ids.OutputOwners, len(ins))
	for _, in := range ins {
		utxo, ok := set.GetUTXO(avax.UTXOID(in.TxID, in.OutputIndex))
		if !ok {
			return nil, fmt.Errorf("facade: no utxo for input key %x", in.UTXOKey())
		}
		owners[string(in.UTXOKey())] = utxo.Out.Owners()
	}
	return owners, nil
}
