// Package avm implements a façade over the X-chain: building, signing and
// submitting BaseTx, CreateAssetTx, OperationTx, ImportTx and ExportTx
// transactions against a running node's avm.* JSON-RPC API.
package avm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/config"
	"github.com/coldtrail/utxotx/ids"
	"github.com/coldtrail/utxotx/internal/facade"
	"github.com/coldtrail/utxotx/keychain"
	"github.com/coldtrail/utxotx/rpcclient"
	"github.com/coldtrail/utxotx/txs"
)

// DefaultFanOutWorkers bounds how many address groups Client.GetUTXOs fans
// out to concurrently when called with more than one group.
const DefaultFanOutWorkers = 4

// Client is a façade over one X-chain blockchain ID on one network. Its
// AVAX asset ID and fee are each discovered once, on first use, and cached
// for the lifetime of this Client; a caller that needs fresh values builds
// a new Client rather than resetting this one.
type Client struct {
	base         *facade.Base
	networkID    uint32
	blockchainID ids.ID
	alias        string
	threshold    uint64
}

// New constructs a Client for the given network's X-chain, using rpc for
// all node calls. blockchainID and alias come from network.Chains[config.XChainAlias];
// unlike PlatformVM's, this chain's blockchainID may later be replaced by
// RefreshBlockchainID if the caller's node resolves the "X" alias to a
// different chain.
func New(rpc *rpcclient.Client, network *config.NetworkConfig) (*Client, error) {
	chain, ok := network.Chains[config.XChainAlias]
	if !ok {
		return nil, fmt.Errorf("avm: network %d has no %s chain configured", network.NetworkID, config.XChainAlias)
	}
	return &Client{
		base:         facade.NewBase(rpc, network, config.AVMTypeIDs, config.AVMTxTypeIDs, "avm"),
		networkID:    network.NetworkID,
		blockchainID: chain.BlockchainID,
		alias:        chain.Alias,
		threshold:    config.GooseEggFeeThreshold,
	}, nil
}

// RefreshBlockchainID re-resolves the X-chain alias against the node's
// info.getBlockchainID and updates this Client's blockchainID in place.
// Unlike PlatformVM, where the platform chain ID never changes, the X-chain
// alias can be remapped by the operator, so this is allowed to take effect
// on an existing Client rather than requiring a new one.
func (c *Client) RefreshBlockchainID(ctx context.Context) error {
	id, err := c.getBlockchainIDByAlias(ctx, c.alias)
	if err != nil {
		return err
	}
	c.blockchainID = id
	return nil
}

type getBlockchainIDParams struct {
	Alias string `json:"alias"`
}

type getBlockchainIDResult struct {
	BlockchainID string `json:"blockchainID"`
}

func (c *Client) getBlockchainIDByAlias(ctx context.Context, alias string) (ids.ID, error) {
	raw, err := c.base.Client.Call(ctx, "info.getBlockchainID", getBlockchainIDParams{Alias: alias})
	if err != nil {
		return ids.ID{}, err
	}
	var result getBlockchainIDResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return ids.ID{}, fmt.Errorf("avm: decode getBlockchainID result: %w", err)
	}
	return ids.FromString(result.BlockchainID)
}

type getAssetDescriptionParams struct {
	AssetID string `json:"assetID"`
}

type getAssetDescriptionResult struct {
	AssetID string `json:"assetID"`
}

// AVAXAssetID returns this chain's AVAX asset ID, resolved once via
// avm.getAssetDescription("AVAX") and cached thereafter.
func (c *Client) AVAXAssetID(ctx context.Context) (ids.ID, error) {
	return c.base.AVAXAssetID(ctx, func(ctx context.Context) (ids.ID, error) {
		raw, err := c.base.Client.Call(ctx, "avm.getAssetDescription", getAssetDescriptionParams{AssetID: "AVAX"})
		if err != nil {
			return ids.ID{}, err
		}
		var result getAssetDescriptionResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return ids.ID{}, fmt.Errorf("avm: decode getAssetDescription result: %w", err)
		}
		return ids.FromString(result.AssetID)
	})
}

// Fee returns this chain's base transaction fee, read once from the static
// network config and cached thereafter.
func (c *Client) Fee(ctx context.Context) (uint64, error) {
	return c.base.Fee(ctx, func(context.Context) (uint64, error) {
		chain, ok := c.base.Network.Chains[config.XChainAlias]
		if !ok {
			return 0, fmt.Errorf("avm: network %d has no %s chain configured", c.networkID, config.XChainAlias)
		}
		return chain.TxFee, nil
	})
}

// GetUTXOs fetches UTXOs for addresses, fanning out across DefaultFanOutWorkers
// workers when more than one address group is given.
func (c *Client) GetUTXOs(ctx context.Context, addressGroups [][]ids.Address, sourceChain *ids.ID) (*avax.UTXOSet, error) {
	if len(addressGroups) == 1 {
		return c.base.GetUTXOs(ctx, addressGroups[0], sourceChain)
	}
	return c.base.FetchUTXOsFanOut(ctx, addressGroups, sourceChain, DefaultFanOutWorkers)
}

// NewBaseTxFromUTXOs draws amount of asset from set, paying to destinations
// under the owner set (destinationLocktime, destinationThreshold,
// destinations) and returning change to changeAddresses, with fee burned
// from feeAsset. It returns the unsigned transaction together with the
// owners map Sign needs for the inputs it drew.
func (c *Client) NewBaseTxFromUTXOs(
	set *avax.UTXOSet,
	senders, destinations, changeAddresses []ids.Address,
	asset ids.ID,
	amount uint64,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	destinationLocktime uint64,
	destinationThreshold uint32,
	memo []byte,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	aad, err := avax.Spend(set, senders, destinations, changeAddresses, asset, amount, feeAsset, fee, asOf, destinationLocktime, destinationThreshold, config.AVMTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	outs := append(aad.Outs, aad.Change...)
	if err := avax.SortTransferableOutputs(outs, config.AVMTypeIDs); err != nil {
		return nil, nil, err
	}

	base, err := txs.NewBaseTx(c.networkID, c.blockchainID, outs, aad.Ins, memo)
	if err != nil {
		return nil, nil, err
	}

	owners, err := facade.OwnersByUTXO(set, aad.Ins)
	if err != nil {
		return nil, nil, err
	}

	return txs.NewUnsignedTx(base), owners, nil
}

// NewCreateAssetTxFromUTXOs burns fee (in feeAsset) from set, then mints a
// new asset with the given initial states.
func (c *Client) NewCreateAssetTxFromUTXOs(
	set *avax.UTXOSet,
	senders, changeAddresses []ids.Address,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	memo []byte,
	name, symbol string,
	denomination uint8,
	initialStates []*txs.InitialState,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	aad, err := avax.Spend(set, senders, nil, changeAddresses, feeAsset, 0, feeAsset, fee, asOf, 0, 1, config.AVMTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	base, err := txs.NewBaseTx(c.networkID, c.blockchainID, aad.Change, aad.Ins, memo)
	if err != nil {
		return nil, nil, err
	}

	createAssetTx, err := txs.NewCreateAssetTx(base, name, symbol, denomination, initialStates)
	if err != nil {
		return nil, nil, err
	}

	owners, err := facade.OwnersByUTXO(set, aad.Ins)
	if err != nil {
		return nil, nil, err
	}

	return txs.NewUnsignedTx(createAssetTx), owners, nil
}

// NewOperationTxFromUTXOs burns fee (in feeAsset) from set, then attaches
// ops (NFT transfers/mints) to the resulting BaseTx.
func (c *Client) NewOperationTxFromUTXOs(
	set *avax.UTXOSet,
	senders, changeAddresses []ids.Address,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	memo []byte,
	ops []*txs.TransferableOp,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	aad, err := avax.Spend(set, senders, nil, changeAddresses, feeAsset, 0, feeAsset, fee, asOf, 0, 1, config.AVMTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	base, err := txs.NewBaseTx(c.networkID, c.blockchainID, aad.Change, aad.Ins, memo)
	if err != nil {
		return nil, nil, err
	}

	opTx := txs.NewOperationTx(base, ops, config.AVMTxTypeIDs)

	owners, err := facade.OwnersByUTXO(set, aad.Ins)
	if err != nil {
		return nil, nil, err
	}

	return txs.NewUnsignedTx(opTx), owners, nil
}

// NewExportTxFromUTXOs burns fee (in feeAsset, which must equal the chain's
// AVAX asset ID) from set, then exports amount of asset to destinations
// under the owner set (destinationLocktime, destinationThreshold,
// destinations) on destinationChain.
func (c *Client) NewExportTxFromUTXOs(
	ctx context.Context,
	set *avax.UTXOSet,
	senders, destinations, changeAddresses []ids.Address,
	destinationChain ids.ID,
	asset ids.ID,
	amount uint64,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	destinationLocktime uint64,
	destinationThreshold uint32,
	memo []byte,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	avaxAssetID, err := c.AVAXAssetID(ctx)
	if err != nil {
		return nil, nil, err
	}
	if feeAsset != avaxAssetID {
		return nil, nil, fmt.Errorf("avm: export fee must be paid in AVAX (%s), got %s", avaxAssetID, feeAsset)
	}

	aad, err := avax.Spend(set, senders, destinations, changeAddresses, asset, amount, feeAsset, fee, asOf, destinationLocktime, destinationThreshold, config.AVMTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	if err := avax.SortTransferableOutputs(aad.Outs, config.AVMTypeIDs); err != nil {
		return nil, nil, err
	}

	base, err := txs.NewBaseTx(c.networkID, c.blockchainID, aad.Change, aad.Ins, memo)
	if err != nil {
		return nil, nil, err
	}

	exportTx := &txs.ExportTx{
		BaseTx:           base,
		DestinationChain: destinationChain,
		ExportedOuts:     aad.Outs,
	}

	owners, err := facade.OwnersByUTXO(set, aad.Ins)
	if err != nil {
		return nil, nil, err
	}

	return txs.NewUnsignedTx(exportTx), owners, nil
}

// NewImportTxFromUTXOs spends importedSet (drawn from sourceChain) plus any
// local UTXOs in localSet needed to cover fee, paying amount of asset to
// destinations under the owner set (destinationLocktime,
// destinationThreshold, destinations).
func (c *Client) NewImportTxFromUTXOs(
	importedSet *avax.UTXOSet,
	localSet *avax.UTXOSet,
	senders, destinations, changeAddresses []ids.Address,
	sourceChain ids.ID,
	asset ids.ID,
	amount uint64,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	destinationLocktime uint64,
	destinationThreshold uint32,
	memo []byte,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	importedAAD, err := avax.Spend(importedSet, senders, destinations, changeAddresses, asset, amount, feeAsset, fee, asOf, destinationLocktime, destinationThreshold, config.AVMTypeIDs)
	if err != nil && !errors.Is(err, avax.ErrInsufficientFunds) {
		return nil, nil, err
	}

	var localAAD *avax.AAD
	if importedAAD == nil {
		importedAAD, err = avax.Spend(importedSet, senders, destinations, changeAddresses, asset, amount, feeAsset, 0, asOf, destinationLocktime, destinationThreshold, config.AVMTypeIDs)
		if err != nil {
			return nil, nil, err
		}
		localAAD, err = avax.Spend(localSet, senders, nil, changeAddresses, feeAsset, 0, feeAsset, fee, asOf, 0, 1, config.AVMTypeIDs)
		if err != nil {
			return nil, nil, err
		}
	}

	var outs []*avax.TransferableOutput
	var localIns, importedIns []*avax.TransferableInput

	if importedAAD != nil {
		outs = append(outs, importedAAD.Outs...)
		outs = append(outs, importedAAD.Change...)
		importedIns = importedAAD.Ins
	}
	if localAAD != nil {
		outs = append(outs, localAAD.Outs...)
		outs = append(outs, localAAD.Change...)
		localIns = localAAD.Ins
	}

	if err := avax.SortTransferableOutputs(outs, config.AVMTypeIDs); err != nil {
		return nil, nil, err
	}
	avax.SortTransferableInputs(localIns)
	avax.SortTransferableInputs(importedIns)

	base, err := txs.NewBaseTx(c.networkID, c.blockchainID, outs, localIns, memo)
	if err != nil {
		return nil, nil, err
	}

	importTx := &txs.ImportTx{
		BaseTx:      base,
		SourceChain: sourceChain,
		ImportedIns: importedIns,
	}

	owners := make(map[string]*ids.OutputOwners)
	if importedAAD != nil {
		importedOwners, err := facade.OwnersByUTXO(importedSet, importedAAD.Ins)
		if err != nil {
			return nil, nil, err
		}
		for k, v := range importedOwners {
			owners[k] = v
		}
	}
	if localAAD != nil {
		localOwners, err := facade.OwnersByUTXO(localSet, localAAD.Ins)
		if err != nil {
			return nil, nil, err
		}
		for k, v := range localOwners {
			owners[k] = v
		}
	}

	return txs.NewUnsignedTx(importTx), owners, nil
}

// Sign signs unsigned using kc, consulting owners (as returned alongside
// unsigned by the NewXTxFromUTXOs builders) to resolve each input's
// signing address.
func (c *Client) Sign(unsigned *txs.UnsignedTx, owners map[string]*ids.OutputOwners, kc keychain.KeyChain) (*txs.Tx, error) {
	return txs.Sign(unsigned, config.AVMTypeIDs, config.AVMTxTypeIDs, owners, kc)
}

// Submit runs the goose-egg check against signed's own fee and body, then
// issues it via avm.issueTx.
func (c *Client) Submit(ctx context.Context, signed *txs.Tx, fee uint64) (ids.ID, error) {
	avaxAssetID, err := c.AVAXAssetID(ctx)
	if err != nil {
		return ids.ID{}, err
	}
	return c.base.Submit(ctx, signed, avaxAssetID, fee, c.threshold)
}
