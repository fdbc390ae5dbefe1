// Package platformvm implements a façade over the P-chain: building,
// signing and submitting BaseTx, ImportTx, ExportTx, AddValidatorTx,
// AddDelegatorTx and AddSubnetValidatorTx transactions against a running
// node's platform.* JSON-RPC API.
package platformvm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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

// Client is a façade over the P-chain of one network. Unlike avm.Client,
// its blockchainID never changes: the platform chain ID is fixed by the
// network itself, so there is no RefreshBlockchainID here — a caller who
// believes the platform chain ID has changed needs a new NetworkConfig,
// not a refreshed Client.
type Client struct {
	base         *facade.Base
	networkID    uint32
	blockchainID ids.ID
	threshold    uint64
}

// New constructs a Client for the given network's P-chain, using rpc for
// all node calls.
func New(rpc *rpcclient.Client, network *config.NetworkConfig) (*Client, error) {
	chain, ok := network.Chains[config.PChainAlias]
	if !ok {
		return nil, fmt.Errorf("platformvm: network %d has no %s chain configured", network.NetworkID, config.PChainAlias)
	}
	return &Client{
		base:         facade.NewBase(rpc, network, config.PlatformVMTypeIDs, config.PlatformVMTxTypeIDs, "platform"),
		networkID:    network.NetworkID,
		blockchainID: chain.BlockchainID,
		threshold:    config.GooseEggFeeThreshold,
	}, nil
}

type getStakingAssetIDResult struct {
	AssetID string `json:"assetID"`
}

// AVAXAssetID returns the P-chain's staking asset ID, resolved once via
// platform.getStakingAssetID and cached thereafter.
func (c *Client) AVAXAssetID(ctx context.Context) (ids.ID, error) {
	return c.base.AVAXAssetID(ctx, func(ctx context.Context) (ids.ID, error) {
		raw, err := c.base.Client.Call(ctx, "platform.getStakingAssetID", struct{}{})
		if err != nil {
			return ids.ID{}, err
		}
		var result getStakingAssetIDResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return ids.ID{}, fmt.Errorf("platformvm: decode getStakingAssetID result: %w", err)
		}
		return ids.FromString(result.AssetID)
	})
}

// Fee returns the P-chain's base transaction fee, read once from the static
// network config and cached thereafter.
func (c *Client) Fee(ctx context.Context) (uint64, error) {
	return c.base.Fee(ctx, func(context.Context) (uint64, error) {
		chain, ok := c.base.Network.Chains[config.PChainAlias]
		if !ok {
			return 0, fmt.Errorf("platformvm: network %d has no %s chain configured", c.networkID, config.PChainAlias)
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
// from feeAsset.
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
	aad, err := avax.Spend(set, senders, destinations, changeAddresses, asset, amount, feeAsset, fee, asOf, destinationLocktime, destinationThreshold, config.PlatformVMTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	outs := append(aad.Outs, aad.Change...)
	if err := avax.SortTransferableOutputs(outs, config.PlatformVMTypeIDs); err != nil {
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

// feeBaseFromUTXOs burns fee (in feeAsset) from set with no destination
// output, for staking builders that carry no stake draw of their own
// (AddSubnetValidatorTx pays a weight, not an amount).
func (c *Client) feeBaseFromUTXOs(
	set *avax.UTXOSet,
	senders, changeAddresses []ids.Address,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	memo []byte,
) (*txs.BaseTx, map[string]*ids.OutputOwners, error) {
	aad, err := avax.Spend(set, senders, nil, changeAddresses, feeAsset, 0, feeAsset, fee, asOf, 0, 1, config.PlatformVMTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	base, err := txs.NewBaseTx(c.networkID, c.blockchainID, aad.Change, aad.Ins, memo)
	if err != nil {
		return nil, nil, err
	}

	owners, err := facade.OwnersByUTXO(set, aad.Ins)
	if err != nil {
		return nil, nil, err
	}

	return base, owners, nil
}

// stakeBaseFromUTXOs draws stakeAmount of stakeAsset into a locked stake
// output under the owner set (endTime, stakeThreshold, stakeDestinations)
// while burning fee (in feeAsset) from set, returning the fee-paying BaseTx,
// the resulting stakeOuts, and the owners map every staking builder below
// needs in common.
func (c *Client) stakeBaseFromUTXOs(
	set *avax.UTXOSet,
	senders, stakeDestinations, changeAddresses []ids.Address,
	stakeAsset ids.ID,
	stakeAmount uint64,
	endTime uint64,
	stakeThreshold uint32,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	memo []byte,
) (*txs.BaseTx, []*avax.TransferableOutput, map[string]*ids.OutputOwners, error) {
	aad, err := avax.SpendStake(set, senders, stakeDestinations, changeAddresses, stakeAsset, stakeAmount, endTime, stakeThreshold, feeAsset, fee, asOf, config.PlatformVMTypeIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	base, err := txs.NewBaseTx(c.networkID, c.blockchainID, aad.Change, aad.Ins, memo)
	if err != nil {
		return nil, nil, nil, err
	}

	owners, err := facade.OwnersByUTXO(set, aad.Ins)
	if err != nil {
		return nil, nil, nil, err
	}

	return base, aad.StakeOuts, owners, nil
}

// NewAddValidatorTxFromUTXOs burns fee (in feeAsset) from set, draws
// stakeAmount of stakeAsset into a stake output locked until endTime under
// the owner set (endTime, stakeThreshold, stakeDestinations), and stakes it
// behind nodeID for [startTime, endTime], directing rewards minus
// delegationFeePercent to rewardOwner.
func (c *Client) NewAddValidatorTxFromUTXOs(
	set *avax.UTXOSet,
	senders, stakeDestinations, changeAddresses []ids.Address,
	stakeAsset ids.ID,
	stakeAmount uint64,
	stakeThreshold uint32,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	memo []byte,
	nodeID ids.Address,
	startTime, endTime uint64,
	rewardOwner *ids.OutputOwners,
	delegationFeePercent float64,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	base, stakeOuts, owners, err := c.stakeBaseFromUTXOs(set, senders, stakeDestinations, changeAddresses, stakeAsset, stakeAmount, endTime, stakeThreshold, feeAsset, fee, asOf, memo)
	if err != nil {
		return nil, nil, err
	}

	tx, err := txs.NewAddValidatorTx(base, nodeID, startTime, endTime, stakeOuts, config.MinStake, rewardOwner, delegationFeePercent, time.Time{})
	if err != nil {
		return nil, nil, err
	}

	return txs.NewUnsignedTx(tx), owners, nil
}

// NewAddDelegatorTxFromUTXOs burns fee (in feeAsset) from set, draws
// stakeAmount of stakeAsset into a stake output locked until endTime under
// the owner set (endTime, stakeThreshold, stakeDestinations), and delegates
// it to nodeID for [startTime, endTime], directing rewards to rewardOwner.
func (c *Client) NewAddDelegatorTxFromUTXOs(
	set *avax.UTXOSet,
	senders, stakeDestinations, changeAddresses []ids.Address,
	stakeAsset ids.ID,
	stakeAmount uint64,
	stakeThreshold uint32,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	memo []byte,
	nodeID ids.Address,
	startTime, endTime uint64,
	rewardOwner *ids.OutputOwners,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	base, stakeOuts, owners, err := c.stakeBaseFromUTXOs(set, senders, stakeDestinations, changeAddresses, stakeAsset, stakeAmount, endTime, stakeThreshold, feeAsset, fee, asOf, memo)
	if err != nil {
		return nil, nil, err
	}

	tx, err := txs.NewAddDelegatorTx(base, nodeID, startTime, endTime, stakeOuts, config.MinStake, rewardOwner, time.Time{})
	if err != nil {
		return nil, nil, err
	}

	return txs.NewUnsignedTx(tx), owners, nil
}

// NewAddSubnetValidatorTxFromUTXOs burns fee (in feeAsset) from set and adds
// nodeID as a validator of subnetID for [startTime, endTime] with weight,
// authorized by subnetAuth.
func (c *Client) NewAddSubnetValidatorTxFromUTXOs(
	set *avax.UTXOSet,
	senders, changeAddresses []ids.Address,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	memo []byte,
	nodeID ids.Address,
	startTime, endTime, weight uint64,
	subnetID ids.ID,
	subnetAuth []uint32,
) (*txs.UnsignedTx, map[string]*ids.OutputOwners, error) {
	base, owners, err := c.feeBaseFromUTXOs(set, senders, changeAddresses, feeAsset, fee, asOf, memo)
	if err != nil {
		return nil, nil, err
	}

	tx, err := txs.NewAddSubnetValidatorTx(base, nodeID, startTime, endTime, weight, subnetID, subnetAuth, time.Time{})
	if err != nil {
		return nil, nil, err
	}

	return txs.NewUnsignedTx(tx), owners, nil
}

// NewExportTxFromUTXOs burns fee (in feeAsset, which must equal the
// platform chain's AVAX asset ID) from set, then exports amount of asset to
// destinations on destinationChain. The source only enforced this
// restriction for P-chain exports; here it is enforced identically on both
// chains, so this check duplicates avm.Client.NewExportTxFromUTXOs rather
// than relying on asymmetric behavior between the two façades.
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
		return nil, nil, fmt.Errorf("platformvm: export fee must be paid in AVAX (%s), got %s", avaxAssetID, feeAsset)
	}

	aad, err := avax.Spend(set, senders, destinations, changeAddresses, asset, amount, feeAsset, fee, asOf, destinationLocktime, destinationThreshold, config.PlatformVMTypeIDs)
	if err != nil {
		return nil, nil, err
	}

	if err := avax.SortTransferableOutputs(aad.Outs, config.PlatformVMTypeIDs); err != nil {
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
	importedAAD, err := avax.Spend(importedSet, senders, destinations, changeAddresses, asset, amount, feeAsset, fee, asOf, destinationLocktime, destinationThreshold, config.PlatformVMTypeIDs)
	if err != nil && !errors.Is(err, avax.ErrInsufficientFunds) {
		return nil, nil, err
	}

	var localAAD *avax.AAD
	if importedAAD == nil {
		importedAAD, err = avax.Spend(importedSet, senders, destinations, changeAddresses, asset, amount, feeAsset, 0, asOf, destinationLocktime, destinationThreshold, config.PlatformVMTypeIDs)
		if err != nil {
			return nil, nil, err
		}
		localAAD, err = avax.Spend(localSet, senders, nil, changeAddresses, feeAsset, 0, feeAsset, fee, asOf, 0, 1, config.PlatformVMTypeIDs)
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

	if err := avax.SortTransferableOutputs(outs, config.PlatformVMTypeIDs); err != nil {
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
	return txs.Sign(unsigned, config.PlatformVMTypeIDs, config.PlatformVMTxTypeIDs, owners, kc)
}

// Submit runs the goose-egg check against signed's own fee and body, then
// issues it via platform.issueTx.
func (c *Client) Submit(ctx context.Context, signed *txs.Tx, fee uint64) (ids.ID, error) {
	avaxAssetID, err := c.AVAXAssetID(ctx)
	if err != nil {
		return ids.ID{}, err
	}
	return c.base.Submit(ctx, signed, avaxAssetID, fee, c.threshold)
}
