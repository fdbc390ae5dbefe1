package avax

import (
	"fmt"

	"github.com/coldtrail/utxotx/ids"
)

// GetMinimumSpendable walks set in insertion order, drawing SECP-transfer
// UTXOs against the targets registered in aad until every asset is
// satisfied, issuing destination outputs carrying the owner set
// (locktime, threshold, aad.Destinations). UTXOs whose asset isn't tracked
// in aad, or whose output variant doesn't carry an amount (mint rights,
// NFTs), are skipped silently: they simply aren't candidates for a value
// transfer. Spendability is gated by owners.GetSpenders at asOf, which also
// enforces the locktime.
//
// On success, aad accumulates one TransferableInput per UTXO drawn from, one
// destination TransferableOutput per satisfied asset with Amount > 0, and
// one change TransferableOutput per asset whose draws overshot Burn. Change
// is always unlocked single-sig (locktime=0, threshold=1), regardless of the
// locktime/threshold given here.
func GetMinimumSpendable(set *UTXOSet, aad *AAD, asOf, locktime uint64, threshold uint32, typeIDs *TypeIDs) error {
	return spendWalk(set, aad, asOf, locktime, threshold, typeIDs, false)
}

// GetMinimumSpendableStake is GetMinimumSpendable for a staking draw: the
// destination output for the satisfied asset (the stake/weight amount) is
// accumulated into aad.StakeOuts instead of aad.Outs, carrying the owner set
// (locktime, threshold, aad.Destinations) that the stake is locked under
// until it is returned at the end of the staking period.
func GetMinimumSpendableStake(set *UTXOSet, aad *AAD, asOf, locktime uint64, threshold uint32, typeIDs *TypeIDs) error {
	return spendWalk(set, aad, asOf, locktime, threshold, typeIDs, true)
}

func spendWalk(set *UTXOSet, aad *AAD, asOf, locktime uint64, threshold uint32, typeIDs *TypeIDs, toStake bool) error {
	for _, utxo := range set.GetAllUTXOs() {
		if aad.CanComplete() {
			break
		}

		aa, tracked := aad.AssetAmount(utxo.Asset)
		if !tracked || aa.Satisfied() {
			continue
		}

		amt, ok := utxo.Out.Amount()
		if !ok {
			continue
		}

		owners := utxo.Out.Owners()
		spenders := owners.GetSpenders(aad.Senders, asOf)
		if !owners.MeetsThreshold(aad.Senders, asOf) {
			continue
		}

		sigIdxs, ok := owners.SigIndices(spenders)
		if !ok {
			return fmt.Errorf("%w: utxo %s", ErrSpenderMismatch, utxo.ID())
		}

		in, err := NewSECPTransferInput(amt, sigIdxs)
		if err != nil {
			return err
		}

		aad.AppendInput(&TransferableInput{
			TxID:        utxo.TxID,
			OutputIndex: utxo.OutputIndex,
			Asset:       utxo.Asset,
			In:          in,
		})
		aad.RecordOutputKind(utxo.Asset, utxo.Out.Kind())
		aa.Spend(amt)
	}

	if !aad.CanComplete() {
		return ErrInsufficientFunds
	}

	for _, asset := range aad.Assets() {
		aa, _ := aad.AssetAmount(asset)
		kind, _ := aad.OutputKindFor(asset)

		if aa.Amount > 0 {
			out := &TransferableOutput{
				Asset: asset,
				Out:   newDestinationOutput(kind, aa.Amount, locktime, threshold, aad.Destinations),
			}
			if toStake {
				aad.AppendStakeOutput(out)
			} else {
				aad.AppendOutput(out)
			}
		}
		if change := aa.Change(); change > 0 {
			aad.AppendChange(&TransferableOutput{
				Asset: asset,
				Out:   newDestinationOutput(kind, change, 0, 1, aad.ChangeAddresses),
			})
		}
	}

	if err := SortTransferableOutputs(aad.Outs, typeIDs); err != nil {
		return err
	}
	if err := SortTransferableOutputs(aad.Change, typeIDs); err != nil {
		return err
	}
	if err := SortTransferableOutputs(aad.StakeOuts, typeIDs); err != nil {
		return err
	}
	SortTransferableInputs(aad.Ins)
	return nil
}

// newDestinationOutput builds a fresh output of the observed kind, carrying
// the owner set (locktime, threshold, owners). Only SECPTransferOutput is
// reachable here since coin selection only ever draws amount-bearing UTXOs.
func newDestinationOutput(kind OutputKind, amt uint64, locktime uint64, threshold uint32, owners []ids.Address) Output {
	switch kind {
	case KindSECPTransferOutput:
		return &SECPTransferOutput{
			Amt:       amt,
			OutOwners: ids.NewOutputOwners(locktime, threshold, owners),
		}
	default:
		return &SECPTransferOutput{
			Amt:       amt,
			OutOwners: ids.NewOutputOwners(locktime, threshold, owners),
		}
	}
}

// Spend is a convenience wrapper for the common single-asset transfer case:
// it builds an AAD targeting amount to destinations (under the owner set
// (locktime, threshold, destinations)) with fee burned from feeAsset, runs
// coin selection, and returns the accumulated ins/outs. Returns ErrNoop if
// amount and fee are both zero.
func Spend(
	set *UTXOSet,
	senders, destinations, changeAddresses []ids.Address,
	asset ids.ID,
	amount uint64,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	locktime uint64,
	threshold uint32,
	typeIDs *TypeIDs,
) (*AAD, error) {
	if amount == 0 && fee == 0 {
		return nil, ErrNoop
	}

	aad := NewAAD(senders, destinations, changeAddresses)
	if asset == feeAsset {
		aad.AddAssetAmount(asset, amount, fee)
	} else {
		aad.AddAssetAmount(asset, amount, 0)
		aad.AddAssetAmount(feeAsset, 0, fee)
	}

	if err := GetMinimumSpendable(set, aad, asOf, locktime, threshold, typeIDs); err != nil {
		return nil, err
	}
	return aad, nil
}

// SpendStake is Spend for a staking draw: it builds an AAD targeting
// stakeAmount of stakeAsset to stakeDestinations under the owner set
// (stakeLocktime, stakeThreshold, stakeDestinations) — landing in
// aad.StakeOuts rather than aad.Outs — with fee burned from feeAsset, and
// runs coin selection. Returns ErrNoop if stakeAmount and fee are both zero.
func SpendStake(
	set *UTXOSet,
	senders, stakeDestinations, changeAddresses []ids.Address,
	stakeAsset ids.ID,
	stakeAmount uint64,
	stakeLocktime uint64,
	stakeThreshold uint32,
	feeAsset ids.ID,
	fee uint64,
	asOf uint64,
	typeIDs *TypeIDs,
) (*AAD, error) {
	if stakeAmount == 0 && fee == 0 {
		return nil, ErrNoop
	}

	aad := NewAAD(senders, stakeDestinations, changeAddresses)
	if stakeAsset == feeAsset {
		aad.AddAssetAmount(stakeAsset, stakeAmount, fee)
	} else {
		aad.AddAssetAmount(stakeAsset, stakeAmount, 0)
		aad.AddAssetAmount(feeAsset, 0, fee)
	}

	if err := GetMinimumSpendableStake(set, aad, asOf, stakeLocktime, stakeThreshold, typeIDs); err != nil {
		return nil, err
	}
	return aad, nil
}
