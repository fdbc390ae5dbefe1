package avax

import "github.com/coldtrail/utxotx/ids"

// AssetAmount tracks the running coin-selection state for a single asset:
// how much must reach the destination (Amount), how much must be burned as
// fee (Burn), and how much has been drawn from UTXOs so far. Spend applies
// draws to the Amount target first; anything beyond that overflows into
// Burned, which is how "change" (draws beyond both targets) is represented.
type AssetAmount struct {
	Asset  ids.ID
	Amount uint64
	Burn   uint64
	Spent  uint64
	Burned uint64
}

// Spend applies amt to the amount target first, overflowing into the burn
// target (and, beyond that, into unrequested "change").
func (a *AssetAmount) Spend(amt uint64) {
	remainingAmount := uint64(0)
	if a.Amount > a.Spent {
		remainingAmount = a.Amount - a.Spent
	}
	if amt <= remainingAmount {
		a.Spent += amt
		return
	}
	a.Spent = a.Amount
	a.Burned += amt - remainingAmount
}

// Satisfied reports whether both the amount and burn targets have been met.
func (a *AssetAmount) Satisfied() bool {
	return a.Spent >= a.Amount && a.Burned >= a.Burn
}

// Change returns the amount drawn beyond the burn target, i.e. the residual
// that must be returned to the owner as a change output.
func (a *AssetAmount) Change() uint64 {
	if a.Burned > a.Burn {
		return a.Burned - a.Burn
	}
	return 0
}

// AAD (asset-amount destination) is the in-progress selection state that
// coin selection drains and builders consume.
type AAD struct {
	Senders         []ids.Address
	Destinations    []ids.Address
	ChangeAddresses []ids.Address

	Ins       []*TransferableInput
	Outs      []*TransferableOutput
	Change    []*TransferableOutput
	StakeOuts []*TransferableOutput

	order      []ids.ID
	assets     map[ids.ID]*AssetAmount
	outputKind map[ids.ID]OutputKind
}

// NewAAD builds an empty AAD over the given participant address lists.
func NewAAD(senders, destinations, changeAddresses []ids.Address) *AAD {
	return &AAD{
		Senders:         senders,
		Destinations:    destinations,
		ChangeAddresses: changeAddresses,
		assets:          make(map[ids.ID]*AssetAmount),
		outputKind:      make(map[ids.ID]OutputKind),
	}
}

// AddAssetAmount registers (or overwrites) the target for asset.
func (a *AAD) AddAssetAmount(asset ids.ID, amount, burn uint64) {
	if _, exists := a.assets[asset]; !exists {
		a.order = append(a.order, asset)
	}
	a.assets[asset] = &AssetAmount{Asset: asset, Amount: amount, Burn: burn}
}

// AssetAmount returns the tracked state for asset, if any.
func (a *AAD) AssetAmount(asset ids.ID) (*AssetAmount, bool) {
	aa, ok := a.assets[asset]
	return aa, ok
}

// Assets returns the assets this AAD is tracking, in registration order.
func (a *AAD) Assets() []ids.ID {
	out := make([]ids.ID, len(a.order))
	copy(out, a.order)
	return out
}

// CanComplete reports whether every tracked asset has met its targets.
func (a *AAD) CanComplete() bool {
	for _, asset := range a.order {
		if !a.assets[asset].Satisfied() {
			return false
		}
	}
	return true
}

// RecordOutputKind remembers which output kind was used for asset during
// the UTXO walk, so matching destination/change outputs reuse it.
func (a *AAD) RecordOutputKind(asset ids.ID, kind OutputKind) {
	a.outputKind[asset] = kind
}

// OutputKindFor returns the output kind recorded for asset, if any.
func (a *AAD) OutputKindFor(asset ids.ID) (OutputKind, bool) {
	kind, ok := a.outputKind[asset]
	return kind, ok
}

// AppendInput accumulates a constructed input for the final transaction.
func (a *AAD) AppendInput(in *TransferableInput) {
	a.Ins = append(a.Ins, in)
}

// AppendOutput accumulates a destination output.
func (a *AAD) AppendOutput(out *TransferableOutput) {
	a.Outs = append(a.Outs, out)
}

// AppendChange accumulates a change output.
func (a *AAD) AppendChange(out *TransferableOutput) {
	a.Change = append(a.Change, out)
}

// AppendStakeOutput accumulates a stake output (AddValidatorTx/AddDelegatorTx).
func (a *AAD) AppendStakeOutput(out *TransferableOutput) {
	a.StakeOuts = append(a.StakeOuts, out)
}
