package txs

import (
	"fmt"
	"time"

	"github.com/coldtrail/utxotx/avax"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// DelegationShareDenominator is the fixed-point denominator a delegation
// fee percentage is expressed against on the wire: a delegationShare of
// 1_000_000 means the validator keeps 100% of delegation rewards.
const DelegationShareDenominator = 1_000_000

// Validator is the (nodeID, startTime, endTime, weight) tuple shared by
// AddValidatorTx, AddDelegatorTx and AddSubnetValidatorTx. Weight carries
// either a stake amount (primary network) or a subnet weight, depending on
// the owning transaction.
type Validator struct {
	NodeID    ids.Address
	StartTime uint64
	EndTime   uint64
	Weight    uint64
}

func (v *Validator) marshal(p *codec.Packer) {
	p.PackFixedBytes(v.NodeID[:])
	p.PackLong(v.StartTime)
	p.PackLong(v.EndTime)
	p.PackLong(v.Weight)
}

func unmarshalValidator(p *codec.Packer) (*Validator, error) {
	nodeIDBytes := p.UnpackFixedBytes(ids.AddressLen)
	startTime := p.UnpackLong()
	endTime := p.UnpackLong()
	weight := p.UnpackLong()
	if p.Err != nil {
		return nil, p.Err
	}
	nodeID, err := ids.AddressFromBytes(nodeIDBytes)
	if err != nil {
		return nil, err
	}
	return &Validator{NodeID: nodeID, StartTime: startTime, EndTime: endTime, Weight: weight}, nil
}

// validateTimes enforces startTime > now and endTime > startTime, where now
// defaults to time.Now() when the caller passes the zero time.
func validateTimes(startTime, endTime uint64, now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}
	if startTime <= uint64(now.Unix()) {
		return fmt.Errorf("%w: startTime %d must be after now (%d)", ErrStartTimeInPast, startTime, now.Unix())
	}
	if endTime <= startTime {
		return fmt.Errorf("%w: endTime %d must be after startTime %d", ErrTimeRange, endTime, startTime)
	}
	return nil
}

// validateDelegationFeePercent enforces feePercent in [0, 100] and converts
// it to the fixed-point delegationShare the wire format uses.
func validateDelegationFeePercent(feePercent float64) (uint32, error) {
	if feePercent < 0 || feePercent > 100 {
		return 0, fmt.Errorf("%w: %v", ErrDelegationFeeRange, feePercent)
	}
	return uint32(feePercent * (DelegationShareDenominator / 100)), nil
}

// AddValidatorTx adds a new validator to the primary network, staking
// StakeOuts for the validation period and directing staking rewards to
// RewardOwner, minus the delegation fee the validator keeps.
type AddValidatorTx struct {
	BaseTx          *BaseTx
	Validator       Validator
	StakeOuts       []*avax.TransferableOutput
	RewardOwner     *ids.OutputOwners
	DelegationShare uint32
}

// NewAddValidatorTx validates times, minimum stake and delegation fee
// before constructing the transaction body.
func NewAddValidatorTx(
	base *BaseTx,
	nodeID ids.Address,
	startTime, endTime uint64,
	stakeOuts []*avax.TransferableOutput,
	minStake uint64,
	rewardOwner *ids.OutputOwners,
	delegationFeePercent float64,
	now time.Time,
) (*AddValidatorTx, error) {
	if err := validateTimes(startTime, endTime, now); err != nil {
		return nil, err
	}

	stake := sumOutputAmounts(stakeOuts)
	if stake < minStake {
		return nil, fmt.Errorf("%w: %d < %d", ErrStakeTooLow, stake, minStake)
	}

	share, err := validateDelegationFeePercent(delegationFeePercent)
	if err != nil {
		return nil, err
	}

	return &AddValidatorTx{
		BaseTx:          base,
		Validator:       Validator{NodeID: nodeID, StartTime: startTime, EndTime: endTime, Weight: stake},
		StakeOuts:       stakeOuts,
		RewardOwner:     rewardOwner,
		DelegationShare: share,
	}, nil
}

func sumOutputAmounts(outs []*avax.TransferableOutput) uint64 {
	var total uint64
	for _, o := range outs {
		if amt, ok := o.Out.Amount(); ok {
			total += amt
		}
	}
	return total
}

func (t *AddValidatorTx) Kind() TxKind  { return KindAddValidatorTx }
func (t *AddValidatorTx) Base() *BaseTx { return t.BaseTx }

func (t *AddValidatorTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	t.BaseTx.marshalFields(p, typeIDs)
	t.Validator.marshal(p)
	p.PackCount(len(t.StakeOuts))
	for _, o := range t.StakeOuts {
		o.Marshal(p, typeIDs)
	}
	t.RewardOwner.Marshal(p)
	p.PackInt(t.DelegationShare)
}

// UnmarshalAddValidatorTx reads an AddValidatorTx body written by marshalBody.
func UnmarshalAddValidatorTx(p *codec.Packer, typeIDs *avax.TypeIDs) (*AddValidatorTx, error) {
	base, err := unmarshalBaseTxFields(p, typeIDs)
	if err != nil {
		return nil, err
	}
	validator, err := unmarshalValidator(p)
	if err != nil {
		return nil, err
	}

	numStake := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	stakeOuts := make([]*avax.TransferableOutput, numStake)
	for i := range stakeOuts {
		out, err := avax.UnmarshalTransferableOutput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		stakeOuts[i] = out
	}

	rewardOwner, err := ids.UnmarshalOutputOwners(p)
	if err != nil {
		return nil, err
	}
	share := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}

	return &AddValidatorTx{
		BaseTx:          base,
		Validator:       *validator,
		StakeOuts:       stakeOuts,
		RewardOwner:     rewardOwner,
		DelegationShare: share,
	}, nil
}

// AddDelegatorTx delegates stake to an existing validator, for a share of
// that validator's rewards; it carries no delegation fee of its own.
type AddDelegatorTx struct {
	BaseTx      *BaseTx
	Validator   Validator
	StakeOuts   []*avax.TransferableOutput
	RewardOwner *ids.OutputOwners
}

// NewAddDelegatorTx validates times and minimum stake before constructing
// the transaction body.
func NewAddDelegatorTx(
	base *BaseTx,
	nodeID ids.Address,
	startTime, endTime uint64,
	stakeOuts []*avax.TransferableOutput,
	minStake uint64,
	rewardOwner *ids.OutputOwners,
	now time.Time,
) (*AddDelegatorTx, error) {
	if err := validateTimes(startTime, endTime, now); err != nil {
		return nil, err
	}
	stake := sumOutputAmounts(stakeOuts)
	if stake < minStake {
		return nil, fmt.Errorf("%w: %d < %d", ErrStakeTooLow, stake, minStake)
	}
	return &AddDelegatorTx{
		BaseTx:      base,
		Validator:   Validator{NodeID: nodeID, StartTime: startTime, EndTime: endTime, Weight: stake},
		StakeOuts:   stakeOuts,
		RewardOwner: rewardOwner,
	}, nil
}

func (t *AddDelegatorTx) Kind() TxKind  { return KindAddDelegatorTx }
func (t *AddDelegatorTx) Base() *BaseTx { return t.BaseTx }

func (t *AddDelegatorTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	t.BaseTx.marshalFields(p, typeIDs)
	t.Validator.marshal(p)
	p.PackCount(len(t.StakeOuts))
	for _, o := range t.StakeOuts {
		o.Marshal(p, typeIDs)
	}
	t.RewardOwner.Marshal(p)
}

// UnmarshalAddDelegatorTx reads an AddDelegatorTx body written by marshalBody.
func UnmarshalAddDelegatorTx(p *codec.Packer, typeIDs *avax.TypeIDs) (*AddDelegatorTx, error) {
	base, err := unmarshalBaseTxFields(p, typeIDs)
	if err != nil {
		return nil, err
	}
	validator, err := unmarshalValidator(p)
	if err != nil {
		return nil, err
	}

	numStake := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	stakeOuts := make([]*avax.TransferableOutput, numStake)
	for i := range stakeOuts {
		out, err := avax.UnmarshalTransferableOutput(p, typeIDs)
		if err != nil {
			return nil, err
		}
		stakeOuts[i] = out
	}

	rewardOwner, err := ids.UnmarshalOutputOwners(p)
	if err != nil {
		return nil, err
	}

	return &AddDelegatorTx{
		BaseTx:      base,
		Validator:   *validator,
		StakeOuts:   stakeOuts,
		RewardOwner: rewardOwner,
	}, nil
}

// AddSubnetValidatorTx adds an existing primary-network validator to a
// subnet with a given weight, authorized by SubnetAuth signature indices
// rather than a stake.
type AddSubnetValidatorTx struct {
	BaseTx     *BaseTx
	Validator  Validator
	SubnetID   ids.ID
	SubnetAuth []uint32
}

// NewAddSubnetValidatorTx validates times before constructing the body.
func NewAddSubnetValidatorTx(
	base *BaseTx,
	nodeID ids.Address,
	startTime, endTime, weight uint64,
	subnetID ids.ID,
	subnetAuth []uint32,
	now time.Time,
) (*AddSubnetValidatorTx, error) {
	if err := validateTimes(startTime, endTime, now); err != nil {
		return nil, err
	}
	return &AddSubnetValidatorTx{
		BaseTx:     base,
		Validator:  Validator{NodeID: nodeID, StartTime: startTime, EndTime: endTime, Weight: weight},
		SubnetID:   subnetID,
		SubnetAuth: subnetAuth,
	}, nil
}

func (t *AddSubnetValidatorTx) Kind() TxKind  { return KindAddSubnetValidatorTx }
func (t *AddSubnetValidatorTx) Base() *BaseTx { return t.BaseTx }

func (t *AddSubnetValidatorTx) marshalBody(p *codec.Packer, typeIDs *avax.TypeIDs) {
	t.BaseTx.marshalFields(p, typeIDs)
	t.Validator.marshal(p)
	p.PackFixedBytes(t.SubnetID[:])
	p.PackCount(len(t.SubnetAuth))
	for _, idx := range t.SubnetAuth {
		p.PackInt(idx)
	}
}

// UnmarshalAddSubnetValidatorTx reads a body written by marshalBody.
func UnmarshalAddSubnetValidatorTx(p *codec.Packer, typeIDs *avax.TypeIDs) (*AddSubnetValidatorTx, error) {
	base, err := unmarshalBaseTxFields(p, typeIDs)
	if err != nil {
		return nil, err
	}
	validator, err := unmarshalValidator(p)
	if err != nil {
		return nil, err
	}

	subnetIDBytes := p.UnpackFixedBytes(ids.IDLen)
	numAuth := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	subnetID, err := ids.FromBytes(subnetIDBytes)
	if err != nil {
		return nil, err
	}
	auth := make([]uint32, numAuth)
	for i := range auth {
		auth[i] = p.UnpackInt()
		if p.Err != nil {
			return nil, p.Err
		}
	}

	return &AddSubnetValidatorTx{
		BaseTx:     base,
		Validator:  *validator,
		SubnetID:   subnetID,
		SubnetAuth: auth,
	}, nil
}
