package txs

import "errors"

// Sentinel errors for transaction construction, validation and signing.
var (
	ErrInvalidInput       = errors.New("txs: invalid input")
	ErrMemoTooLong        = errors.New("txs: memo exceeds maximum length")
	ErrNameTooLong        = errors.New("txs: asset name exceeds maximum length")
	ErrSymbolInvalid      = errors.New("txs: asset symbol is empty, too long, or not ASCII")
	ErrDenominationRange  = errors.New("txs: denomination must be in 0..=32")
	ErrStakeTooLow        = errors.New("txs: stake amount below minimum")
	ErrTimeRange          = errors.New("txs: endTime must be after startTime")
	ErrStartTimeInPast    = errors.New("txs: startTime must be in the future")
	ErrDelegationFeeRange = errors.New("txs: delegation fee must be in [0, 100]")
	ErrCredentialCount    = errors.New("txs: credential count does not match input count")
	ErrUnknownTxKind      = errors.New("txs: unknown transaction type")
	ErrStateError         = errors.New("txs: required field unset")
	ErrGooseEgg           = errors.New("txs: fee exceeds goose-egg threshold")
)
