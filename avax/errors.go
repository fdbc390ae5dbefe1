package avax

import "errors"

// Sentinel errors for the UTXO/coin-selection core. Call sites wrap these
// with fmt.Errorf("...: %w", ErrX) to add context.
var (
	// ErrInsufficientFunds is returned when coin selection walked the whole
	// UTXO set without satisfying every AssetAmount target.
	ErrInsufficientFunds = errors.New("avax: insufficient funds")
	// ErrSpenderMismatch indicates a reported spender address is not
	// present in the referenced output's owner set. This should never
	// happen in practice since GetSpenders only returns owner-set members;
	// it is treated as a bug, not a recoverable condition.
	ErrSpenderMismatch = errors.New("avax: spender not present in owner set")
	// ErrNoop is returned by coin selection helpers when the requested
	// transfer amount and the fee are both zero; callers treat it as a
	// no-op, not a failure.
	ErrNoop = errors.New("avax: no transaction needed")
	// ErrUTXONotFound is returned by UTXOSet.GetUTXO and Remove for an
	// unknown UTXO ID.
	ErrUTXONotFound = errors.New("avax: utxo not found")
	// ErrUnknownMergeRule is returned by MergeByRule for an unrecognized
	// rule value.
	ErrUnknownMergeRule = errors.New("avax: unknown merge rule")
)
