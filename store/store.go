// Package store persists UTXO sets and other codec-encoded snapshots to a
// local key-value store.
package store

import "github.com/coldtrail/utxotx/avax"

// Store is the minimal key-value capability a persistence backend provides.
// Get reports ok=false (not an error) for a missing key.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, overwrite bool) error
	Has(key string) (bool, error)
}

// PersistenceOptions configures a UTXOSet snapshot/restore round trip: Name
// is the key the snapshot is stored under, Overwrite controls whether a
// Persist call may replace an existing snapshot, and MergeRule selects how
// a restored snapshot combines with an in-memory set already being used.
type PersistenceOptions struct {
	Name      string
	Overwrite bool
	MergeRule avax.MergeRule
}
