package avax

import "github.com/coldtrail/utxotx/codec"

// KVStore is the capability UTXOSet needs to snapshot and restore itself.
// store.Store satisfies this without avax importing the store package.
type KVStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, overwrite bool) error
	Has(key string) (bool, error)
}

// Persist snapshots every UTXO in s under key name, in insertion order.
func (s *UTXOSet) Persist(store KVStore, typeIDs *TypeIDs, name string, overwrite bool) error {
	utxos := s.GetAllUTXOs()
	p := codec.NewPacker()
	p.PackCount(len(utxos))
	for _, u := range utxos {
		u.Marshal(p, typeIDs)
	}
	if p.Err != nil {
		return p.Err
	}
	return store.Set(name, p.Bytes, overwrite)
}

// LoadUTXOSet restores the set snapshotted under name. If base is non-nil,
// the restored set is merged into base using rule; otherwise the restored
// set is returned as-is. A missing key is not an error: it yields base
// unchanged, or an empty set when base is nil.
func LoadUTXOSet(store KVStore, typeIDs *TypeIDs, name string, base *UTXOSet, rule MergeRule) (*UTXOSet, error) {
	raw, ok, err := store.Get(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		if base != nil {
			return base, nil
		}
		return NewUTXOSet(), nil
	}

	p := codec.NewPackerFromBytes(raw)
	numUTXOs := p.UnpackInt()
	if p.Err != nil {
		return nil, p.Err
	}
	restored := NewUTXOSet()
	for i := uint32(0); i < numUTXOs; i++ {
		u, err := UnmarshalUTXO(p, typeIDs)
		if err != nil {
			return nil, err
		}
		restored.Add(u, true)
	}

	if base == nil {
		return restored, nil
	}
	return base.MergeByRule(restored, rule)
}
