package avax

import (
	"fmt"

	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/ids"
)

// MergeRule selects how UTXOSet.MergeByRule combines two sets.
type MergeRule uint8

const (
	MergeUnion MergeRule = iota
	MergeIntersection
	MergeDifferenceSelf
	MergeSymDifference
	MergeUnionMinusNew
	MergeUnionMinusSelf
)

// UTXOSet is an indexed multi-map of UTXOs keyed by UTXO ID, with advisory
// secondary indices by asset and by owner address. The UTXO-ID map is
// always the source of truth; the indices only accelerate lookups.
type UTXOSet struct {
	order     []string
	byID      map[string]*UTXO
	byAsset   map[ids.ID]map[string]bool
	byAddress map[ids.Address]map[string]bool
}

// NewUTXOSet returns an empty set.
func NewUTXOSet() *UTXOSet {
	return &UTXOSet{
		byID:      make(map[string]*UTXO),
		byAsset:   make(map[ids.ID]map[string]bool),
		byAddress: make(map[ids.Address]map[string]bool),
	}
}

// Add inserts utxo, keyed by its UTXO ID. If a UTXO with the same ID is
// already present, it is replaced only when overwrite is true; otherwise
// Add is a no-op for that ID (matching "insertion replaces duplicate UTXO
// IDs" only for the overwrite path — callers that want unconditional
// replacement should pass overwrite=true).
func (s *UTXOSet) Add(utxo *UTXO, overwrite bool) {
	id := utxo.ID()
	if _, exists := s.byID[id]; exists {
		if !overwrite {
			return
		}
		s.unindex(id)
	} else {
		s.order = append(s.order, id)
	}

	s.byID[id] = utxo
	s.index(id, utxo)
}

func (s *UTXOSet) index(id string, utxo *UTXO) {
	if s.byAsset[utxo.Asset] == nil {
		s.byAsset[utxo.Asset] = make(map[string]bool)
	}
	s.byAsset[utxo.Asset][id] = true

	for _, addr := range utxo.Out.Owners().Addresses() {
		if s.byAddress[addr] == nil {
			s.byAddress[addr] = make(map[string]bool)
		}
		s.byAddress[addr][id] = true
	}
}

func (s *UTXOSet) unindex(id string) {
	old, ok := s.byID[id]
	if !ok {
		return
	}
	delete(s.byAsset[old.Asset], id)
	for _, addr := range old.Out.Owners().Addresses() {
		delete(s.byAddress[addr], id)
	}
}

// AddArray bulk-inserts utxos, overwriting duplicates.
func (s *UTXOSet) AddArray(utxos []*UTXO) {
	for _, u := range utxos {
		s.Add(u, true)
	}
}

// Remove deletes the UTXO with the given ID, if present.
func (s *UTXOSet) Remove(utxoID string) error {
	if _, ok := s.byID[utxoID]; !ok {
		return fmt.Errorf("%w: %s", ErrUTXONotFound, utxoID)
	}
	s.unindex(utxoID)
	delete(s.byID, utxoID)
	for i, id := range s.order {
		if id == utxoID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetUTXO returns the UTXO for an ID.
func (s *UTXOSet) GetUTXO(utxoID string) (*UTXO, bool) {
	u, ok := s.byID[utxoID]
	return u, ok
}

// GetAllUTXOs returns every UTXO in insertion order. Coin selection walks
// this order; because outputs and inputs are always sorted before a digest
// is taken, the final transaction bytes do not depend on this order.
func (s *UTXOSet) GetAllUTXOs() []*UTXO {
	out := make([]*UTXO, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// GetUTXOIDs returns the IDs of UTXOs owned by any of the given addresses.
// A nil/empty addresses argument returns every UTXO ID.
func (s *UTXOSet) GetUTXOIDs(addresses []ids.Address) []string {
	if len(addresses) == 0 {
		out := make([]string, len(s.order))
		copy(out, s.order)
		return out
	}

	seen := make(map[string]bool)
	var out []string
	for _, addr := range addresses {
		for id := range s.byAddress[addr] {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Len returns the number of UTXOs in the set.
func (s *UTXOSet) Len() int {
	return len(s.order)
}

// MergeByRule combines s with other according to rule, returning a new set.
func (s *UTXOSet) MergeByRule(other *UTXOSet, rule MergeRule) (*UTXOSet, error) {
	merged := NewUTXOSet()

	switch rule {
	case MergeUnion:
		for _, u := range s.GetAllUTXOs() {
			merged.Add(u, true)
		}
		for _, u := range other.GetAllUTXOs() {
			merged.Add(u, true)
		}
	case MergeIntersection:
		for _, u := range s.GetAllUTXOs() {
			if _, ok := other.GetUTXO(u.ID()); ok {
				merged.Add(u, true)
			}
		}
	case MergeDifferenceSelf:
		for _, u := range s.GetAllUTXOs() {
			if _, ok := other.GetUTXO(u.ID()); !ok {
				merged.Add(u, true)
			}
		}
	case MergeSymDifference:
		for _, u := range s.GetAllUTXOs() {
			if _, ok := other.GetUTXO(u.ID()); !ok {
				merged.Add(u, true)
			}
		}
		for _, u := range other.GetAllUTXOs() {
			if _, ok := s.GetUTXO(u.ID()); !ok {
				merged.Add(u, true)
			}
		}
	case MergeUnionMinusNew:
		for _, u := range s.GetAllUTXOs() {
			merged.Add(u, true)
		}
		for id := range merged.byID {
			if _, ok := other.GetUTXO(id); ok {
				_ = merged.Remove(id)
			}
		}
	case MergeUnionMinusSelf:
		for _, u := range other.GetAllUTXOs() {
			merged.Add(u, true)
		}
		for id := range merged.byID {
			if _, ok := s.GetUTXO(id); ok {
				_ = merged.Remove(id)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMergeRule, rule)
	}

	return merged, nil
}

// ParseUTXO accepts either a *UTXO or a cb58-encoded canonical UTXO byte
// string and always returns a fresh copy, never the caller's original
// pointer.
func ParseUTXO(v any, typeIDs *TypeIDs) (*UTXO, error) {
	switch val := v.(type) {
	case *UTXO:
		return val.Copy(), nil
	case UTXO:
		return val.Copy(), nil
	case string:
		raw, err := codec.CB58Decode(val)
		if err != nil {
			return nil, err
		}
		return UnmarshalUTXO(codec.NewPackerFromBytes(raw), typeIDs)
	default:
		return nil, fmt.Errorf("avax: cannot parse utxo from %T", v)
	}
}
