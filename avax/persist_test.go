package avax

import (
	"testing"

	"github.com/coldtrail/utxotx/ids"
)

// fakeKVStore is an in-memory KVStore for testing Persist/LoadUTXOSet
// without a real backend.
type fakeKVStore struct {
	data map[string][]byte
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{data: make(map[string][]byte)}
}

func (f *fakeKVStore) Get(key string) ([]byte, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKVStore) Set(key string, value []byte, overwrite bool) error {
	if _, exists := f.data[key]; exists && !overwrite {
		return ErrUTXONotFound // any non-nil sentinel; content unused by callers here
	}
	f.data[key] = value
	return nil
}

func (f *fakeKVStore) Has(key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func newUTXOForPersist(t *testing.T, txSeed byte, idx uint32, amt uint64, owner ids.Address) *UTXO {
	t.Helper()
	return &UTXO{
		CodecVersion: LatestCodecVersion,
		TxID:         mustID(t, txSeed),
		OutputIndex:  idx,
		Asset:        mustID(t, 9),
		Out: &SECPTransferOutput{
			Amt:       amt,
			OutOwners: ids.NewOutputOwners(0, 1, []ids.Address{owner}),
		},
	}
}

func TestUTXOSetPersistAndLoadRoundTrip(t *testing.T) {
	typeIDs := testTypeIDs()
	owner := mustAddress(t, 1)
	set := NewUTXOSet()
	set.Add(newUTXOForPersist(t, 2, 0, 100, owner), true)
	set.Add(newUTXOForPersist(t, 3, 0, 200, owner), true)

	kv := newFakeKVStore()
	if err := set.Persist(kv, typeIDs, "snapshot", false); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	restored, err := LoadUTXOSet(kv, typeIDs, "snapshot", nil, MergeUnion)
	if err != nil {
		t.Fatalf("LoadUTXOSet: %v", err)
	}
	if restored.Len() != 2 {
		t.Fatalf("restored.Len() = %d, want 2", restored.Len())
	}
}

func TestLoadUTXOSetMissingKeyReturnsEmptySet(t *testing.T) {
	typeIDs := testTypeIDs()
	kv := newFakeKVStore()

	restored, err := LoadUTXOSet(kv, typeIDs, "missing", nil, MergeUnion)
	if err != nil {
		t.Fatalf("LoadUTXOSet: %v", err)
	}
	if restored.Len() != 0 {
		t.Fatalf("restored.Len() = %d, want 0", restored.Len())
	}
}

func TestLoadUTXOSetMergesWithBaseUnderEachRule(t *testing.T) {
	typeIDs := testTypeIDs()
	ownerA := mustAddress(t, 1)

	persisted := NewUTXOSet()
	shared := newUTXOForPersist(t, 2, 0, 100, ownerA)
	persistedOnly := newUTXOForPersist(t, 3, 0, 200, ownerA)
	persisted.Add(shared, true)
	persisted.Add(persistedOnly, true)

	kv := newFakeKVStore()
	if err := persisted.Persist(kv, typeIDs, "snapshot", false); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	rules := []MergeRule{
		MergeUnion, MergeIntersection, MergeDifferenceSelf,
		MergeSymDifference, MergeUnionMinusNew, MergeUnionMinusSelf,
	}
	for _, rule := range rules {
		base := NewUTXOSet()
		base.Add(shared.Copy(), true)
		baseOnly := newUTXOForPersist(t, 4, 0, 300, ownerA)
		base.Add(baseOnly, true)

		merged, err := LoadUTXOSet(kv, typeIDs, "snapshot", base, rule)
		if err != nil {
			t.Fatalf("LoadUTXOSet rule %v: %v", rule, err)
		}
		if merged == nil {
			t.Fatalf("LoadUTXOSet rule %v returned nil", rule)
		}
	}
}

func TestPersistRejectsOverwriteOfExistingSnapshot(t *testing.T) {
	typeIDs := testTypeIDs()
	owner := mustAddress(t, 1)
	set := NewUTXOSet()
	set.Add(newUTXOForPersist(t, 2, 0, 100, owner), true)

	kv := newFakeKVStore()
	if err := set.Persist(kv, typeIDs, "snapshot", false); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := set.Persist(kv, typeIDs, "snapshot", false); err == nil {
		t.Fatal("expected error persisting over an existing snapshot without overwrite")
	}
}
