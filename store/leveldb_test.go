package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *LevelDBStore {
	t.Helper()
	s, err := OpenLevelDBStore(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("OpenLevelDBStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLevelDBStoreSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k1", []byte("v1"), false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get("k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(v) != "v1" {
		t.Fatalf("Get = (%q, %v), want (v1, true)", v, ok)
	}
}

func TestLevelDBStoreGetMissingKeyIsNotError(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get reported ok=true for a missing key")
	}
}

func TestLevelDBStoreSetWithoutOverwriteRejectsExistingKey(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k1", []byte("v1"), false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k1", []byte("v2"), false); err == nil {
		t.Fatal("expected ErrKeyExists when overwrite=false and key exists")
	}

	v, _, err := s.Get("k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(v) != "v1" {
		t.Fatalf("value changed despite rejected overwrite: %q", v)
	}
}

func TestLevelDBStoreSetWithOverwriteReplacesExistingKey(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k1", []byte("v1"), false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k1", []byte("v2"), true); err != nil {
		t.Fatalf("Set with overwrite: %v", err)
	}

	v, _, err := s.Get("k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(v) != "v2" {
		t.Fatalf("value = %q, want v2", v)
	}
}

func TestLevelDBStoreHas(t *testing.T) {
	s := openTestStore(t)

	ok, err := s.Has("k1")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if ok {
		t.Fatal("Has reported true for an absent key")
	}

	if err := s.Set("k1", []byte("v1"), false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	ok, err = s.Has("k1")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !ok {
		t.Fatal("Has reported false for a present key")
	}
}
