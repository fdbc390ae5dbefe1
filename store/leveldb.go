package store

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBStore is a Store backed by a local goleveldb database.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens (creating if necessary) the leveldb database at
// path.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open leveldb at %q: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

// Get reports ok=false, not an error, when key is absent.
func (s *LevelDBStore) Get(key string) ([]byte, bool, error) {
	v, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: get %q: %w", key, err)
	}
	return v, true, nil
}

// Set writes value under key. If a value already exists for key and
// overwrite is false, Set returns ErrKeyExists without writing.
func (s *LevelDBStore) Set(key string, value []byte, overwrite bool) error {
	if !overwrite {
		exists, err := s.Has(key)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %q", ErrKeyExists, key)
		}
	}
	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("store: put %q: %w", key, err)
	}
	return nil
}

// Has reports whether key has a value.
func (s *LevelDBStore) Has(key string) (bool, error) {
	ok, err := s.db.Has([]byte(key), nil)
	if err != nil {
		return false, fmt.Errorf("store: has %q: %w", key, err)
	}
	return ok, nil
}

var _ Store = (*LevelDBStore)(nil)
