package store

import "errors"

// ErrKeyExists is returned by Set when a key already has a value and the
// caller did not ask to overwrite it.
var ErrKeyExists = errors.New("store: key already exists")
