// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ChainSafe/chaindb"
	log "github.com/ChainSafe/log15"

	"github.com/quincelabs/quince/pkg/codec"
	"github.com/quincelabs/quince/pkg/statekey"
)

var logger = log.New("pkg", "state")

// statePrefix is the table prefix state map entries are stored under.
const statePrefix = "state"

// keyIndexKey addresses the record listing every state key in the
// stored map, in ascending order.
var keyIndexKey = []byte("keys")

// Database is the key/value backend a StateDB persists to.
type Database interface {
	Get(key []byte) (value []byte, err error)
	Put(key, value []byte) (err error)
}

// StateDB persists flat state maps to a key/value database. Each map
// entry sits under its raw 31-byte key; an index record lists the keys
// so a whole map can be read back.
type StateDB struct {
	db     Database
	closer io.Closer
}

// NewStateDB wraps an existing backend.
func NewStateDB(db Database) *StateDB {
	return &StateDB{db: db}
}

// OpenStateDB opens a badger-backed StateDB under basepath. The
// returned StateDB owns the underlying database handle; Close releases
// it.
func OpenStateDB(basepath string, inMemory bool) (*StateDB, error) {
	db, err := chaindb.NewBadgerDB(&chaindb.Config{
		DataDir:  filepath.Join(basepath, "state"),
		InMemory: inMemory,
	})
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	logger.Debug("opened state database", "basepath", basepath, "inmemory", inMemory)
	return &StateDB{
		db:     chaindb.NewTable(db, statePrefix),
		closer: db,
	}, nil
}

// Close releases the underlying database if this StateDB owns one.
func (s *StateDB) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// StoreMap writes every entry of m and the key index record.
func (s *StateDB) StoreMap(m *Map) error {
	keys := make([]statekey.Key, 0, m.Len())
	var storeErr error
	m.Ascend(func(key statekey.Key, value []byte) bool {
		if err := s.db.Put(key.Bytes(), value); err != nil {
			storeErr = fmt.Errorf("storing entry %s: %w", key, err)
			return false
		}
		keys = append(keys, key)
		return true
	})
	if storeErr != nil {
		return storeErr
	}

	index, err := codec.EncodeSequence(keys,
		func(k statekey.Key) ([]byte, error) { return k.Bytes(), nil })
	if err != nil {
		return fmt.Errorf("encoding key index: %w", err)
	}
	if err := s.db.Put(keyIndexKey, index); err != nil {
		return fmt.Errorf("storing key index: %w", err)
	}
	logger.Debug("stored state map", "entries", len(keys))
	return nil
}

// LoadMap reads back the map stored by the last StoreMap.
func (s *StateDB) LoadMap() (*Map, error) {
	index, err := s.db.Get(keyIndexKey)
	if err != nil {
		return nil, fmt.Errorf("loading key index: %w", err)
	}
	keys, rest, err := codec.DecodeSequence(index, decodeStateKey)
	if err != nil {
		return nil, fmt.Errorf("decoding key index: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: key index carries %d trailing bytes",
			codec.ErrLengthMismatch, len(rest))
	}

	m := NewMap()
	for _, key := range keys {
		value, err := s.db.Get(key.Bytes())
		if err != nil {
			return nil, fmt.Errorf("loading entry %s: %w", key, err)
		}
		m.Set(key, value)
	}
	logger.Debug("loaded state map", "entries", m.Len())
	return m, nil
}

func decodeStateKey(data []byte) (statekey.Key, []byte, error) {
	raw, rest, err := codec.TakeBytes(data, statekey.Length)
	if err != nil {
		return statekey.Key{}, nil, err
	}
	key, err := statekey.FromBytes(raw)
	if err != nil {
		return statekey.Key{}, nil, err
	}
	return key, rest, nil
}
