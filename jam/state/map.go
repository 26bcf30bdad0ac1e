// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"github.com/tidwall/btree"

	"github.com/quincelabs/quince/pkg/statekey"
)

type entry struct {
	key   statekey.Key
	value []byte
}

// Map is the flat state mapping handed to Merkleization. Entries are
// held in key order so traversal is independent of insertion order. It
// is not safe for concurrent writes.
type Map struct {
	tree *btree.BTree
}

// NewMap returns an empty state map.
func NewMap() *Map {
	return &Map{
		tree: btree.New(func(a, b interface{}) bool {
			return a.(entry).key.Compare(b.(entry).key) < 0
		}),
	}
}

// Set inserts or replaces the value stored under key.
func (m *Map) Set(key statekey.Key, value []byte) {
	m.tree.Set(entry{key: key, value: value})
}

// Get returns the value stored under key.
func (m *Map) Get(key statekey.Key) (value []byte, ok bool) {
	item := m.tree.Get(entry{key: key})
	if item == nil {
		return nil, false
	}
	return item.(entry).value, true
}

// Delete removes the entry stored under key, reporting whether one was
// there.
func (m *Map) Delete(key statekey.Key) bool {
	return m.tree.Delete(entry{key: key}) != nil
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return m.tree.Len()
}

// Ascend calls fn for every entry in ascending key order until fn
// returns false.
func (m *Map) Ascend(fn func(key statekey.Key, value []byte) bool) {
	m.tree.Ascend(nil, func(item interface{}) bool {
		e := item.(entry)
		return fn(e.key, e.value)
	})
}
