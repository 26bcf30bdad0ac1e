// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ChainSafe/chaindb"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/pkg/statekey"
)

var errTest = errors.New("test error")

func newInMemoryDB(t *testing.T) chaindb.Database {
	db, err := chaindb.NewBadgerDB(&chaindb.Config{
		DataDir:  t.TempDir(),
		InMemory: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func Test_StateDB_roundTrip(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()
	db := NewStateDB(newInMemoryDB(t))

	m, err := SerializeState(testState(cfg), cfg)
	require.NoError(t, err)

	err = db.StoreMap(m)
	require.NoError(t, err)

	loaded, err := db.LoadMap()
	require.NoError(t, err)

	assert.Equal(t, m.Len(), loaded.Len())
	m.Ascend(func(key statekey.Key, value []byte) bool {
		loadedValue, ok := loaded.Get(key)
		assert.True(t, ok)
		assert.Equal(t, value, loadedValue)
		return true
	})

	// A map loaded from the database deserializes like the original.
	restored, err := DeserializeState(loaded, cfg)
	require.NoError(t, err)
	assert.Equal(t, types.TimeSlot(1234), restored.Timeslot)
}

func Test_OpenStateDB(t *testing.T) {
	t.Parallel()

	db, err := OpenStateDB(t.TempDir(), true)
	require.NoError(t, err)

	m := NewMap()
	m.Set(statekey.Chapter(1), []byte{0x01})

	err = db.StoreMap(m)
	require.NoError(t, err)

	loaded, err := db.LoadMap()
	require.NoError(t, err)
	value, ok := loaded.Get(statekey.Chapter(1))
	assert.True(t, ok)
	assert.Equal(t, []byte{0x01}, value)

	err = db.Close()
	assert.NoError(t, err)
}

func Test_StateDB_Close_unowned(t *testing.T) {
	t.Parallel()

	db := NewStateDB(newInMemoryDB(t))
	assert.NoError(t, db.Close())
}

func Test_StateDB_StoreMap(t *testing.T) {
	t.Parallel()

	keyA := statekey.Chapter(1)
	keyB := statekey.ChapterService(255, 7)
	index := append([]byte{0x02}, keyA.Bytes()...)
	index = append(index, keyB.Bytes()...)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		database := NewMockDatabase(ctrl)
		database.EXPECT().Put(keyA.Bytes(), []byte{0xaa}).Return(nil)
		database.EXPECT().Put(keyB.Bytes(), []byte{0xbb}).Return(nil)
		database.EXPECT().Put(keyIndexKey, index).Return(nil)

		m := NewMap()
		m.Set(keyB, []byte{0xbb})
		m.Set(keyA, []byte{0xaa})

		err := NewStateDB(database).StoreMap(m)
		assert.NoError(t, err)
	})

	t.Run("entry put error", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		database := NewMockDatabase(ctrl)
		database.EXPECT().Put(keyA.Bytes(), []byte{0xaa}).Return(errTest)

		m := NewMap()
		m.Set(keyA, []byte{0xaa})

		err := NewStateDB(database).StoreMap(m)
		assert.ErrorIs(t, err, errTest)
		assert.EqualError(t, err,
			fmt.Sprintf("storing entry %s: test error", keyA))
	})

	t.Run("index put error", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		database := NewMockDatabase(ctrl)
		database.EXPECT().Put(keyA.Bytes(), []byte{0xaa}).Return(nil)
		database.EXPECT().Put(keyIndexKey, gomock.Any()).Return(errTest)

		m := NewMap()
		m.Set(keyA, []byte{0xaa})

		err := NewStateDB(database).StoreMap(m)
		assert.ErrorIs(t, err, errTest)
		assert.EqualError(t, err, "storing key index: test error")
	})
}

func Test_StateDB_LoadMap(t *testing.T) {
	t.Parallel()

	key := statekey.Chapter(1)
	index := append([]byte{0x01}, key.Bytes()...)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		database := NewMockDatabase(ctrl)
		database.EXPECT().Get(keyIndexKey).Return(index, nil)
		database.EXPECT().Get(key.Bytes()).Return([]byte{0xaa}, nil)

		m, err := NewStateDB(database).LoadMap()
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())
		value, ok := m.Get(key)
		assert.True(t, ok)
		assert.Equal(t, []byte{0xaa}, value)
	})

	t.Run("index get error", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		database := NewMockDatabase(ctrl)
		database.EXPECT().Get(keyIndexKey).Return(nil, errTest)

		_, err := NewStateDB(database).LoadMap()
		assert.ErrorIs(t, err, errTest)
		assert.EqualError(t, err, "loading key index: test error")
	})

	t.Run("entry get error", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		database := NewMockDatabase(ctrl)
		database.EXPECT().Get(keyIndexKey).Return(index, nil)
		database.EXPECT().Get(key.Bytes()).Return(nil, errTest)

		_, err := NewStateDB(database).LoadMap()
		assert.ErrorIs(t, err, errTest)
		assert.EqualError(t, err,
			fmt.Sprintf("loading entry %s: test error", key))
	})

	t.Run("truncated index", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		database := NewMockDatabase(ctrl)
		database.EXPECT().Get(keyIndexKey).Return(index[:10], nil)

		_, err := NewStateDB(database).LoadMap()
		assert.EqualError(t, err,
			"decoding key index: decoding item 0: "+
				"insufficient data: need 31 bytes, have 9")
	})
}
