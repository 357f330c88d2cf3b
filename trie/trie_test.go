// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaoxianBoy/libplanet/lvldb"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/trie"
)

func M(a ...interface{}) []interface{} {
	return a
}

func TestTrieGetUpdate(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	tr := trie.New(db, planet.Bytes32{})

	assert.Equal(t, M([]byte(nil), nil), M(tr.Get([]byte("missing"))))

	kvs := map[string]string{
		"key":   "value",
		"key1":  "value1",
		"key2":  "value2",
		"ke":    "v",
		"other": "x",
	}
	for k, v := range kvs {
		require.NoError(t, tr.Update([]byte(k), []byte(v)))
	}
	for k, v := range kvs {
		got, err := tr.Get([]byte(k))
		require.NoError(t, err)
		assert.Equal(t, []byte(v), got, "key %q", k)
	}

	// overwrite
	require.NoError(t, tr.Update([]byte("key"), []byte("value'")))
	assert.Equal(t, M([]byte("value'"), nil), M(tr.Get([]byte("key"))))

	// delete
	require.NoError(t, tr.Update([]byte("key1"), nil))
	assert.Equal(t, M([]byte(nil), nil), M(tr.Get([]byte("key1"))))
	assert.Equal(t, M([]byte("value2"), nil), M(tr.Get([]byte("key2"))))
}

func TestTrieRootDeterminism(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	keys := []string{"alpha", "beta", "gamma", "delta", "al", "alphabet"}

	t1 := trie.New(db, planet.Bytes32{})
	for _, k := range keys {
		require.NoError(t, t1.Update([]byte(k), []byte(k+"-v")))
	}

	t2 := trie.New(db, planet.Bytes32{})
	for i := len(keys) - 1; i >= 0; i-- {
		require.NoError(t, t2.Update([]byte(keys[i]), []byte(keys[i]+"-v")))
	}
	// t2 also takes a detour through a key that is later removed
	require.NoError(t, t2.Update([]byte("transient"), []byte("x")))
	require.NoError(t, t2.Update([]byte("transient"), nil))

	assert.Equal(t, t1.Hash(), t2.Hash(), "root depends only on content")
}

func TestTrieCommitReload(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	tr := trie.New(db, planet.Bytes32{})
	for i := 0; i < 50; i++ {
		k := []byte(fmt.Sprintf("key-%02d", i))
		require.NoError(t, tr.Update(k, []byte(fmt.Sprintf("val-%02d", i))))
	}

	root, commit := tr.Stage()
	require.NoError(t, commit())

	reloaded := trie.New(db, root)
	for i := 0; i < 50; i++ {
		got, err := reloaded.Get([]byte(fmt.Sprintf("key-%02d", i)))
		require.NoError(t, err)
		assert.Equal(t, []byte(fmt.Sprintf("val-%02d", i)), got)
	}
}

func TestTrieStructuralSharing(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	tr := trie.New(db, planet.Bytes32{})
	require.NoError(t, tr.Update([]byte("k"), []byte("v0")))
	root0, commit := tr.Stage()
	require.NoError(t, commit())

	next := trie.New(db, root0)
	require.NoError(t, next.Update([]byte("k"), []byte("v1")))
	root1, commit := next.Stage()
	require.NoError(t, commit())

	// the old version stays readable after the new one is written
	assert.Equal(t, M([]byte("v0"), nil), M(trie.New(db, root0).Get([]byte("k"))))
	assert.Equal(t, M([]byte("v1"), nil), M(trie.New(db, root1).Get([]byte("k"))))
}

func TestTrieIterator(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	tr := trie.New(db, planet.Bytes32{})
	want := map[string]string{}
	for i := 0; i < 30; i++ {
		k := fmt.Sprintf("entry-%02d", i)
		want[k] = fmt.Sprintf("value-%02d", i)
		require.NoError(t, tr.Update([]byte(k), []byte(want[k])))
	}
	// a key that prefixes others
	want["entry"] = "short"
	require.NoError(t, tr.Update([]byte("entry"), []byte("short")))

	got := map[string]string{}
	var prev string
	it := tr.NewIterator()
	for it.Next() {
		key := string(it.Key())
		assert.Less(t, prev, key, "keys come out in ascending order")
		prev = key
		got[key] = string(it.Value())
	}
	require.NoError(t, it.Error())
	assert.Equal(t, want, got)
}
