// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package trie implements the content-addressed trie the world state is
// committed into. Nodes are stored by the blake2b hash of their encoding,
// so unchanged subtrees are shared between versions and a root hash fully
// identifies a version.
package trie

import (
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/kv"
	"github.com/xiaoxianBoy/libplanet/planet"
)

// decoded nodes are shared process-wide; they are immutable once hashed.
var nodeCache, _ = lru.NewARC(8192)

const branchWidth = 16

// node is a 16-way branch keyed by key nibbles. A node may carry a value
// when some key ends at it. The zero hash marks an absent child.
type node struct {
	Value    []byte
	Children [branchWidth][]byte
}

func (n *node) isEmpty() bool {
	if len(n.Value) > 0 {
		return false
	}
	for _, c := range n.Children {
		if len(c) > 0 {
			return false
		}
	}
	return true
}

// Trie presents one version of the key-value mapping, rooted at a hash.
// Update stages new nodes in memory; Stage produces the new root and a
// closure that persists staged nodes in one batch.
type Trie struct {
	store kv.GetPutter
	root  planet.Bytes32
	dirty map[planet.Bytes32]*node
}

// New creates a trie at the given root. The zero root denotes the empty trie.
func New(store kv.GetPutter, root planet.Bytes32) *Trie {
	return &Trie{
		store: store,
		root:  root,
		dirty: make(map[planet.Bytes32]*node),
	}
}

// Copy clones the trie, including staged nodes.
func (t *Trie) Copy() *Trie {
	dirty := make(map[planet.Bytes32]*node, len(t.dirty))
	for h, n := range t.dirty {
		dirty[h] = n
	}
	return &Trie{store: t.store, root: t.root, dirty: dirty}
}

// Hash returns the current root hash including staged changes.
func (t *Trie) Hash() planet.Bytes32 {
	return t.root
}

func (t *Trie) getNode(hash planet.Bytes32) (*node, error) {
	if n, ok := t.dirty[hash]; ok {
		return n, nil
	}
	if cached, ok := nodeCache.Get(hash); ok {
		return cached.(*node), nil
	}
	data, err := t.store.Get(hash[:])
	if err != nil {
		if t.store.IsNotFound(err) {
			return nil, errors.Errorf("trie: missing node %v", hash)
		}
		return nil, errors.Wrap(err, "trie: load node")
	}
	var n node
	if err := rlp.DecodeBytes(data, &n); err != nil {
		return nil, errors.Wrap(err, "trie: decode node")
	}
	nodeCache.Add(hash, &n)
	return &n, nil
}

func (t *Trie) hashNode(n *node) (planet.Bytes32, error) {
	data, err := rlp.EncodeToBytes(n)
	if err != nil {
		return planet.Bytes32{}, errors.Wrap(err, "trie: encode node")
	}
	hash := planet.Blake2b(data)
	t.dirty[hash] = n
	return hash, nil
}

func nibbles(key []byte) []byte {
	path := make([]byte, 0, len(key)*2)
	for _, b := range key {
		path = append(path, b>>4, b&0x0f)
	}
	return path
}

// Get returns the value for the given key, or nil if the key is absent.
func (t *Trie) Get(key []byte) ([]byte, error) {
	if t.root.IsZero() {
		return nil, nil
	}
	n, err := t.getNode(t.root)
	if err != nil {
		return nil, err
	}
	for _, nib := range nibbles(key) {
		child := n.Children[nib]
		if len(child) == 0 {
			return nil, nil
		}
		if n, err = t.getNode(planet.BytesToBytes32(child)); err != nil {
			return nil, err
		}
	}
	if len(n.Value) == 0 {
		return nil, nil
	}
	return n.Value, nil
}

// Update sets the value for the given key. An empty value deletes the key.
// The change only lives in staged nodes until Stage/commit.
func (t *Trie) Update(key, value []byte) error {
	var rootHash *planet.Bytes32
	if !t.root.IsZero() {
		rootHash = &t.root
	}
	newRoot, err := t.update(rootHash, nibbles(key), value)
	if err != nil {
		return err
	}
	if newRoot == nil {
		t.root = planet.Bytes32{}
	} else {
		t.root = *newRoot
	}
	return nil
}

// update rebuilds the path for the remaining nibbles and returns the hash
// of the replacement subtree, or nil when the subtree became empty.
func (t *Trie) update(hash *planet.Bytes32, path []byte, value []byte) (*planet.Bytes32, error) {
	var cur node
	if hash != nil {
		loaded, err := t.getNode(*hash)
		if err != nil {
			return nil, err
		}
		cur = *loaded // copy on write
	}

	if len(path) == 0 {
		cur.Value = value
	} else {
		var childHash *planet.Bytes32
		if c := cur.Children[path[0]]; len(c) > 0 {
			h := planet.BytesToBytes32(c)
			childHash = &h
		} else if len(value) == 0 {
			// deleting below an absent child is a no-op
			return hash, nil
		}
		newChild, err := t.update(childHash, path[1:], value)
		if err != nil {
			return nil, err
		}
		if newChild == nil {
			cur.Children[path[0]] = nil
		} else {
			cur.Children[path[0]] = newChild.Bytes()
		}
	}

	if cur.isEmpty() {
		return nil, nil
	}
	newHash, err := t.hashNode(&cur)
	if err != nil {
		return nil, err
	}
	return &newHash, nil
}

// Stage returns the root of the staged version and a closure that writes
// all staged nodes to the backing store in one batch.
func (t *Trie) Stage() (planet.Bytes32, func() error) {
	root := t.root
	dirty := t.dirty

	commit := func() error {
		if len(dirty) == 0 {
			return nil
		}
		batch := t.store.NewBatch()
		for hash, n := range dirty {
			data, err := rlp.EncodeToBytes(n)
			if err != nil {
				return errors.Wrap(err, "trie: encode node")
			}
			if err := batch.Put(hash.Bytes(), data); err != nil {
				return err
			}
			nodeCache.Add(hash, n)
		}
		return errors.Wrap(batch.Write(), "trie: commit nodes")
	}
	return root, commit
}
