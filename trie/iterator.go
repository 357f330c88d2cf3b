// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import "github.com/xiaoxianBoy/libplanet/planet"

// Iterator walks all (key, value) pairs of one trie version in ascending
// key order. It is finite and restartable: a fresh iterator over the same
// root always yields the same sequence.
type Iterator struct {
	trie  *Trie
	stack []*iterFrame
	key   []byte
	value []byte
	err   error
}

type iterFrame struct {
	node *node
	// next child index to descend into; branchWidth means the frame
	// is exhausted.
	next int
	// whether the node's own value is still pending emission.
	pendingValue bool
}

// NewIterator creates an iterator over the trie's current version.
func (t *Trie) NewIterator() *Iterator {
	it := &Iterator{trie: t}
	if t.root.IsZero() {
		return it
	}
	root, err := t.getNode(t.root)
	if err != nil {
		it.err = err
		return it
	}
	it.stack = append(it.stack, &iterFrame{node: root, pendingValue: len(root.Value) > 0})
	return it
}

// Next moves the iterator forward. It returns false when the walk is done
// or an error occurred.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.stack) > 0 {
		frame := it.stack[len(it.stack)-1]

		if frame.pendingValue {
			frame.pendingValue = false
			it.key = it.pathKey()
			it.value = frame.node.Value
			return true
		}

		descended := false
		for frame.next < branchWidth {
			child := frame.node.Children[frame.next]
			if len(child) == 0 {
				frame.next++
				continue
			}
			n, err := it.trie.getNode(planet.BytesToBytes32(child))
			if err != nil {
				it.err = err
				return false
			}
			it.stack = append(it.stack, &iterFrame{node: n, pendingValue: len(n.Value) > 0})
			descended = true
			break
		}
		if descended {
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
		if len(it.stack) > 0 {
			it.stack[len(it.stack)-1].next++
		}
	}
	return false
}

// pathKey rebuilds the byte key from the nibble path of the current stack.
func (it *Iterator) pathKey() []byte {
	nibs := make([]byte, 0, len(it.stack)-1)
	for i := 0; i < len(it.stack)-1; i++ {
		nibs = append(nibs, byte(it.stack[i].next))
	}
	key := make([]byte, len(nibs)/2)
	for i := 0; i+1 < len(nibs); i += 2 {
		key[i/2] = nibs[i]<<4 | nibs[i+1]
	}
	return key
}

// Key returns the key of the current entry.
func (it *Iterator) Key() []byte { return it.key }

// Value returns the value of the current entry.
func (it *Iterator) Value() []byte { return it.value }

// Error returns the first error hit during iteration, if any.
func (it *Iterator) Error() error { return it.err }
