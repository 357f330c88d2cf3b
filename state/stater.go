// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/xiaoxianBoy/libplanet/kv"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/trie"
)

// Stater is the world creator, bound to one backing store.
type Stater struct {
	store kv.GetPutter
}

// NewStater creates a new stater.
func NewStater(store kv.GetPutter) *Stater {
	return &Stater{store}
}

// NewWorld creates a mutable-by-substitution world at the given root.
// The zero root denotes the empty world.
func (s *Stater) NewWorld(root planet.Bytes32) *World {
	return newWorld(trie.New(s.store, root), false)
}

// NewLegacyWorld creates a world in legacy single-account compatibility
// mode: only the reserved legacy address may be written.
func (s *Stater) NewLegacyWorld(root planet.Bytes32) *World {
	return newWorld(trie.New(s.store, root), true)
}

// WorldState returns the read-only view at the given root, for query-type
// consumers. It never exposes mutators.
func (s *Stater) WorldState(root planet.Bytes32) WorldState {
	return s.NewWorld(root)
}

// IterateAccounts walks all materialized accounts of a committed world in
// ascending address order. Iteration stops when the callback returns false.
func (s *Stater) IterateAccounts(root planet.Bytes32, cb func(planet.Address, *Account) bool) error {
	it := trie.New(s.store, root).NewIterator()
	for it.Next() {
		key := it.Key()
		if len(key) != 1+planet.AddressLength || key[0] != accountTriePrefix {
			continue
		}
		var acc Account
		if err := rlp.DecodeBytes(it.Value(), &acc); err != nil {
			return &Error{err}
		}
		if !cb(planet.BytesToAddress(key[1:]), &acc) {
			return nil
		}
	}
	if err := it.Error(); err != nil {
		return &Error{err}
	}
	return nil
}
