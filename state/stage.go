// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/xiaoxianBoy/libplanet/planet"

// Stage abstracts the changes of a staged world version, ready to be
// committed into the backing store.
type Stage struct {
	root    planet.Bytes32
	commits []func() error
}

// Hash returns the root hash of the staged version without persisting it.
func (s *Stage) Hash() planet.Bytes32 {
	return s.root
}

// Commit persists all staged changes and returns the new root.
func (s *Stage) Commit() (planet.Bytes32, error) {
	for _, commit := range s.commits {
		if err := commit(); err != nil {
			return planet.Bytes32{}, &Error{err}
		}
	}
	return s.root, nil
}
