// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/planet"
)

// Validator is one entry of the validator table: a public identity with a
// non-negative voting power.
type Validator struct {
	PublicKey planet.PublicKey
	Power     *big.Int
}

// Validate checks well-formedness of the entry.
func (v *Validator) Validate() error {
	if v.Power == nil || v.Power.Sign() < 0 {
		return errors.New("validator: negative or missing power")
	}
	return nil
}

// ValidatorSet is the power-weighted validator table, ordered by public
// key and unique by it.
type ValidatorSet struct {
	Validators []*Validator
}

// Get returns the validator with the given identity, or nil.
func (vs *ValidatorSet) Get(publicKey planet.PublicKey) *Validator {
	for _, v := range vs.Validators {
		if v.PublicKey == publicKey {
			return v
		}
	}
	return nil
}

// Len returns the number of validators.
func (vs *ValidatorSet) Len() int {
	return len(vs.Validators)
}

// TotalPower sums the voting power of all validators.
func (vs *ValidatorSet) TotalPower() *big.Int {
	total := new(big.Int)
	for _, v := range vs.Validators {
		total.Add(total, v.Power)
	}
	return total
}

// With returns a copy of the set with the validator inserted or replaced,
// keyed by identity. Zero power removes the entry instead of storing it.
func (vs *ValidatorSet) With(v *Validator) *ValidatorSet {
	next := &ValidatorSet{}
	for _, cur := range vs.Validators {
		if cur.PublicKey != v.PublicKey {
			next.Validators = append(next.Validators, &Validator{cur.PublicKey, new(big.Int).Set(cur.Power)})
		}
	}
	if v.Power.Sign() > 0 {
		next.Validators = append(next.Validators, &Validator{v.PublicKey, new(big.Int).Set(v.Power)})
		sort.Slice(next.Validators, func(i, j int) bool {
			return next.Validators[i].PublicKey.Compare(next.Validators[j].PublicKey) < 0
		})
	}
	return next
}
