// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/stackedmap"
	"github.com/xiaoxianBoy/libplanet/trie"
)

// trie key prefixes of the world trie.
const (
	accountTriePrefix   = 'a'
	supplyTriePrefix    = 's'
	validatorTriePrefix = 'v'
)

func accountTrieKey(addr planet.Address) []byte {
	return append([]byte{accountTriePrefix}, addr.Bytes()...)
}

func supplyTrieKey(currency planet.Bytes32) []byte {
	return append([]byte{supplyTriePrefix}, currency.Bytes()...)
}

var validatorTrieKey = []byte{validatorTriePrefix}

// ErrInvalidState is returned when an operation is attempted against a
// world in an incompatible compatibility mode.
var ErrInvalidState = errors.New("invalid state")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// overlay key types. They must be comparable.
type (
	acctKey   planet.Address
	supKey    planet.Bytes32
	valSetKey struct{}
	// favKey tracks whether the balance of (address, currency) differs
	// from the base world. Entries are transient and never persisted.
	favKey struct {
		addr     planet.Address
		currency planet.Bytes32
	}
)

// FungiblePair is one (address, currency) entry of the updated-assets set.
type FungiblePair struct {
	Address  planet.Address
	Currency planet.Bytes32
}

// World is one version of the full account and validator state, layered as
// an immutable delta chain over a base trie root. Every mutating operation
// returns a new World; a World value is never mutated in place and is safe
// to share between goroutines.
type World struct {
	trie   *trie.Trie // base reader, used read-only until staging
	sm     *stackedmap.StackedMap
	legacy bool
}

// WorldState is the read-only capability subset of World, handed to
// anything that must observe but not change state.
type WorldState interface {
	GetAccount(addr planet.Address) (*Account, error)
	Balance(addr planet.Address, currency planet.Bytes32) (*big.Int, error)
	TotalSupply(currency planet.Bytes32) (*big.Int, error)
	GetValidatorSet() (*ValidatorSet, error)
}

var _ WorldState = (*World)(nil)

func newWorld(tr *trie.Trie, legacy bool) *World {
	w := &World{trie: tr, legacy: legacy}
	w.sm = stackedmap.New(func(key any) (any, bool, error) {
		return baseGetter(tr, key)
	})
	return w
}

// baseGetter implements stackedmap.MapGetter against the base trie.
func baseGetter(tr *trie.Trie, key any) (any, bool, error) {
	switch k := key.(type) {
	case acctKey:
		metricAccountLoaded().Add(1)
		acc, err := loadAccount(tr, planet.Address(k))
		if err != nil {
			return nil, false, err
		}
		return acc, true, nil
	case supKey:
		data, err := tr.Get(supplyTrieKey(planet.Bytes32(k)))
		if err != nil {
			return nil, false, err
		}
		supply := new(big.Int)
		if len(data) > 0 {
			if err := rlp.DecodeBytes(data, supply); err != nil {
				return nil, false, err
			}
		}
		return supply, true, nil
	case valSetKey:
		data, err := tr.Get(validatorTrieKey)
		if err != nil {
			return nil, false, err
		}
		vs := &ValidatorSet{}
		if len(data) > 0 {
			if err := rlp.DecodeBytes(data, vs); err != nil {
				return nil, false, err
			}
		}
		return vs, true, nil
	case favKey:
		// the base never differs from itself
		return false, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// derive layers one write over the receiver.
func (w *World) derive(key, value any) *World {
	return &World{trie: w.trie, sm: w.sm.Put(key, value), legacy: w.legacy}
}

// GetAccount returns the account bound to addr, or nil when the address
// was never written. It never fails on unknown addresses.
func (w *World) GetAccount(addr planet.Address) (*Account, error) {
	v, _, err := w.sm.Get(acctKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	acc := v.(*Account)
	if acc == nil {
		return nil, nil
	}
	return acc.Copy(), nil
}

// SetAccount returns a new world with addr bound to the account. In legacy
// single-account mode every address but the reserved legacy one is
// rejected with ErrInvalidState.
//
// The account's balance table replaces the previous one wholesale, so the
// updated-assets marks are recomputed for every currency the write can
// touch: the new table, the base table and marks layered earlier.
func (w *World) SetAccount(addr planet.Address, acc *Account) (*World, error) {
	if acc == nil {
		return nil, &Error{errors.New("nil account")}
	}
	if w.legacy && addr != planet.LegacyAccountAddress {
		return nil, errors.Wrapf(ErrInvalidState, "legacy world accepts only %v, got %v",
			planet.LegacyAccountAddress, addr)
	}

	base, err := loadAccount(w.trie, addr)
	if err != nil {
		return nil, &Error{err}
	}

	touched := make(map[planet.Bytes32]struct{}, len(acc.Balances))
	for _, b := range acc.Balances {
		touched[b.Currency] = struct{}{}
	}
	if base != nil {
		for _, b := range base.Balances {
			touched[b.Currency] = struct{}{}
		}
	}
	// stale marks from earlier writes must be recomputed too, or a table
	// that drops back to the base value would keep a false positive
	w.sm.Journal(func(k, v any) bool {
		if key, ok := k.(favKey); ok && key.addr == addr {
			touched[key.currency] = struct{}{}
		}
		return true
	})

	next := w.derive(acctKey(addr), acc.Copy())
	for currency := range touched {
		next = next.derive(favKey{addr, currency},
			base.Balance(currency).Cmp(acc.Balance(currency)) != 0)
	}
	return next, nil
}

// Balance returns the balance of the given currency held by addr.
func (w *World) Balance(addr planet.Address, currency planet.Bytes32) (*big.Int, error) {
	v, _, err := w.sm.Get(acctKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return v.(*Account).Balance(currency), nil
}

// SetBalance returns a new world with the balance entry replaced. The
// updated-assets set is maintained incrementally by SetAccount: the
// (addr, currency) pair is marked exactly when the new amount differs
// from the base world.
func (w *World) SetBalance(addr planet.Address, currency planet.Bytes32, amount *big.Int) (*World, error) {
	v, _, err := w.sm.Get(acctKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return w.SetAccount(addr, v.(*Account).WithBalance(currency, amount))
}

// TotalSupply returns the recorded total supply of the currency.
func (w *World) TotalSupply(currency planet.Bytes32) (*big.Int, error) {
	v, _, err := w.sm.Get(supKey(currency))
	if err != nil {
		return nil, &Error{err}
	}
	return new(big.Int).Set(v.(*big.Int)), nil
}

// SetTotalSupply returns a new world with the currency's supply counter
// replaced. Negative supplies are malformed.
func (w *World) SetTotalSupply(currency planet.Bytes32, supply *big.Int) (*World, error) {
	if supply.Sign() < 0 {
		return nil, &Error{errors.New("negative total supply")}
	}
	return w.derive(supKey(currency), new(big.Int).Set(supply)), nil
}

// GetValidatorSet returns the current validator table.
func (w *World) GetValidatorSet() (*ValidatorSet, error) {
	v, _, err := w.sm.Get(valSetKey{})
	if err != nil {
		return nil, &Error{err}
	}
	return v.(*ValidatorSet), nil
}

// SetValidator returns a new world with the validator inserted or
// replaced; zero power removes the entry.
func (w *World) SetValidator(v *Validator) (*World, error) {
	if err := v.Validate(); err != nil {
		return nil, &Error{err}
	}
	vs, err := w.GetValidatorSet()
	if err != nil {
		return nil, err
	}
	return w.derive(valSetKey{}, vs.With(v)), nil
}

// TotalUpdatedFungibleAssets returns exactly the set of (address, currency)
// pairs whose balance differs between the base and this world, sorted for
// determinism. It is derived incrementally from balance writes, never by
// re-diffing the trie.
func (w *World) TotalUpdatedFungibleAssets() []FungiblePair {
	var pairs []FungiblePair
	w.sm.Journal(func(k, v any) bool {
		if key, ok := k.(favKey); ok && v.(bool) {
			pairs = append(pairs, FungiblePair{key.addr, key.currency})
		}
		return true
	})
	sort.Slice(pairs, func(i, j int) bool {
		if c := pairs[i].Address.Compare(pairs[j].Address); c != 0 {
			return c < 0
		}
		return string(pairs[i].Currency.Bytes()) < string(pairs[j].Currency.Bytes())
	})
	return pairs
}

// Stage folds the accumulated delta into a copy of the base trie and
// returns a stage to compute the new root or commit it. The receiver stays
// valid and unchanged.
func (w *World) Stage() (*Stage, error) {
	trieCpy := w.trie.Copy()

	var jerr error
	w.sm.Journal(func(k, v any) bool {
		switch key := k.(type) {
		case acctKey:
			jerr = saveAccount(trieCpy, planet.Address(key), v.(*Account))
		case supKey:
			supply := v.(*big.Int)
			if supply.Sign() == 0 {
				jerr = trieCpy.Update(supplyTrieKey(planet.Bytes32(key)), nil)
			} else {
				var data []byte
				if data, jerr = rlp.EncodeToBytes(supply); jerr == nil {
					jerr = trieCpy.Update(supplyTrieKey(planet.Bytes32(key)), data)
				}
			}
		case valSetKey:
			vs := v.(*ValidatorSet)
			if vs.Len() == 0 {
				jerr = trieCpy.Update(validatorTrieKey, nil)
			} else {
				var data []byte
				if data, jerr = rlp.EncodeToBytes(vs); jerr == nil {
					jerr = trieCpy.Update(validatorTrieKey, data)
				}
			}
		case favKey:
			// derived set, not part of committed state
		}
		return jerr == nil
	})
	if jerr != nil {
		return nil, &Error{jerr}
	}

	root, commit := trieCpy.Stage()
	return &Stage{root: root, commits: []func() error{commit}}, nil
}
