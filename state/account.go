// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"io"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/trie"
)

// Account is the per-address state bundle committed into the account trie:
// opaque program-defined data plus a fungible balance table keyed by
// currency hash. A nil *Account means "absent", which is distinct from a
// present account with zero fields.
type Account struct {
	Data     []byte
	Balances []Balance
}

// Balance is one (currency, amount) entry. Amounts may be negative when
// the legacy transfer behavior is replayed.
type Balance struct {
	Currency planet.Bytes32
	Amount   *big.Int
}

// Balance returns the account's balance of the given currency. Missing
// entries read as zero. Accounts may be nil.
func (a *Account) Balance(currency planet.Bytes32) *big.Int {
	if a == nil {
		return new(big.Int)
	}
	for _, b := range a.Balances {
		if b.Currency == currency {
			return new(big.Int).Set(b.Amount)
		}
	}
	return new(big.Int)
}

// WithBalance returns a copy of the account with the balance entry for the
// currency replaced. Zero amounts drop the entry to keep the encoding
// canonical. Calling on a nil account materializes one.
func (a *Account) WithBalance(currency planet.Bytes32, amount *big.Int) *Account {
	cpy := a.Copy()
	entries := cpy.Balances[:0]
	for _, b := range cpy.Balances {
		if b.Currency != currency {
			entries = append(entries, b)
		}
	}
	if amount.Sign() != 0 {
		entries = append(entries, Balance{currency, new(big.Int).Set(amount)})
		sort.Slice(entries, func(i, j int) bool {
			return string(entries[i].Currency.Bytes()) < string(entries[j].Currency.Bytes())
		})
	}
	cpy.Balances = entries
	return cpy
}

// WithData returns a copy of the account with its opaque data replaced.
func (a *Account) WithData(data []byte) *Account {
	cpy := a.Copy()
	cpy.Data = append([]byte(nil), data...)
	return cpy
}

// Copy deep-copies the account. A nil account copies to an empty one.
func (a *Account) Copy() *Account {
	if a == nil {
		return &Account{}
	}
	cpy := &Account{Data: append([]byte(nil), a.Data...)}
	if len(a.Balances) > 0 {
		cpy.Balances = make([]Balance, len(a.Balances))
		for i, b := range a.Balances {
			cpy.Balances[i] = Balance{b.Currency, new(big.Int).Set(b.Amount)}
		}
	}
	return cpy
}

// IsEmpty returns if the account carries no data and no balances.
func (a *Account) IsEmpty() bool {
	return a == nil || (len(a.Data) == 0 && len(a.Balances) == 0)
}

// rlp has no signed integers, so balances carry an explicit sign flag.
type encAccount struct {
	Data     []byte
	Balances []encBalance
}

type encBalance struct {
	Currency planet.Bytes32
	Neg      bool
	Abs      *big.Int
}

// EncodeRLP implements rlp.Encoder.
func (a *Account) EncodeRLP(w io.Writer) error {
	enc := encAccount{Data: a.Data, Balances: make([]encBalance, len(a.Balances))}
	for i, b := range a.Balances {
		enc.Balances[i] = encBalance{
			Currency: b.Currency,
			Neg:      b.Amount.Sign() < 0,
			Abs:      new(big.Int).Abs(b.Amount),
		}
	}
	return rlp.Encode(w, &enc)
}

// DecodeRLP implements rlp.Decoder.
func (a *Account) DecodeRLP(s *rlp.Stream) error {
	var enc encAccount
	if err := s.Decode(&enc); err != nil {
		return err
	}
	a.Data = enc.Data
	a.Balances = make([]Balance, len(enc.Balances))
	for i, b := range enc.Balances {
		amount := new(big.Int).Set(b.Abs)
		if b.Neg {
			amount.Neg(amount)
		}
		a.Balances[i] = Balance{b.Currency, amount}
	}
	return nil
}

// loadAccount loads the account stored at addr, or nil if absent.
func loadAccount(tr *trie.Trie, addr planet.Address) (*Account, error) {
	data, err := tr.Get(accountTrieKey(addr))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount saves the account into the trie at the given address.
// Present-but-empty accounts are stored, since absence is a distinct value.
func saveAccount(tr *trie.Trie, addr planet.Address, a *Account) error {
	if a == nil {
		return tr.Update(accountTrieKey(addr), nil)
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return tr.Update(accountTrieKey(addr), data)
}
