// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package planet

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Currency identifies a fungible asset kind. Once a currency is referenced
// by committed state it must never change, since its content hash keys the
// balance and supply entries.
type Currency struct {
	Ticker        string
	DecimalPlaces uint8
	Minters       []Address // sorted ascending, unique; empty means nobody can mint
	MaximumSupply *big.Int  `rlp:"nil"` // optional supply cap, nil for unbounded
}

// NewCurrency creates an uncapped currency.
func NewCurrency(ticker string, decimalPlaces uint8, minters []Address) (Currency, error) {
	return newCurrency(ticker, decimalPlaces, minters, nil)
}

// NewCappedCurrency creates a currency whose total supply may never exceed maximumSupply.
func NewCappedCurrency(ticker string, decimalPlaces uint8, minters []Address, maximumSupply *big.Int) (Currency, error) {
	if maximumSupply == nil || maximumSupply.Sign() <= 0 {
		return Currency{}, errors.New("currency: maximum supply must be positive")
	}
	return newCurrency(ticker, decimalPlaces, minters, new(big.Int).Set(maximumSupply))
}

func newCurrency(ticker string, decimalPlaces uint8, minters []Address, maximumSupply *big.Int) (Currency, error) {
	if ticker == "" {
		return Currency{}, errors.New("currency: empty ticker")
	}

	sorted := make([]Address, 0, len(minters))
	sorted = append(sorted, minters...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})
	// drop duplicates to keep the encoding canonical
	uniq := sorted[:0]
	for i, m := range sorted {
		if i == 0 || sorted[i-1] != m {
			uniq = append(uniq, m)
		}
	}

	return Currency{
		Ticker:        ticker,
		DecimalPlaces: decimalPlaces,
		Minters:       uniq,
		MaximumSupply: maximumSupply,
	}, nil
}

// MustNewCurrency is like NewCurrency but panics on error.
func MustNewCurrency(ticker string, decimalPlaces uint8, minters []Address) Currency {
	c, err := NewCurrency(ticker, decimalPlaces, minters)
	if err != nil {
		panic(err)
	}
	return c
}

// Hash computes the content hash identifying this currency.
func (c Currency) Hash() Bytes32 {
	data, err := rlp.EncodeToBytes(&c)
	if err != nil {
		panic(errors.Wrap(err, "encode currency"))
	}
	return Blake2b(data)
}

// AllowsMint returns whether addr is authorized to mint/burn this currency.
func (c Currency) AllowsMint(addr Address) bool {
	i := sort.Search(len(c.Minters), func(i int) bool {
		return c.Minters[i].Compare(addr) >= 0
	})
	return i < len(c.Minters) && c.Minters[i] == addr
}

// Value binds a raw amount to this currency.
func (c Currency) Value(amount *big.Int) FungibleAssetValue {
	return FungibleAssetValue{Currency: c, Amount: new(big.Int).Set(amount)}
}

// ValueInt64 binds a raw int64 amount to this currency.
func (c Currency) ValueInt64(amount int64) FungibleAssetValue {
	return FungibleAssetValue{Currency: c, Amount: big.NewInt(amount)}
}

func (c Currency) String() string {
	return c.Ticker
}
