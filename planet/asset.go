// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package planet

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// ErrCurrencyMismatch is returned when arithmetic is attempted over values
// of different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// FungibleAssetValue is an amount of a specific currency.
// The zero amount of every currency is a valid value.
type FungibleAssetValue struct {
	Currency Currency
	Amount   *big.Int
}

// Sign returns the sign of the raw amount.
func (v FungibleAssetValue) Sign() int {
	return v.Amount.Sign()
}

// Add sums two values of the same currency.
func (v FungibleAssetValue) Add(o FungibleAssetValue) (FungibleAssetValue, error) {
	if err := v.checkCurrency(o); err != nil {
		return FungibleAssetValue{}, err
	}
	return FungibleAssetValue{v.Currency, new(big.Int).Add(v.Amount, o.Amount)}, nil
}

// Sub subtracts a value of the same currency.
func (v FungibleAssetValue) Sub(o FungibleAssetValue) (FungibleAssetValue, error) {
	if err := v.checkCurrency(o); err != nil {
		return FungibleAssetValue{}, err
	}
	return FungibleAssetValue{v.Currency, new(big.Int).Sub(v.Amount, o.Amount)}, nil
}

// Cmp compares raw amounts of same-currency values, returning -1, 0 or 1.
func (v FungibleAssetValue) Cmp(o FungibleAssetValue) (int, error) {
	if err := v.checkCurrency(o); err != nil {
		return 0, err
	}
	return v.Amount.Cmp(o.Amount), nil
}

// Equal reports whether both the currency and the raw amount match.
func (v FungibleAssetValue) Equal(o FungibleAssetValue) bool {
	return v.Currency.Hash() == o.Currency.Hash() && v.Amount.Cmp(o.Amount) == 0
}

func (v FungibleAssetValue) checkCurrency(o FungibleAssetValue) error {
	if v.Currency.Hash() != o.Currency.Hash() {
		return errors.Wrapf(ErrCurrencyMismatch, "%v vs %v", v.Currency, o.Currency)
	}
	return nil
}

func (v FungibleAssetValue) String() string {
	return fmt.Sprintf("%v %s", v.Amount, v.Currency.Ticker)
}
