// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger implements the fungible asset accounting rules on top of
// the world state: minting, burning and transferring with total-supply
// bookkeeping. All operations are total: they either return a new world
// carrying the full update, or an error with the input world untouched.
package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

var (
	// ErrPermissionDenied is returned when the signer is not authorized
	// to mint or burn the currency.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInsufficientBalance is returned when a debit would take a
	// balance below the allowed floor.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSupplyOverflow is returned when a mint would exceed the
	// currency's maximum supply.
	ErrSupplyOverflow = errors.New("supply overflow")

	// ErrInvalidAmount is returned for non-positive operation amounts.
	ErrInvalidAmount = errors.New("invalid amount")
)

// checkMintAuthority checks the signer against the currency's minters.
// During block-level execution the block proposer is also authorized.
func checkMintAuthority(ctx *xenv.Context, currency planet.Currency) error {
	if currency.AllowsMint(ctx.Signer) {
		return nil
	}
	if ctx.BlockAction && ctx.Signer == ctx.Proposer {
		return nil
	}
	return errors.Wrapf(ErrPermissionDenied, "%v may not mint %v", ctx.Signer, currency)
}

// Mint credits value to the recipient and grows the currency's total
// supply. The signer must be an authorized minter, and the new supply must
// not exceed the currency's maximum supply when one is set.
func Mint(ctx *xenv.Context, w *state.World, recipient planet.Address, value planet.FungibleAssetValue) (*state.World, error) {
	if value.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "mint %v", value)
	}
	if err := checkMintAuthority(ctx, value.Currency); err != nil {
		return nil, err
	}

	currency := value.Currency.Hash()
	supply, err := w.TotalSupply(currency)
	if err != nil {
		return nil, err
	}
	newSupply := new(big.Int).Add(supply, value.Amount)
	if max := value.Currency.MaximumSupply; max != nil && newSupply.Cmp(max) > 0 {
		return nil, errors.Wrapf(ErrSupplyOverflow, "minting %v would grow supply to %v, cap %v",
			value, newSupply, max)
	}

	balance, err := w.Balance(recipient, currency)
	if err != nil {
		return nil, err
	}
	next, err := w.SetBalance(recipient, currency, new(big.Int).Add(balance, value.Amount))
	if err != nil {
		return nil, err
	}
	return next.SetTotalSupply(currency, newSupply)
}

// Burn debits value from the owner and shrinks the currency's total
// supply. The signer needs the same authority as for minting.
func Burn(ctx *xenv.Context, w *state.World, owner planet.Address, value planet.FungibleAssetValue) (*state.World, error) {
	if value.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "burn %v", value)
	}
	if err := checkMintAuthority(ctx, value.Currency); err != nil {
		return nil, err
	}

	currency := value.Currency.Hash()
	balance, err := w.Balance(owner, currency)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(value.Amount) < 0 {
		return nil, errors.Wrapf(ErrInsufficientBalance, "burn %v from %v holding %v",
			value, owner, balance)
	}

	supply, err := w.TotalSupply(currency)
	if err != nil {
		return nil, err
	}
	next, err := w.SetBalance(owner, currency, new(big.Int).Sub(balance, value.Amount))
	if err != nil {
		return nil, err
	}
	return next.SetTotalSupply(currency, new(big.Int).Sub(supply, value.Amount))
}

// Transfer moves value from sender to recipient. Unless allowNegative is
// set, the sender's resulting balance may not go below zero. The negative
// case reproduces the legacy protocol-version-0 behavior exactly and must
// not be "fixed"; replays of old chain segments depend on it.
func Transfer(ctx *xenv.Context, w *state.World, sender, recipient planet.Address, value planet.FungibleAssetValue, allowNegative bool) (*state.World, error) {
	if value.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "transfer %v", value)
	}

	currency := value.Currency.Hash()
	senderBalance, err := w.Balance(sender, currency)
	if err != nil {
		return nil, err
	}
	remainder := new(big.Int).Sub(senderBalance, value.Amount)
	if !allowNegative && remainder.Sign() < 0 {
		return nil, errors.Wrapf(ErrInsufficientBalance, "transfer %v from %v holding %v",
			value, sender, senderBalance)
	}

	next, err := w.SetBalance(sender, currency, remainder)
	if err != nil {
		return nil, err
	}
	// recipient balance read from the new world so self-transfers stay exact
	recipientBalance, err := next.Balance(recipient, currency)
	if err != nil {
		return nil, err
	}
	return next.SetBalance(recipient, currency, new(big.Int).Add(recipientBalance, value.Amount))
}
