// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/ledger"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

// fee lifecycle states. The collector moves strictly forward; calls out of
// order are programming errors.
type feeState int

const (
	feeInit feeState = iota
	feeMortgaged
	feeSettled
)

// feeCollector runs the three-phase fee accounting around one action:
// mortgage the maximum fee up front, then fold refund of the unused part
// and reward of the consumed part into the same delta chain. No trie
// commit happens between the phases; the caller stages the world once per
// evaluation.
type feeCollector struct {
	payer    planet.Address
	proposer planet.Address
	price    planet.FungibleAssetValue // per gas unit
	gasLimit uint64

	st feeState
}

func newFeeCollector(payer, proposer planet.Address, price planet.FungibleAssetValue, gasLimit uint64) *feeCollector {
	return &feeCollector{
		payer:    payer,
		proposer: proposer,
		price:    price,
		gasLimit: gasLimit,
	}
}

func (fc *feeCollector) amount(gas uint64) planet.FungibleAssetValue {
	total := new(big.Int).SetUint64(gas)
	total.Mul(total, fc.price.Amount)
	return planet.FungibleAssetValue{Currency: fc.price.Currency, Amount: total}
}

// Mortgage debits the payer for the maximum possible fee, pessimistically.
// Insufficient balance here fails the whole evaluation of the action.
func (fc *feeCollector) Mortgage(ctx *xenv.Context, w *state.World) (*state.World, error) {
	if fc.st != feeInit {
		panic("fee collector: mortgage out of order")
	}
	fc.st = feeMortgaged

	prepaid := fc.amount(fc.gasLimit)
	if prepaid.Sign() == 0 {
		return w, nil
	}
	next, err := ledger.Transfer(ctx, w, fc.payer, planet.FeeEscrowAddress, prepaid, false)
	if err != nil {
		return nil, errors.WithMessage(err, "fee mortgage")
	}
	return next, nil
}

// Settle refunds the unused portion of the mortgage to the payer and
// rewards the consumed portion to the proposer, as one logical step on the
// given world. It returns the settled world and the fee actually paid.
func (fc *feeCollector) Settle(ctx *xenv.Context, w *state.World, gasUsed uint64) (*state.World, planet.FungibleAssetValue, error) {
	if fc.st != feeMortgaged {
		panic("fee collector: settle out of order")
	}
	fc.st = feeSettled

	if gasUsed > fc.gasLimit {
		gasUsed = fc.gasLimit
	}
	refund := fc.amount(fc.gasLimit - gasUsed)
	paid := fc.amount(gasUsed)

	next := w
	var err error
	if refund.Sign() > 0 {
		if next, err = ledger.Transfer(ctx, next, planet.FeeEscrowAddress, fc.payer, refund, false); err != nil {
			return nil, paid, errors.WithMessage(err, "fee refund")
		}
	}
	if paid.Sign() > 0 {
		if next, err = ledger.Transfer(ctx, next, planet.FeeEscrowAddress, fc.proposer, paid, false); err != nil {
			return nil, paid, errors.WithMessage(err, "fee reward")
		}
	}
	return next, paid, nil
}
