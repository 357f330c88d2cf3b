// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/xiaoxianBoy/libplanet/ledger"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

// Mint is the builtin that issues new units of a currency to a recipient.
// The signer must be one of the currency's minters, or the block proposer
// during block-level execution.
type Mint struct {
	Recipient planet.Address
	Value     planet.FungibleAssetValue
}

var _ Action = (*Mint)(nil)

// LoadPlainValue implements Action.
func (m *Mint) LoadPlainValue(payload rlp.RawValue) error {
	return rlp.DecodeBytes(payload, m)
}

// PlainValue implements Action.
func (m *Mint) PlainValue() (rlp.RawValue, error) {
	return rlp.EncodeToBytes(m)
}

// Execute implements Action.
func (m *Mint) Execute(ctx *xenv.Context, w *state.World) (*state.World, error) {
	if err := ctx.UseGas(baseGas); err != nil {
		return nil, err
	}
	return ledger.Mint(ctx, w, m.Recipient, m.Value)
}
