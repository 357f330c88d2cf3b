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

// Transfer is the builtin that moves value from the signer to a recipient.
// Whether the signer's balance may go negative depends on the protocol
// version the action replays under.
type Transfer struct {
	Recipient planet.Address
	Value     planet.FungibleAssetValue
}

var _ Action = (*Transfer)(nil)

// LoadPlainValue implements Action.
func (t *Transfer) LoadPlainValue(payload rlp.RawValue) error {
	return rlp.DecodeBytes(payload, t)
}

// PlainValue implements Action.
func (t *Transfer) PlainValue() (rlp.RawValue, error) {
	return rlp.EncodeToBytes(t)
}

// Execute implements Action.
func (t *Transfer) Execute(ctx *xenv.Context, w *state.World) (*state.World, error) {
	if err := ctx.UseGas(baseGas); err != nil {
		return nil, err
	}
	allowNegative := planet.AllowsNegativeBalance(ctx.ProtocolVersion)
	return ledger.Transfer(ctx, w, ctx.Signer, t.Recipient, t.Value, allowNegative)
}
