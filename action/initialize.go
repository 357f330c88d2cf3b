// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

// AccountState seeds one account's opaque data at genesis.
type AccountState struct {
	Address planet.Address
	Data    []byte
}

// Initialize is the builtin that seeds the genesis world: the initial
// validator table and pre-set account states. It may only run in the
// genesis block.
type Initialize struct {
	Validators []*state.Validator
	States     []AccountState
}

var _ Action = (*Initialize)(nil)

// LoadPlainValue implements Action.
func (i *Initialize) LoadPlainValue(payload rlp.RawValue) error {
	return rlp.DecodeBytes(payload, i)
}

// PlainValue implements Action.
func (i *Initialize) PlainValue() (rlp.RawValue, error) {
	return rlp.EncodeToBytes(i)
}

// Execute implements Action.
func (i *Initialize) Execute(ctx *xenv.Context, w *state.World) (*state.World, error) {
	if ctx.BlockIndex != 0 {
		return nil, errors.Errorf("initialize action in block #%d", ctx.BlockIndex)
	}

	next := w
	var err error
	for _, v := range i.Validators {
		if next, err = next.SetValidator(v); err != nil {
			return nil, err
		}
	}
	for _, s := range i.States {
		acc, err := next.GetAccount(s.Address)
		if err != nil {
			return nil, err
		}
		if next, err = next.SetAccount(s.Address, acc.WithData(s.Data)); err != nil {
			return nil, err
		}
	}
	return next, nil
}
