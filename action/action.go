// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package action defines the action capability set the evaluator works
// with, the closed vocabulary of built-in system actions and their
// consensus-critical wire encoding.
package action

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

// Action is the polymorphic capability set every action exposes, whether
// it is a system builtin or a host-defined action with its own codec. The
// evaluator treats all actions uniformly through it.
type Action interface {
	// LoadPlainValue initializes the action from its serialized payload.
	LoadPlainValue(payload rlp.RawValue) error
	// PlainValue returns the action-specific serialized payload.
	PlainValue() (rlp.RawValue, error)
	// Execute applies the action to the prior world and returns the
	// output world. Errors are action faults: the evaluator discards the
	// output and keeps the prior world.
	Execute(ctx *xenv.Context, w *state.World) (*state.World, error)
}

// builtin actions charge a flat gas amount up front.
const baseGas = 100
