// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime evaluates ordered action lists against a world,
// threading the output world of each action into the next and wrapping
// every action in the mortgage/refund/reward fee lifecycle.
package runtime

import (
	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/action"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

// ErrActionFault marks a fault raised by an action's own execution logic.
// The evaluator discards the faulty action's writes but still settles its
// fees.
var ErrActionFault = errors.New("action fault")

// faultError tags a captured action error so receipt consumers can match
// ErrActionFault and the underlying domain error through the same chain.
type faultError struct {
	cause error
}

func (e *faultError) Error() string { return "action fault: " + e.cause.Error() }

func (e *faultError) Unwrap() error { return e.cause }

func (e *faultError) Is(target error) bool { return target == ErrActionFault }

// Runtime is the action evaluator bound to one block environment.
type Runtime struct {
	proposer        planet.Address
	blockIndex      uint64
	protocolVersion int
}

// New creates a Runtime for a block.
func New(proposer planet.Address, blockIndex uint64, protocolVersion int) *Runtime {
	return &Runtime{
		proposer:        proposer,
		blockIndex:      blockIndex,
		protocolVersion: protocolVersion,
	}
}

func (rt *Runtime) Proposer() planet.Address { return rt.proposer }
func (rt *Runtime) BlockIndex() uint64       { return rt.blockIndex }
func (rt *Runtime) ProtocolVersion() int     { return rt.protocolVersion }

// ActionInput is one action to evaluate together with its envelope.
type ActionInput struct {
	Action action.Action
	Signer planet.Address
	TxID   planet.Bytes32

	// fee policy; a zero GasLimit or nil GasPrice means no fee is charged
	GasLimit uint64
	GasPrice *planet.FungibleAssetValue

	// BlockAction marks block-level execution, granting the proposer
	// minting privileges.
	BlockAction bool
}

// Evaluate applies the actions to the base world in the exact order given.
// Re-ordering is never valid: later actions may depend on earlier side
// effects. It returns one receipt per action and the final world. Action
// faults are captured in receipts; an error return means the evaluation
// itself could not proceed (e.g. fee mortgage failure) and no partial
// result is exposed.
func (rt *Runtime) Evaluate(base *state.World, inputs []ActionInput) ([]*Receipt, *state.World, error) {
	w := base
	receipts := make([]*Receipt, 0, len(inputs))

	for i, input := range inputs {
		receipt, next, err := rt.evaluateOne(w, input)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "action #%d", i)
		}
		receipts = append(receipts, receipt)
		w = next
	}
	return receipts, w, nil
}

// evaluateOne runs the Mortgaged → Executed → Settled machine for a single
// action, producing exactly one net world transition.
func (rt *Runtime) evaluateOne(w *state.World, input ActionInput) (*Receipt, *state.World, error) {
	ctx := xenv.New(input.Signer, rt.proposer, rt.blockIndex, rt.protocolVersion, input.TxID, input.GasLimit)
	ctx.BlockAction = input.BlockAction

	receipt := &Receipt{}

	var fc *feeCollector
	cur := w
	if input.GasPrice != nil && input.GasLimit > 0 {
		fc = newFeeCollector(input.Signer, rt.proposer, *input.GasPrice, input.GasLimit)
		var err error
		if cur, err = fc.Mortgage(ctx, cur); err != nil {
			return nil, nil, err
		}
		receipt.Payer = input.Signer
	}

	out, aerr := input.Action.Execute(ctx, cur)
	if aerr != nil {
		// discard the faulty action's writes; fee accounting survives
		out = cur
		receipt.Faulted = true
		receipt.Err = &faultError{aerr}
		metricActionsFaulted().Add(1)
	}
	receipt.GasUsed = ctx.GasUsed()

	if fc != nil {
		settled, paid, err := fc.Settle(ctx, out, receipt.GasUsed)
		if err != nil {
			return nil, nil, err
		}
		out = settled
		receipt.Paid = &paid
	}

	metricActionsEvaluated().Add(1)
	return receipt, out, nil
}
