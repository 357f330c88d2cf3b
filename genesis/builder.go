// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the genesis world.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/action"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/runtime"
	"github.com/xiaoxianBoy/libplanet/state"
)

// Builder helper to build the genesis world: the initial validator table,
// pre-set account data and funding mints, all evaluated as block-level
// actions of block #0.
type Builder struct {
	proposer   planet.Address
	validators []*state.Validator
	states     []action.AccountState
	funds      []fund
}

type fund struct {
	recipient planet.Address
	value     planet.FungibleAssetValue
}

// Proposer sets the genesis proposer, who signs the seeding actions.
func (b *Builder) Proposer(proposer planet.Address) *Builder {
	b.proposer = proposer
	return b
}

// Validator adds an initial validator.
func (b *Builder) Validator(v *state.Validator) *Builder {
	b.validators = append(b.validators, v)
	return b
}

// State seeds opaque account data.
func (b *Builder) State(addr planet.Address, data []byte) *Builder {
	b.states = append(b.states, action.AccountState{Address: addr, Data: data})
	return b
}

// Fund mints an initial balance to the recipient.
func (b *Builder) Fund(recipient planet.Address, value planet.FungibleAssetValue) *Builder {
	b.funds = append(b.funds, fund{recipient, value})
	return b
}

// Build evaluates the seeding actions against the empty world and commits
// the genesis root.
func (b *Builder) Build(stater *state.Stater) (planet.Bytes32, error) {
	inputs := []runtime.ActionInput{{
		Action: &action.Initialize{Validators: b.validators, States: b.states},
		Signer: b.proposer,
	}}
	for _, f := range b.funds {
		inputs = append(inputs, runtime.ActionInput{
			Action:      &action.Mint{Recipient: f.recipient, Value: f.value},
			Signer:      b.proposer,
			BlockAction: true,
		})
	}

	rt := runtime.New(b.proposer, 0, planet.CurrentProtocolVersion)
	receipts, world, err := rt.Evaluate(stater.NewWorld(planet.Bytes32{}), inputs)
	if err != nil {
		return planet.Bytes32{}, errors.Wrap(err, "build genesis")
	}
	for _, r := range receipts {
		// a genesis block must seed cleanly or not at all
		if r.Faulted {
			return planet.Bytes32{}, errors.Wrap(r.Err, "build genesis")
		}
	}

	stage, err := world.Stage()
	if err != nil {
		return planet.Bytes32{}, errors.Wrap(err, "stage genesis")
	}
	root, err := stage.Commit()
	if err != nil {
		return planet.Bytes32{}, errors.Wrap(err, "commit genesis")
	}
	return root, nil
}
