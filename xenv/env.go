// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xenv provides the execution context handed to actions.
package xenv

import (
	"github.com/pkg/errors"

	"github.com/xiaoxianBoy/libplanet/planet"
)

// ErrGasExhausted is returned by UseGas when the action runs out of the
// gas it was given.
var ErrGasExhausted = errors.New("gas exhausted")

// Context carries everything an action may observe besides the world:
// who signed it, which block it runs in and the gas meter. It carries no
// mutable world reference; worlds are threaded through Execute explicitly.
type Context struct {
	Signer          planet.Address
	Proposer        planet.Address
	BlockIndex      uint64
	ProtocolVersion int
	TxID            planet.Bytes32

	// BlockAction marks block-level execution, where the proposer gains
	// minting privileges.
	BlockAction bool

	gasLimit uint64
	gasUsed  uint64
}

// New creates a context with the given gas budget. A zero limit disables
// metering.
func New(signer, proposer planet.Address, blockIndex uint64, protocolVersion int, txID planet.Bytes32, gasLimit uint64) *Context {
	return &Context{
		Signer:          signer,
		Proposer:        proposer,
		BlockIndex:      blockIndex,
		ProtocolVersion: protocolVersion,
		TxID:            txID,
		gasLimit:        gasLimit,
	}
}

// UseGas consumes gas from the budget.
func (c *Context) UseGas(gas uint64) error {
	if c.gasLimit > 0 && c.gasUsed+gas > c.gasLimit {
		c.gasUsed = c.gasLimit
		return ErrGasExhausted
	}
	c.gasUsed += gas
	return nil
}

// GasLimit returns the gas budget, zero when unmetered.
func (c *Context) GasLimit() uint64 { return c.gasLimit }

// GasUsed returns the gas consumed so far.
func (c *Context) GasUsed() uint64 { return c.gasUsed }
