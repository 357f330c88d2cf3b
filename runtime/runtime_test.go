// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaoxianBoy/libplanet/action"
	"github.com/xiaoxianBoy/libplanet/ledger"
	"github.com/xiaoxianBoy/libplanet/lvldb"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/runtime"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

var (
	minter   = planet.BytesToAddress([]byte("minter"))
	alice    = planet.BytesToAddress([]byte("alice"))
	bob      = planet.BytesToAddress([]byte("bob"))
	proposer = planet.BytesToAddress([]byte("proposer"))

	gold = planet.MustNewCurrency("GOLD", 2, []planet.Address{minter})
	fuel = planet.MustNewCurrency("FUEL", 0, []planet.Address{minter})
)

func newTestWorld(t *testing.T) *state.World {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.NewStater(db).NewWorld(planet.Bytes32{})
}

// fund credits value to addr outside of any evaluation.
func fund(t *testing.T, w *state.World, addr planet.Address, value planet.FungibleAssetValue) *state.World {
	ctx := xenv.New(minter, proposer, 1, planet.CurrentProtocolVersion, planet.Bytes32{}, 0)
	next, err := ledger.Mint(ctx, w, addr, value)
	require.NoError(t, err)
	return next
}

func TestEvaluateSequential(t *testing.T) {
	w := newTestWorld(t)
	rt := runtime.New(proposer, 1, planet.CurrentProtocolVersion)

	receipts, out, err := rt.Evaluate(w, []runtime.ActionInput{
		{
			Action: &action.Mint{Recipient: alice, Value: gold.ValueInt64(100)},
			Signer: minter,
		},
		{
			// depends on the side effects of the mint before it
			Action: &action.Transfer{Recipient: bob, Value: gold.ValueInt64(30)},
			Signer: alice,
		},
	})
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	for _, r := range receipts {
		assert.False(t, r.Faulted)
		assert.NoError(t, r.Err)
	}

	balA, _ := out.Balance(alice, gold.Hash())
	balB, _ := out.Balance(bob, gold.Hash())
	supply, _ := out.TotalSupply(gold.Hash())
	assert.Equal(t, big.NewInt(70), balA)
	assert.Equal(t, big.NewInt(30), balB)
	assert.Equal(t, big.NewInt(100), supply)

	pairs := out.TotalUpdatedFungibleAssets()
	assert.Len(t, pairs, 2)
}

func TestEvaluateOrderMatters(t *testing.T) {
	w := newTestWorld(t)
	rt := runtime.New(proposer, 1, planet.CurrentProtocolVersion)

	// the transfer runs before the mint that would have funded it
	receipts, out, err := rt.Evaluate(w, []runtime.ActionInput{
		{
			Action: &action.Transfer{Recipient: bob, Value: gold.ValueInt64(30)},
			Signer: alice,
		},
		{
			Action: &action.Mint{Recipient: alice, Value: gold.ValueInt64(100)},
			Signer: minter,
		},
	})
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.True(t, receipts[0].Faulted)
	assert.ErrorIs(t, receipts[0].Err, runtime.ErrActionFault)
	assert.ErrorIs(t, receipts[0].Err, ledger.ErrInsufficientBalance,
		"the fault keeps its cause in the chain")
	assert.False(t, receipts[1].Faulted)

	balA, _ := out.Balance(alice, gold.Hash())
	balB, _ := out.Balance(bob, gold.Hash())
	assert.Equal(t, big.NewInt(100), balA, "the faulted transfer left no writes")
	assert.Equal(t, 0, balB.Sign())
}

func TestEvaluateFeeLifecycle(t *testing.T) {
	w := newTestWorld(t)
	w = fund(t, w, alice, fuel.ValueInt64(5000))
	w = fund(t, w, alice, gold.ValueInt64(100))

	rt := runtime.New(proposer, 1, planet.CurrentProtocolVersion)
	price := fuel.ValueInt64(1)

	receipts, out, err := rt.Evaluate(w, []runtime.ActionInput{{
		Action:   &action.Transfer{Recipient: bob, Value: gold.ValueInt64(30)},
		Signer:   alice,
		GasLimit: 1000,
		GasPrice: &price,
	}})
	require.NoError(t, err)
	require.Len(t, receipts, 1)

	r := receipts[0]
	assert.False(t, r.Faulted)
	assert.Equal(t, uint64(100), r.GasUsed)
	assert.Equal(t, alice, r.Payer)
	require.NotNil(t, r.Paid)
	assert.True(t, r.Paid.Equal(fuel.ValueInt64(100)))

	// only the consumed gas was paid; the rest was refunded
	balFuel, _ := out.Balance(alice, fuel.Hash())
	assert.Equal(t, big.NewInt(4900), balFuel)
	reward, _ := out.Balance(proposer, fuel.Hash())
	assert.Equal(t, big.NewInt(100), reward)
	escrow, _ := out.Balance(planet.FeeEscrowAddress, fuel.Hash())
	assert.Equal(t, 0, escrow.Sign(), "the escrow is drained on settlement")

	balA, _ := out.Balance(alice, gold.Hash())
	balB, _ := out.Balance(bob, gold.Hash())
	assert.Equal(t, big.NewInt(70), balA)
	assert.Equal(t, big.NewInt(30), balB)
}

func TestEvaluateFaultStillChargesFees(t *testing.T) {
	w := newTestWorld(t)
	w = fund(t, w, alice, fuel.ValueInt64(5000))

	rt := runtime.New(proposer, 1, planet.CurrentProtocolVersion)
	price := fuel.ValueInt64(1)

	// alice holds no gold at all
	receipts, out, err := rt.Evaluate(w, []runtime.ActionInput{{
		Action:   &action.Transfer{Recipient: bob, Value: gold.ValueInt64(30)},
		Signer:   alice,
		GasLimit: 1000,
		GasPrice: &price,
	}})
	require.NoError(t, err)
	require.Len(t, receipts, 1)

	r := receipts[0]
	assert.True(t, r.Faulted)
	assert.ErrorIs(t, r.Err, runtime.ErrActionFault)
	assert.ErrorIs(t, r.Err, ledger.ErrInsufficientBalance)
	assert.Equal(t, uint64(100), r.GasUsed)

	balFuel, _ := out.Balance(alice, fuel.Hash())
	assert.Equal(t, big.NewInt(4900), balFuel, "fees are charged even on fault")
	reward, _ := out.Balance(proposer, fuel.Hash())
	assert.Equal(t, big.NewInt(100), reward)

	balB, _ := out.Balance(bob, gold.Hash())
	assert.Equal(t, 0, balB.Sign(), "the faulted transfer left no writes")
}

func TestEvaluateMortgageFailure(t *testing.T) {
	w := newTestWorld(t)
	rt := runtime.New(proposer, 1, planet.CurrentProtocolVersion)
	price := fuel.ValueInt64(1)

	// alice cannot cover the mortgage at all
	receipts, out, err := rt.Evaluate(w, []runtime.ActionInput{{
		Action:   &action.Mint{Recipient: alice, Value: gold.ValueInt64(1)},
		Signer:   alice,
		GasLimit: 1000,
		GasPrice: &price,
	}})
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.Nil(t, receipts)
	assert.Nil(t, out)
}

func TestEvaluateLegacyNegativeTransfer(t *testing.T) {
	w := newTestWorld(t)
	rt := runtime.New(proposer, 1, planet.ProtocolVersionLegacy)

	receipts, out, err := rt.Evaluate(w, []runtime.ActionInput{{
		Action: &action.Transfer{Recipient: bob, Value: gold.ValueInt64(30)},
		Signer: alice,
	}})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.False(t, receipts[0].Faulted, "version 0 replays allow overdrafts")

	balA, _ := out.Balance(alice, gold.Hash())
	balB, _ := out.Balance(bob, gold.Hash())
	assert.Equal(t, big.NewInt(-30), balA)
	assert.Equal(t, big.NewInt(30), balB)
}
