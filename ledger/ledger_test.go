// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaoxianBoy/libplanet/ledger"
	"github.com/xiaoxianBoy/libplanet/lvldb"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

var (
	minter   = planet.BytesToAddress([]byte("minter"))
	alice    = planet.BytesToAddress([]byte("alice"))
	bob      = planet.BytesToAddress([]byte("bob"))
	proposer = planet.BytesToAddress([]byte("proposer"))
)

func newTestWorld(t *testing.T) *state.World {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.NewStater(db).NewWorld(planet.Bytes32{})
}

func ctxFor(signer planet.Address) *xenv.Context {
	return xenv.New(signer, proposer, 1, planet.CurrentProtocolVersion, planet.Bytes32{}, 0)
}

// checkSupplyInvariant verifies that the recorded total supply equals the
// sum of the given holders' balances.
func checkSupplyInvariant(t *testing.T, w *state.World, currency planet.Currency, holders ...planet.Address) {
	sum := new(big.Int)
	for _, h := range holders {
		bal, err := w.Balance(h, currency.Hash())
		require.NoError(t, err)
		sum.Add(sum, bal)
	}
	supply, err := w.TotalSupply(currency.Hash())
	require.NoError(t, err)
	assert.Equal(t, sum, supply)
}

func TestMintBurn(t *testing.T) {
	w := newTestWorld(t)
	gold := planet.MustNewCurrency("GOLD", 2, []planet.Address{minter})

	w1, err := ledger.Mint(ctxFor(minter), w, alice, gold.ValueInt64(100))
	require.NoError(t, err)

	bal, _ := w1.Balance(alice, gold.Hash())
	assert.Equal(t, big.NewInt(100), bal)
	checkSupplyInvariant(t, w1, gold, alice)

	w2, err := ledger.Burn(ctxFor(minter), w1, alice, gold.ValueInt64(40))
	require.NoError(t, err)

	bal, _ = w2.Balance(alice, gold.Hash())
	assert.Equal(t, big.NewInt(60), bal)
	checkSupplyInvariant(t, w2, gold, alice)

	// burning more than held fails and leaves the world unused
	_, err = ledger.Burn(ctxFor(minter), w2, alice, gold.ValueInt64(61))
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	_, err = ledger.Mint(ctxFor(minter), w2, alice, gold.ValueInt64(0))
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestMintAuthority(t *testing.T) {
	w := newTestWorld(t)
	gold := planet.MustNewCurrency("GOLD", 2, []planet.Address{minter})

	_, err := ledger.Mint(ctxFor(alice), w, alice, gold.ValueInt64(1))
	assert.ErrorIs(t, err, ledger.ErrPermissionDenied)

	_, err = ledger.Burn(ctxFor(alice), w, alice, gold.ValueInt64(1))
	assert.ErrorIs(t, err, ledger.ErrPermissionDenied)

	// a block proposer mints during block-level execution
	blockCtx := xenv.New(proposer, proposer, 0, planet.CurrentProtocolVersion, planet.Bytes32{}, 0)
	blockCtx.BlockAction = true
	w1, err := ledger.Mint(blockCtx, w, alice, gold.ValueInt64(5))
	require.NoError(t, err)
	bal, _ := w1.Balance(alice, gold.Hash())
	assert.Equal(t, big.NewInt(5), bal)

	// but not outside of it
	_, err = ledger.Mint(ctxFor(proposer), w, alice, gold.ValueInt64(5))
	assert.ErrorIs(t, err, ledger.ErrPermissionDenied)
}

func TestMintSupplyCap(t *testing.T) {
	w := newTestWorld(t)
	gold, err := planet.NewCappedCurrency("GOLD", 2, []planet.Address{minter}, big.NewInt(100))
	require.NoError(t, err)

	w1, err := ledger.Mint(ctxFor(minter), w, alice, gold.ValueInt64(60))
	require.NoError(t, err)

	_, err = ledger.Mint(ctxFor(minter), w1, alice, gold.ValueInt64(41))
	assert.ErrorIs(t, err, ledger.ErrSupplyOverflow)

	// the failed mint left nothing behind
	supply, _ := w1.TotalSupply(gold.Hash())
	assert.Equal(t, big.NewInt(60), supply)

	// exactly reaching the cap is allowed
	w2, err := ledger.Mint(ctxFor(minter), w1, alice, gold.ValueInt64(40))
	require.NoError(t, err)
	supply, _ = w2.TotalSupply(gold.Hash())
	assert.Equal(t, big.NewInt(100), supply)
}

func TestTransfer(t *testing.T) {
	w := newTestWorld(t)
	gold := planet.MustNewCurrency("GOLD", 2, []planet.Address{minter})

	w1, err := ledger.Mint(ctxFor(minter), w, alice, gold.ValueInt64(100))
	require.NoError(t, err)

	w2, err := ledger.Transfer(ctxFor(alice), w1, alice, bob, gold.ValueInt64(30), false)
	require.NoError(t, err)

	balA, _ := w2.Balance(alice, gold.Hash())
	balB, _ := w2.Balance(bob, gold.Hash())
	assert.Equal(t, big.NewInt(70), balA)
	assert.Equal(t, big.NewInt(30), balB)
	checkSupplyInvariant(t, w2, gold, alice, bob)

	// overdrafts fail; the input world stays untouched
	_, err = ledger.Transfer(ctxFor(alice), w2, alice, bob, gold.ValueInt64(71), false)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	balA, _ = w2.Balance(alice, gold.Hash())
	assert.Equal(t, big.NewInt(70), balA)

	// the legacy behavior drives the balance negative instead
	w3, err := ledger.Transfer(ctxFor(alice), w2, alice, bob, gold.ValueInt64(71), true)
	require.NoError(t, err)
	balA, _ = w3.Balance(alice, gold.Hash())
	balB, _ = w3.Balance(bob, gold.Hash())
	assert.Equal(t, big.NewInt(-1), balA)
	assert.Equal(t, big.NewInt(101), balB)
	checkSupplyInvariant(t, w3, gold, alice, bob)
}

func TestTransferSelf(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	stater := state.NewStater(db)
	gold := planet.MustNewCurrency("GOLD", 2, []planet.Address{minter})

	w, err := ledger.Mint(ctxFor(minter), stater.NewWorld(planet.Bytes32{}), alice, gold.ValueInt64(100))
	require.NoError(t, err)
	stage, err := w.Stage()
	require.NoError(t, err)
	root, err := stage.Commit()
	require.NoError(t, err)

	w2, err := ledger.Transfer(ctxFor(alice), stater.NewWorld(root), alice, alice, gold.ValueInt64(30), false)
	require.NoError(t, err)
	bal, _ := w2.Balance(alice, gold.Hash())
	assert.Equal(t, big.NewInt(100), bal, "self transfer is a no-op on the balance")
	assert.Empty(t, w2.TotalUpdatedFungibleAssets())
}
