// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
	"github.com/xiaoxianBoy/libplanet/xenv"
)

var (
	testMinter = planet.BytesToAddress([]byte("minter"))
	testGold   = planet.MustNewCurrency("GOLD", 2, []planet.Address{testMinter})
)

// fakeAction is a host-defined action outside the builtin vocabulary.
type fakeAction struct{}

func (fakeAction) LoadPlainValue(rlp.RawValue) error { return nil }
func (fakeAction) PlainValue() (rlp.RawValue, error) { return rlp.EncodeToBytes(uint8(0)) }
func (fakeAction) Execute(*xenv.Context, *state.World) (*state.World, error) {
	return nil, nil
}

func TestTypeID(t *testing.T) {
	tests := []struct {
		action Action
		id     uint8
	}{
		{&Mint{}, TypeIDMint},
		{&Transfer{}, TypeIDTransfer},
		{&Initialize{}, TypeIDInitialize},
	}
	for _, tt := range tests {
		id, err := TypeID(tt.action)
		require.NoError(t, err)
		assert.Equal(t, tt.id, id)
		assert.True(t, IsSystemAction(tt.action))
	}

	_, err := TypeID(fakeAction{})
	assert.ErrorIs(t, err, ErrUnknownActionType)
	assert.False(t, IsSystemAction(fakeAction{}))
}

func TestSerializeRoundTrip(t *testing.T) {
	recipient := planet.BytesToAddress([]byte("bob"))
	var pk planet.PublicKey
	pk[0] = 0x02
	pk[32] = 7

	actions := []Action{
		&Mint{Recipient: recipient, Value: testGold.ValueInt64(100)},
		&Transfer{Recipient: recipient, Value: testGold.ValueInt64(30)},
		&Initialize{
			Validators: []*state.Validator{{PublicKey: pk, Power: big.NewInt(10)}},
			States:     []AccountState{{Address: recipient, Data: []byte("seed")}},
		},
	}
	for _, a := range actions {
		data, err := Serialize(a)
		require.NoError(t, err)

		got, err := Deserialize(data)
		require.NoError(t, err)
		assert.Equal(t, a, got, "%T", a)
	}
}

func TestSerializeUnknownAction(t *testing.T) {
	_, err := Serialize(fakeAction{})
	assert.ErrorIs(t, err, ErrUnknownActionType)
}

func TestDeserializeMalformed(t *testing.T) {
	mustEnc := func(v interface{}) rlp.RawValue {
		data, err := rlp.EncodeToBytes(v)
		require.NoError(t, err)
		return data
	}
	values, err := (&Mint{Recipient: planet.BytesToAddress([]byte("bob")), Value: testGold.ValueInt64(1)}).PlainValue()
	require.NoError(t, err)

	encode := func(entries []wireEntry) []byte {
		data, err := rlp.EncodeToBytes(entries)
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xff, 0x00}},
		{"missing type_id", encode([]wireEntry{{keyValues, values}})},
		{"missing values", encode([]wireEntry{{keyTypeID, mustEnc(TypeIDMint)}})},
		{"duplicate type_id", encode([]wireEntry{
			{keyTypeID, mustEnc(TypeIDMint)},
			{keyTypeID, mustEnc(TypeIDMint)},
			{keyValues, values},
		})},
		{"unknown key", encode([]wireEntry{
			{keyTypeID, mustEnc(TypeIDMint)},
			{keyValues, values},
			{"extra", mustEnc(uint8(1))},
		})},
		{"unknown type_id", encode([]wireEntry{
			{keyTypeID, mustEnc(uint8(9))},
			{keyValues, values},
		})},
		{"values of the wrong shape", encode([]wireEntry{
			{keyTypeID, mustEnc(TypeIDMint)},
			{keyValues, mustEnc(uint8(1))},
		})},
	}
	for _, tt := range tests {
		_, err := Deserialize(tt.data)
		assert.ErrorIs(t, err, ErrMalformedPayload, tt.name)
	}
}
