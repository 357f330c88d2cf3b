// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package planet

import (
	"bytes"
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

const (
	// PublicKeyLength length of compressed secp256k1 public key in bytes.
	PublicKeyLength = 33
)

// PublicKey is a compressed secp256k1 public key, used as validator identity.
type PublicKey [PublicKeyLength]byte

// ParsePublicKey parses and validates a compressed public key.
func ParsePublicKey(b []byte) (PublicKey, error) {
	if len(b) != PublicKeyLength {
		return PublicKey{}, errors.Errorf("invalid public key length %d", len(b))
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return PublicKey{}, errors.Wrap(err, "parse public key")
	}
	var pk PublicKey
	copy(pk[:], b)
	return pk, nil
}

// Bytes returns byte slice form of public key.
func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

// Address derives the account address controlled by this key.
func (pk PublicKey) Address() Address {
	h := Blake2b(pk[:])
	return BytesToAddress(h[12:])
}

// Compare establishes the total order over public keys.
func (pk PublicKey) Compare(o PublicKey) int {
	return bytes.Compare(pk[:], o[:])
}

// String implements stringer.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}
