// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Type ids of the closed builtin vocabulary. They are part of the wire and
// storage encoding and are never renumbered.
const (
	TypeIDMint       = uint8(0)
	TypeIDTransfer   = uint8(1)
	TypeIDInitialize = uint8(2)
)

const (
	keyTypeID = "type_id"
	keyValues = "values"
)

var (
	// ErrUnknownActionType is returned when serializing an action outside
	// the closed builtin set.
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrMalformedPayload is returned when deserialized data falls
	// outside the closed, versioned vocabulary.
	ErrMalformedPayload = errors.New("malformed payload")
)

// wireEntry is one key of the serialized action dictionary.
type wireEntry struct {
	Key   string
	Value rlp.RawValue
}

// TypeID resolves the type id of a builtin action. The dispatch is an
// exhaustive match over the closed set; anything else is unknown.
func TypeID(a Action) (uint8, error) {
	switch a.(type) {
	case *Mint:
		return TypeIDMint, nil
	case *Transfer:
		return TypeIDTransfer, nil
	case *Initialize:
		return TypeIDInitialize, nil
	default:
		return 0, errors.Wrapf(ErrUnknownActionType, "%T", a)
	}
}

// IsSystemAction reports whether the action belongs to the closed builtin
// set. Host-defined actions bypass the registry and use their own codec.
func IsSystemAction(a Action) bool {
	_, err := TypeID(a)
	return err == nil
}

// Serialize encodes a builtin action as the keyed dictionary
// {type_id, values}. It fails with ErrUnknownActionType for actions
// outside the closed set.
func Serialize(a Action) ([]byte, error) {
	id, err := TypeID(a)
	if err != nil {
		return nil, err
	}
	values, err := a.PlainValue()
	if err != nil {
		return nil, err
	}
	idEnc, err := rlp.EncodeToBytes(id)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes([]wireEntry{
		{keyTypeID, idEnc},
		{keyValues, values},
	})
}

// Deserialize decodes a builtin action from its keyed dictionary form.
// Missing or unknown keys and type ids outside the known set are hard
// failures, never best-effort defaults.
func Deserialize(data []byte) (Action, error) {
	var dict []wireEntry
	if err := rlp.DecodeBytes(data, &dict); err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}

	var idEnc, values rlp.RawValue
	for _, entry := range dict {
		switch entry.Key {
		case keyTypeID:
			if idEnc != nil {
				return nil, errors.Wrap(ErrMalformedPayload, "duplicate type_id")
			}
			idEnc = entry.Value
		case keyValues:
			if values != nil {
				return nil, errors.Wrap(ErrMalformedPayload, "duplicate values")
			}
			values = entry.Value
		default:
			return nil, errors.Wrapf(ErrMalformedPayload, "unknown key %q", entry.Key)
		}
	}
	if idEnc == nil {
		return nil, errors.Wrap(ErrMalformedPayload, "missing type_id")
	}
	if values == nil {
		return nil, errors.Wrap(ErrMalformedPayload, "missing values")
	}

	var id uint8
	if err := rlp.DecodeBytes(idEnc, &id); err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}

	var a Action
	switch id {
	case TypeIDMint:
		a = &Mint{}
	case TypeIDTransfer:
		a = &Transfer{}
	case TypeIDInitialize:
		a = &Initialize{}
	default:
		return nil, errors.Wrapf(ErrMalformedPayload, "type_id %d outside known set", id)
	}
	if err := a.LoadPlainValue(values); err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}
	return a, nil
}
