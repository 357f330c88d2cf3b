// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package planet

// Protocol versions gate behavior changes that are part of already committed
// chain history. Replaying an old block must reproduce the behavior of the
// version it was committed under, bugs included.
const (
	// ProtocolVersionLegacy is the original protocol. Transfers under this
	// version did not check the sender balance, so balances could go
	// negative. That behavior is kept byte-for-byte for replay.
	ProtocolVersionLegacy = 0

	// ProtocolVersionTransferFix introduced the sender balance check
	// on transfers.
	ProtocolVersionTransferFix = 1

	// CurrentProtocolVersion is the version newly appended actions run under.
	CurrentProtocolVersion = ProtocolVersionTransferFix
)

// AllowsNegativeBalance returns whether transfers under the given protocol
// version may drive the sender balance below zero.
func AllowsNegativeBalance(protocolVersion int) bool {
	return protocolVersion < ProtocolVersionTransferFix
}
