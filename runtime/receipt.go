// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/xiaoxianBoy/libplanet/planet"

// Receipt represents the result of one action application.
type Receipt struct {
	// whether the action faulted; fees are charged either way
	Faulted bool
	// the captured fault, wrapping ErrActionFault
	Err error
	// gas consumed by the action
	GasUsed uint64
	// who paid the fee; zero when the action carried no fee policy
	Payer planet.Address
	// fee actually paid and rewarded to the proposer
	Paid *planet.FungibleAssetValue
}
