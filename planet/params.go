// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package planet

// FeeEscrowAddress holds mortgaged fees between the mortgage and settle
// phases of action evaluation. Its balance is zero in every settled world.
var FeeEscrowAddress = BytesToAddress(Blake2b([]byte("fee-escrow")).Bytes())
