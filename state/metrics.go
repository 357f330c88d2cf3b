// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/xiaoxianBoy/libplanet/metrics"

var metricAccountLoaded = metrics.LazyLoadCounter("account_trie_load_count")
