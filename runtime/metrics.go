// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/xiaoxianBoy/libplanet/metrics"

var (
	metricActionsEvaluated = metrics.LazyLoadCounter("actions_evaluated_count")
	metricActionsFaulted   = metrics.LazyLoadCounter("actions_faulted_count")
)
