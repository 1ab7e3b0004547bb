// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// EloDifference converts the probability of one side winning into the
// elo difference which predicts that probability.
func EloDifference(p float64) float64 {
	switch {
	case p <= 0, p >= 1:
		return 0

	default:
		return -400 * math.Log10(1/p-1)
	}
}

// phi is the cumulative distribution of the standard normal.
func phi(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// phiInv is the quantile function of the standard normal.
func phiInv(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
