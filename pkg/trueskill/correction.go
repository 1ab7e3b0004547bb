// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
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

package trueskill

import "gonum.org/v1/gonum/stat/distuv"

// V is the additive correction of the moment matched approximation to a
// standard Gaussian truncated to (0, +Inf), evaluated at x = mu/sigma.
func V(x float64) float64 {
	return distuv.UnitNormal.Prob(x) / distuv.UnitNormal.CDF(x)
}

// W is the multiplicative correction matching V.
func W(x float64) float64 {
	v := V(x)
	return v * (x + v)
}
