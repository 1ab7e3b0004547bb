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

import (
	"errors"
	"fmt"
	"math"
)

// ErrNumerical is returned when a computation would need a non-positive
// variance or precision, or would produce a non-finite result.
var ErrNumerical = errors.New("numerical error")

// Belief is a univariate Gaussian stored in natural parameters: the
// precision Pi = 1/sigma² and the precision-weighted mean Tau = mu/sigma².
//
// The zero Belief has no information (infinite variance) and is the
// identity of Mul and Div.
type Belief struct {
	Pi  float64
	Tau float64
}

// NewBelief returns the Belief with the given mean and standard deviation.
func NewBelief(mu, sigma float64) (Belief, error) {
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return Belief{}, fmt.Errorf("belief N(%g, %g²): %w", mu, sigma, ErrNumerical)
	}

	pi := 1 / (sigma * sigma)
	return Belief{Pi: pi, Tau: pi * mu}, nil
}

// Mul multiplies two Gaussian densities, which adds their natural parameters.
func (b Belief) Mul(other Belief) Belief {
	return Belief{Pi: b.Pi + other.Pi, Tau: b.Tau + other.Tau}
}

// Div divides two Gaussian densities, which subtracts their natural parameters.
func (b Belief) Div(other Belief) Belief {
	return Belief{Pi: b.Pi - other.Pi, Tau: b.Tau - other.Tau}
}

// Mu returns the mean of the Belief. The mean is undefined unless the
// precision is strictly positive.
func (b Belief) Mu() (float64, error) {
	if !(b.Pi > 0) {
		return 0, fmt.Errorf("mean of belief with precision %g: %w", b.Pi, ErrNumerical)
	}

	return b.Tau / b.Pi, nil
}

// Sigma returns the standard deviation of the Belief. It is +Inf for a
// Belief with zero precision.
func (b Belief) Sigma() (float64, error) {
	switch {
	case b.Pi == 0:
		return math.Inf(+1), nil
	case b.Pi > 0:
		return 1 / math.Sqrt(b.Pi), nil
	default:
		return 0, fmt.Errorf("deviation of belief with precision %g: %w", b.Pi, ErrNumerical)
	}
}

// Params returns both the mean and the standard deviation of the Belief.
func (b Belief) Params() (mu, sigma float64, err error) {
	if mu, err = b.Mu(); err != nil {
		return 0, 0, err
	}

	sigma, err = b.Sigma()
	return mu, sigma, err
}

// Equal compares the natural parameters of two Beliefs.
func (b Belief) Equal(other Belief) bool {
	return b.Pi == other.Pi && b.Tau == other.Tau
}

// ApproxEqual compares the natural parameters of two Beliefs up to tol.
func (b Belief) ApproxEqual(other Belief, tol float64) bool {
	return math.Abs(b.Pi-other.Pi) <= tol && math.Abs(b.Tau-other.Tau) <= tol
}

func (b Belief) String() string {
	mu, sigma, err := b.Params()
	if err != nil {
		return fmt.Sprintf("Belief(pi=%g, tau=%g)", b.Pi, b.Tau)
	}

	return fmt.Sprintf("N(%.4f, %.4f²)", mu, sigma)
}

// check verifies that b is usable as a message or marginal.
func (b Belief) check(what string) error {
	if math.IsNaN(b.Pi) || math.IsNaN(b.Tau) || math.IsInf(b.Pi, 0) || math.IsInf(b.Tau, 0) {
		return fmt.Errorf("%s: non-finite belief (pi=%g, tau=%g): %w", what, b.Pi, b.Tau, ErrNumerical)
	}

	if b.Pi < 0 {
		return fmt.Errorf("%s: negative precision %g: %w", what, b.Pi, ErrNumerical)
	}

	return nil
}

// delta measures how far b moved to other, used as the convergence metric
// of the relaxation loop. An infinite change in precision carries no
// usable information and counts as zero.
func delta(b, other Belief) float64 {
	piDelta := math.Abs(b.Pi - other.Pi)
	if math.IsInf(piDelta, 0) {
		piDelta = 0
	}

	return math.Max(math.Abs(b.Tau-other.Tau), math.Sqrt(piDelta))
}
