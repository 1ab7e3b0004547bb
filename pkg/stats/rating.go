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
	"errors"
	"fmt"
	"math"

	"laptudirm.com/x/rater/pkg/trueskill"
)

// ConservativeK is the number of deviations subtracted from a player's mean
// skill for the leaderboard, so that ratings grow as certainty does.
const ConservativeK = 3

// Conservative returns mu - k*sigma for the given skill belief.
func Conservative(skill trueskill.Belief, k float64) (float64, error) {
	mu, sigma, err := skill.Params()
	if err != nil {
		return 0, err
	}

	return mu - k*sigma, nil
}

// Interval returns the mean of the given skill belief along with the lower
// and upper bounds of its central credible interval of the given mass.
func Interval(skill trueskill.Belief, mass float64) (lower float64, mu float64, upper float64, err error) {
	if !(mass > 0 && mass < 1) {
		return 0, 0, 0, fmt.Errorf("interval mass %g not in (0, 1)", mass)
	}

	var sigma float64
	if mu, sigma, err = skill.Params(); err != nil {
		return 0, 0, 0, err
	}

	z := phiInv(0.5 + mass/2)
	return mu - z*sigma, mu, mu + z*sigma, nil
}

// WinProbability returns the probability of the first team performing
// better than the second one, given the skills of their players and the
// performance noise deviation beta.
func WinProbability(a, b []trueskill.Belief, beta float64) (float64, error) {
	delta, variance, err := compare(a, b, beta)
	if err != nil {
		return 0, err
	}

	return phi(delta / math.Sqrt(variance)), nil
}

// Quality returns how evenly matched two teams are, as the likelihood of a
// draw relative to the likelihood of a draw between equal teams. It is 1
// for identical, perfectly known skills and tends to 0 for lopsided games.
func Quality(a, b []trueskill.Belief, beta float64) (float64, error) {
	delta, variance, err := compare(a, b, beta)
	if err != nil {
		return 0, err
	}

	noise := float64(len(a)+len(b)) * beta * beta
	return math.Sqrt(noise/variance) * math.Exp(-delta*delta/(2*variance)), nil
}

// compare returns the mean and the variance of the difference between the
// performances of two teams.
func compare(a, b []trueskill.Belief, beta float64) (delta float64, variance float64, err error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, errors.New("compare: empty team")
	}

	for i, team := range [][]trueskill.Belief{a, b} {
		sign := 1.0
		if i == 1 {
			sign = -1
		}

		for _, skill := range team {
			mu, sigma, err := skill.Params()
			if err != nil {
				return 0, 0, err
			}

			delta += sign * mu
			variance += sigma*sigma + beta*beta
		}
	}

	return delta, variance, nil
}
