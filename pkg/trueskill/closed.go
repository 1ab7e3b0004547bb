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
	"fmt"
	"math"
)

// TwoPlayer rates a match between two players without building a graph.
// It must agree with the Engine on the same match.
func TwoPlayer(winner, loser Belief, config Config) (Belief, Belief, error) {
	ratings, err := TwoTeams(
		Team{"winner": winner},
		Team{"loser": loser},
		config,
	)
	if err != nil {
		return Belief{}, Belief{}, err
	}

	return ratings["winner"], ratings["loser"], nil
}

// TwoTeams rates a match between two teams without building a graph. It
// must agree with the Engine on the same match.
func TwoTeams(winners, losers Team, config Config) (Ratings, error) {
	if err := checkTeams([]Team{winners, losers}); err != nil {
		return nil, err
	}

	type player struct {
		mu, variance float64
	}

	// Inflate every prior with the dynamics before the match.
	players := make(map[string]player, len(winners)+len(losers))
	var winning, losing, c2 float64
	for i, team := range []Team{winners, losers} {
		for id, prior := range team {
			mu, sigma, err := prior.Params()
			if err != nil {
				return nil, err
			}

			p := player{mu: mu, variance: sigma*sigma + config.Dynamics*config.Dynamics}
			players[id] = p

			if i == 0 {
				winning += p.mu
			} else {
				losing += p.mu
			}
			c2 += p.variance + config.Beta*config.Beta
		}
	}

	c := math.Sqrt(c2)
	t := (winning - losing) / c
	v, w := V(t), W(t)
	if math.IsNaN(v) || math.IsInf(v, 0) || !(w < 1) {
		return nil, fmt.Errorf("corrections v=%g w=%g at %g: %w", v, w, t, ErrNumerical)
	}

	ratings := make(Ratings, len(players))
	for i, team := range []Team{winners, losers} {
		sign := 1.0
		if i == 1 {
			sign = -1
		}

		for id := range team {
			p := players[id]
			mu := p.mu + sign*p.variance/c*v
			variance := p.variance * (1 - w*p.variance/c2)

			rating, err := NewBelief(mu, math.Sqrt(variance))
			if err != nil {
				return nil, err
			}
			ratings[id] = rating
		}
	}

	return ratings, nil
}
