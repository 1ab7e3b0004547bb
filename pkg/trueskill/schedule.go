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

	"github.com/sirupsen/logrus"
)

// Report describes how the relaxation loop of a run went.
type Report struct {
	Sweeps    int     // number of sweeps over the team differences
	Delta     float64 // largest marginal change during the last sweep
	Converged bool    // whether Delta reached the configured threshold
}

// Run passes the messages of the graph in the fixed TrueSkill schedule.
// A graph can only be run once.
func (g *Graph) Run() (Report, error) {
	var report Report
	if g.ran {
		return report, errors.New("factor graph has already been run")
	}
	g.ran = true

	// Seed the skills with the priors and push them down to the teams.
	for _, list := range [][]FactorID{g.priors, g.performances, g.teams} {
		for _, f := range list {
			if _, err := g.down(f); err != nil {
				return report, err
			}
		}
	}

	if len(g.diffs) == 1 {
		// Two teams: the single difference is solved in closed form.
		if _, err := g.down(g.diffs[0]); err != nil {
			return report, err
		}
		d, err := g.up(g.truncates[0], 0)
		if err != nil {
			return report, err
		}

		report = Report{Sweeps: 1, Delta: d, Converged: true}
	} else {
		var err error
		if report, err = g.relax(); err != nil {
			return report, err
		}
	}

	// Push the outcome back to the extreme teams.
	if _, err := g.up(g.diffs[0], 0); err != nil {
		return report, err
	}
	if _, err := g.up(g.diffs[len(g.diffs)-1], 1); err != nil {
		return report, err
	}

	// Push the team performances back to the players' performances.
	for _, f := range g.teams {
		for i := range g.factors[f].coeffs {
			if _, err := g.up(f, i); err != nil {
				return report, err
			}
		}
	}

	// And the performances back to the skills.
	for _, f := range g.performances {
		if _, err := g.up(f, 0); err != nil {
			return report, err
		}
	}

	return report, nil
}

// relax sweeps over the adjacent team differences from left to right until
// no truncation moves its marginal by more than the configured delta. The
// differences share team variables, so for more than two teams each of
// them depends on the others.
func (g *Graph) relax() (Report, error) {
	var report Report

	for report.Sweeps < g.config.MaxIterations {
		report.Sweeps++
		report.Delta = 0

		for i, diff := range g.diffs {
			if _, err := g.down(diff); err != nil {
				return report, err
			}

			d, err := g.up(g.truncates[i], 0)
			if err != nil {
				return report, err
			}
			report.Delta = math.Max(report.Delta, d)

			if _, err := g.up(diff, 0); err != nil {
				return report, err
			}
			if _, err := g.up(diff, 1); err != nil {
				return report, err
			}
		}

		logrus.WithFields(logrus.Fields{
			"sweep": report.Sweeps,
			"delta": report.Delta,
		}).Trace("Relaxed team differences")

		if report.Delta <= g.config.Delta {
			report.Converged = true
			return report, nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"sweeps": report.Sweeps,
		"delta":  report.Delta,
	}).Warn("Team differences did not converge")

	return report, nil
}

// Posteriors returns the skill marginal of every player in the graph.
func (g *Graph) Posteriors() (Ratings, error) {
	ratings := make(Ratings, len(g.skills))
	for _, skill := range g.skills {
		v := &g.vars[skill]
		if !(v.marginal.Pi > 0) {
			return nil, fmt.Errorf("posterior of %s has precision %g: %w", v, v.marginal.Pi, ErrNumerical)
		}
		if err := v.marginal.check("posterior of " + v.name); err != nil {
			return nil, err
		}

		ratings[v.name] = v.marginal
	}

	return ratings, nil
}
