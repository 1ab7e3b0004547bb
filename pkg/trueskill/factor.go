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

// FactorID is the handle of a factor node inside a Graph.
type FactorID int

// FactorKind is the kind of a factor node. The set of kinds is closed.
type FactorKind uint8

const (
	// PriorFactor feeds a skill variable with the stored rating of its
	// player, inflated by the dynamics deviation.
	PriorFactor FactorKind = iota

	// PerformanceFactor links a skill variable to a performance variable:
	// performance = skill + N(0, beta²).
	PerformanceFactor

	// SumFactor links a variable to a weighted sum of other variables:
	// sum = Σ coeffs[i] * terms[i].
	SumFactor

	// TruncateFactor encodes the observation that a difference variable is
	// strictly positive.
	TruncateFactor
)

func (kind FactorKind) String() string {
	switch kind {
	case PriorFactor:
		return "prior"
	case PerformanceFactor:
		return "performance"
	case SumFactor:
		return "sum"
	case TruncateFactor:
		return "truncate"
	default:
		return "unknown"
	}
}

// factor is a node of the factor graph. Only the fields of its kind are set.
//
//	prior:       vars = [skill]                  prior, dynamics
//	performance: vars = [skill, performance]     beta
//	sum:         vars = [sum, terms...]          coeffs (one per term)
//	truncate:    vars = [difference]
type factor struct {
	kind FactorKind
	vars []VarID

	prior    Belief
	dynamics float64
	beta     float64
	coeffs   []float64
}

// down sends the messages of factor id towards the match outcome.
func (g *Graph) down(id FactorID) (float64, error) {
	f := &g.factors[id]
	switch f.kind {
	case PriorFactor:
		return g.priorDown(id)
	case PerformanceFactor:
		return g.performanceUpdate(id, f.vars[0], f.vars[1])
	case SumFactor:
		terms := f.vars[1:]
		messages := make([]Belief, len(terms))
		for i, term := range terms {
			messages[i] = g.vars[term].messages[id]
		}
		return g.sumUpdate(id, f.vars[0], terms, messages, f.coeffs)
	case TruncateFactor:
		return 0, nil
	default:
		return 0, fmt.Errorf("down: unknown factor kind %d", f.kind)
	}
}

// up sends the messages of factor id back towards the skill variables. idx
// selects the term a sum factor solves for and is ignored by other kinds.
func (g *Graph) up(id FactorID, idx int) (float64, error) {
	f := &g.factors[id]
	switch f.kind {
	case PriorFactor:
		return 0, nil
	case PerformanceFactor:
		return g.performanceUpdate(id, f.vars[1], f.vars[0])
	case SumFactor:
		return g.sumUp(id, idx)
	case TruncateFactor:
		return g.truncateUp(id)
	default:
		return 0, fmt.Errorf("up: unknown factor kind %d", f.kind)
	}
}

func (g *Graph) priorDown(id FactorID) (float64, error) {
	f := &g.factors[id]

	sigma, err := f.prior.Sigma()
	if err != nil {
		return 0, err
	}
	mu, err := f.prior.Mu()
	if err != nil {
		return 0, err
	}

	inflated, err := NewBelief(mu, math.Sqrt(sigma*sigma+f.dynamics*f.dynamics))
	if err != nil {
		return 0, fmt.Errorf("prior factor: %w", err)
	}

	return g.updateMarginal(f.vars[0], id, inflated)
}

// performanceUpdate adds the performance noise to the cavity of from and
// sends the result to to.
func (g *Graph) performanceUpdate(id FactorID, from, to VarID) (float64, error) {
	beta := g.factors[id].beta

	msg := g.cavity(from, id)
	scale := 1 + beta*beta*msg.Pi
	if !(scale > 0) {
		return 0, fmt.Errorf("performance factor: cavity precision %g: %w", msg.Pi, ErrNumerical)
	}

	a := 1 / scale
	return g.updateMessage(to, id, Belief{Pi: a * msg.Pi, Tau: a * msg.Tau})
}

// sumUpdate sends target the distribution of Σ coeffs[i] * vars[i], where
// the belief in vars[i] excludes messages[i].
func (g *Graph) sumUpdate(id FactorID, target VarID, vars []VarID, messages []Belief, coeffs []float64) (float64, error) {
	var variance, mean float64
	for i, v := range vars {
		cavity := g.vars[v].marginal.Div(messages[i])
		if !(cavity.Pi > 0) {
			return 0, fmt.Errorf("sum factor: cavity precision %g of %s: %w", cavity.Pi, &g.vars[v], ErrNumerical)
		}

		variance += coeffs[i] * coeffs[i] / cavity.Pi
		mean += coeffs[i] * cavity.Tau / cavity.Pi
	}

	if !(variance > 0) || math.IsInf(variance, 0) {
		return 0, fmt.Errorf("sum factor: combined variance %g: %w", variance, ErrNumerical)
	}

	pi := 1 / variance
	return g.updateMessage(target, id, Belief{Pi: pi, Tau: pi * mean})
}

// sumUp solves the relation of sum factor id for its idx-th term, given the
// sum variable and the remaining terms.
func (g *Graph) sumUp(id FactorID, idx int) (float64, error) {
	f := &g.factors[id]
	sum, terms := f.vars[0], f.vars[1:]

	if idx < 0 || idx >= len(terms) {
		return 0, fmt.Errorf("sum factor: term %d out of range [0, %d)", idx, len(terms))
	}
	if f.coeffs[idx] == 0 {
		return 0, fmt.Errorf("sum factor: zero coefficient for term %d: %w", idx, ErrNumerical)
	}

	vars := make([]VarID, 0, len(terms))
	coeffs := make([]float64, 0, len(terms))
	for i, term := range terms {
		if i == idx {
			continue
		}
		vars = append(vars, term)
		coeffs = append(coeffs, -f.coeffs[i]/f.coeffs[idx])
	}
	vars = append(vars, sum)
	coeffs = append(coeffs, 1/f.coeffs[idx])

	messages := make([]Belief, len(vars))
	for i, v := range vars {
		messages[i] = g.vars[v].messages[id]
	}

	return g.sumUpdate(id, terms[idx], vars, messages, coeffs)
}

// truncateUp replaces the marginal of the difference variable with the
// moment matched approximation of its cavity truncated to (0, +Inf).
func (g *Graph) truncateUp(id FactorID) (float64, error) {
	diff := g.factors[id].vars[0]

	cavity := g.cavity(diff, id)
	c, d := cavity.Pi, cavity.Tau
	if !(c > 0) {
		return 0, fmt.Errorf("truncate factor: cavity precision %g: %w", c, ErrNumerical)
	}

	sqrtC := math.Sqrt(c)
	t := d / sqrtC
	v, w := V(t), W(t)
	if !(1-w > 0) || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("truncate factor: corrections v=%g w=%g at %g: %w", v, w, t, ErrNumerical)
	}

	marginal := Belief{
		Pi:  c / (1 - w),
		Tau: (d + sqrtC*v) / (1 - w),
	}

	return g.updateMarginal(diff, id, marginal)
}
