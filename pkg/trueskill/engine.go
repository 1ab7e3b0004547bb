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

// Package trueskill implements the TrueSkill rating system as message
// passing on a factor graph of Gaussian beliefs.
//
// Conventions follow Herbrich, Minka and Graepel's paper:
//   - Mu, Sigma: mean and deviation of a player's skill.
//   - Beta: deviation of a performance around the skill.
//   - Dynamics (tau in the paper): deviation added to every skill before a
//     match to model its drift over time.
//   - V, W: additive and multiplicative truncation corrections.
//
// See https://www.microsoft.com/en-us/research/publication/trueskilltm-a-bayesian-skill-rating-system/.
package trueskill

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrConfig is returned for an unusable engine configuration.
var ErrConfig = errors.New("invalid configuration")

// Config holds the parameters of the rating model.
type Config struct {
	// The prior of players who have not been rated yet.
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`

	Beta     float64 `yaml:"beta"`     // performance noise deviation
	Dynamics float64 `yaml:"dynamics"` // skill drift deviation per match

	// The relaxation loop for 3+ teams stops once a sweep moves no
	// difference marginal by more than Delta, or after MaxIterations.
	Delta         float64 `yaml:"delta"`
	MaxIterations int     `yaml:"max-iterations"`
}

// DefaultConfig returns the parameters of the original TrueSkill paper.
func DefaultConfig() Config {
	return Config{
		Mu:            25.0,
		Sigma:         25.0 / 3,
		Beta:          25.0 / 6,
		Dynamics:      25.0 / 300,
		Delta:         0.0001,
		MaxIterations: 100,
	}
}

// Validate checks that every parameter of the configuration is usable.
func (config Config) Validate() error {
	switch {
	case !(config.Sigma > 0):
		return fmt.Errorf("prior sigma %g is not positive: %w", config.Sigma, ErrConfig)
	case !(config.Beta > 0):
		return fmt.Errorf("beta %g is not positive: %w", config.Beta, ErrConfig)
	case !(config.Dynamics >= 0):
		return fmt.Errorf("dynamics %g is negative: %w", config.Dynamics, ErrConfig)
	case !(config.Delta > 0):
		return fmt.Errorf("delta %g is not positive: %w", config.Delta, ErrConfig)
	case config.MaxIterations < 1:
		return fmt.Errorf("max iterations %d is less than 1: %w", config.MaxIterations, ErrConfig)
	}

	return nil
}

// Prior returns the belief in the skill of an unrated player.
func (config Config) Prior() (Belief, error) {
	return NewBelief(config.Mu, config.Sigma)
}

// Engine rates matches with a fixed configuration.
type Engine struct {
	config Config
}

// New returns an Engine using the given configuration.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine{config: config}, nil
}

// Config returns the configuration of the engine.
func (engine *Engine) Config() Config {
	return engine.config
}

// Rate returns the posterior skill of every player of a match, given the
// teams ordered from the best ranked to the worst ranked along with the
// prior skills of their players.
func (engine *Engine) Rate(teams []Team) (Ratings, error) {
	ratings, _, err := engine.Run(teams)
	return ratings, err
}

// Run is Rate which also reports on the relaxation loop.
func (engine *Engine) Run(teams []Team) (Ratings, Report, error) {
	graph, err := NewGraph(teams, engine.config)
	if err != nil {
		return nil, Report{}, err
	}

	report, err := graph.Run()
	if err != nil {
		return nil, report, err
	}

	ratings, err := graph.Posteriors()
	if err != nil {
		return nil, report, err
	}

	logrus.WithFields(logrus.Fields{
		"teams":     len(teams),
		"players":   len(ratings),
		"sweeps":    report.Sweeps,
		"converged": report.Converged,
	}).Debug("Rated match")

	return ratings, report, nil
}
