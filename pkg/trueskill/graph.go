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
	"sort"

	"github.com/sirupsen/logrus"
)

// ErrTeams is returned when the teams of a match can't form a graph.
var ErrTeams = errors.New("invalid teams")

// Team maps the identifiers of a team's players to their skill beliefs.
type Team map[string]Belief

// Ratings maps player identifiers to their skill beliefs.
type Ratings map[string]Belief

// Graph is the factor graph of a single match. Variables and factors live
// in two arenas and refer to each other by handle.
type Graph struct {
	vars    []variable
	factors []factor

	skills []VarID // skill variable of every player, in team order

	priors       []FactorID
	performances []FactorID
	teams        []FactorID // one sum factor per team
	diffs        []FactorID // one sum factor per adjacent pair of teams
	truncates    []FactorID // one truncate factor per adjacent pair

	config Config
	ran    bool
}

// NewGraph builds the factor graph for the given teams, ordered from the
// best ranked to the worst ranked. Players inside a team are laid out in
// the lexical order of their identifiers.
func NewGraph(teams []Team, config Config) (*Graph, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := checkTeams(teams); err != nil {
		return nil, err
	}

	g := &Graph{config: config}

	teamVars := make([]VarID, len(teams))
	for t, team := range teams {
		players := make([]string, 0, len(team))
		for player := range team {
			players = append(players, player)
		}
		sort.Strings(players)

		performanceVars := make([]VarID, len(players))
		for i, player := range players {
			skill := g.addVariable(player)
			g.skills = append(g.skills, skill)
			g.priors = append(g.priors, g.addFactor(factor{
				kind:     PriorFactor,
				vars:     []VarID{skill},
				prior:    team[player],
				dynamics: config.Dynamics,
			}))

			performanceVars[i] = g.addVariable("")
			g.performances = append(g.performances, g.addFactor(factor{
				kind: PerformanceFactor,
				vars: []VarID{skill, performanceVars[i]},
				beta: config.Beta,
			}))
		}

		teamVars[t] = g.addVariable("")
		g.teams = append(g.teams, g.addFactor(factor{
			kind:   SumFactor,
			vars:   append([]VarID{teamVars[t]}, performanceVars...),
			coeffs: ones(len(performanceVars)),
		}))
	}

	for t := 0; t < len(teams)-1; t++ {
		diff := g.addVariable("")
		g.diffs = append(g.diffs, g.addFactor(factor{
			kind:   SumFactor,
			vars:   []VarID{diff, teamVars[t], teamVars[t+1]},
			coeffs: []float64{+1, -1},
		}))
		g.truncates = append(g.truncates, g.addFactor(factor{
			kind: TruncateFactor,
			vars: []VarID{diff},
		}))
	}

	logrus.WithFields(logrus.Fields{
		"teams":     len(teams),
		"players":   len(g.skills),
		"variables": len(g.vars),
		"factors":   len(g.factors),
	}).Trace("Built factor graph")

	return g, nil
}

func (g *Graph) addVariable(name string) VarID {
	g.vars = append(g.vars, variable{
		name:     name,
		messages: make(map[FactorID]Belief),
	})
	return VarID(len(g.vars) - 1)
}

// addFactor appends f to the graph and registers an empty message from it
// on every variable it connects.
func (g *Graph) addFactor(f factor) FactorID {
	id := FactorID(len(g.factors))
	g.factors = append(g.factors, f)
	for _, v := range f.vars {
		g.vars[v].messages[id] = Belief{}
	}
	return id
}

// skillMarginal returns the current marginal of the skill variable of player.
func (g *Graph) skillMarginal(player string) (Belief, bool) {
	for _, skill := range g.skills {
		if g.vars[skill].name == player {
			return g.vars[skill].marginal, true
		}
	}

	return Belief{}, false
}

func checkTeams(teams []Team) error {
	if len(teams) < 2 {
		return fmt.Errorf("%d teams, need at least 2: %w", len(teams), ErrTeams)
	}

	seen := make(map[string]int)
	for t, team := range teams {
		if len(team) == 0 {
			return fmt.Errorf("team %d has no players: %w", t+1, ErrTeams)
		}

		for player, prior := range team {
			if other, found := seen[player]; found {
				return fmt.Errorf("player %s is in teams %d and %d: %w", player, other+1, t+1, ErrTeams)
			}
			seen[player] = t

			if !(prior.Pi > 0) {
				return fmt.Errorf("prior of player %s has precision %g: %w", player, prior.Pi, ErrNumerical)
			}
			if err := prior.check("prior of player " + player); err != nil {
				return err
			}
		}
	}

	return nil
}

func ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
