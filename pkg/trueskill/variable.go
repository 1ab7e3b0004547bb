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

import "fmt"

// VarID is the handle of a variable node inside a Graph.
type VarID int

// variable is a node of the factor graph. It stores its current marginal
// and the last message received from each adjacent factor, so that
// marginal / messages[f] is always the cavity belief for f.
type variable struct {
	name     string
	marginal Belief
	messages map[FactorID]Belief
}

func (v *variable) String() string {
	if v.name == "" {
		return "variable"
	}

	return fmt.Sprintf("variable %q", v.name)
}

// cavity returns the belief of variable id excluding the evidence of f.
func (g *Graph) cavity(id VarID, f FactorID) Belief {
	v := &g.vars[id]
	return v.marginal.Div(v.messages[f])
}

// updateMessage replaces the message from f to variable id and updates the
// marginal accordingly. It returns how far the marginal moved.
func (g *Graph) updateMessage(id VarID, f FactorID, message Belief) (float64, error) {
	v := &g.vars[id]
	if err := message.check(fmt.Sprintf("message to %s", v)); err != nil {
		return 0, err
	}

	old := v.messages[f]
	marginal := v.marginal.Div(old).Mul(message)
	if err := marginal.check(fmt.Sprintf("marginal of %s", v)); err != nil {
		return 0, err
	}

	d := delta(v.marginal, marginal)
	v.messages[f] = message
	v.marginal = marginal
	return d, nil
}

// updateMarginal sets the marginal of variable id directly on behalf of f,
// recomputing the message from f that the new marginal implies.
func (g *Graph) updateMarginal(id VarID, f FactorID, marginal Belief) (float64, error) {
	v := &g.vars[id]
	if err := marginal.check(fmt.Sprintf("marginal of %s", v)); err != nil {
		return 0, err
	}

	message := marginal.Mul(v.messages[f]).Div(v.marginal)
	if err := message.check(fmt.Sprintf("message to %s", v)); err != nil {
		return 0, err
	}

	d := delta(v.marginal, marginal)
	v.messages[f] = message
	v.marginal = marginal
	return d, nil
}
