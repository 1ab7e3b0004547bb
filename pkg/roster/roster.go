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

package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrValidation is returned for a match that can't be rated.
var ErrValidation = errors.New("invalid roster")

// Roster is the list of teams of a match, each a list of player identifiers.
type Roster [][]string

// Parse reads a roster with one team per row, where the players of a team
// are separated by commas. Player identifiers containing commas may be
// quoted. Blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) (Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var roster Roster
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return roster, nil
		}
		if err != nil {
			return nil, err
		}

		blank := true
		for i, player := range row {
			row[i] = strings.TrimSpace(player)
			blank = blank && row[i] == ""
		}

		if !blank {
			roster = append(roster, row)
		}
	}
}

// Validate checks that the roster has at least two teams, that no team is
// empty, and that no player appears more than once.
func (roster Roster) Validate() error {
	if len(roster) < 2 {
		return fmt.Errorf("%d teams, need at least two: %w", len(roster), ErrValidation)
	}

	teamOf := make(map[string]int)
	for t, team := range roster {
		if len(team) == 0 {
			return fmt.Errorf("team %d has no players: %w", t+1, ErrValidation)
		}

		for _, player := range team {
			if player == "" {
				return fmt.Errorf("team %d has an unnamed player: %w", t+1, ErrValidation)
			}

			if other, found := teamOf[player]; found {
				if other == t {
					return fmt.Errorf("player %s is present multiple times in team %d: %w", player, t+1, ErrValidation)
				}
				return fmt.Errorf("player %s is present in teams %d and %d: %w", player, other+1, t+1, ErrValidation)
			}
			teamOf[player] = t
		}
	}

	return nil
}

// Order returns the teams sorted by their ranks, from the best (lowest
// rank) to the worst. ranks[i] is the rank of the i-th team.
func (roster Roster) Order(ranks []int) (Roster, error) {
	if len(ranks) != len(roster) {
		return nil, fmt.Errorf("%d ranks for %d teams, need one rank per team: %w", len(ranks), len(roster), ErrValidation)
	}

	seen := make(map[int]bool, len(ranks))
	for _, rank := range ranks {
		if seen[rank] {
			return nil, fmt.Errorf("rank %d is given to multiple teams: %w", rank, ErrValidation)
		}
		seen[rank] = true
	}

	order := make([]int, len(roster))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return ranks[order[i]] < ranks[order[j]]
	})

	ordered := make(Roster, len(roster))
	for i, t := range order {
		ordered[i] = roster[t]
	}

	return ordered, nil
}

// Players returns the identifiers of all the players in the roster.
func (roster Roster) Players() []string {
	var players []string
	for _, team := range roster {
		players = append(players, team...)
	}
	return players
}
