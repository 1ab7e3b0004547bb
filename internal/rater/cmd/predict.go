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

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rater/pkg/roster"
	"laptudirm.com/x/rater/pkg/stats"
	"laptudirm.com/x/rater/pkg/trueskill"
)

// rater predict
func Predict() *cobra.Command {
	return &cobra.Command{
		Use:   "predict match-file",
		Short: "Predict the outcome of a match from current ratings",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`predict shows, for every pair of teams of a match, the chance
			of the first one finishing ahead of the second, the elo
			difference which that chance corresponds to, and the quality
			of the pairing. Ranks in the match file are ignored.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := roster.LoadFile(args[0])
			if err != nil {
				return err
			}

			service, err := newService(cmd)
			if err != nil {
				return err
			}

			teams, err := service.Teams(roster.Match{Teams: match.Teams})
			if err != nil {
				return err
			}

			beta := service.Engine.Config().Beta
			w := cmd.OutOrStdout()

			for i := range teams {
				for j := i + 1; j < len(teams); j++ {
					a, b := skills(teams[i]), skills(teams[j])

					p, err := stats.WinProbability(a, b, beta)
					if err != nil {
						return err
					}

					quality, err := stats.Quality(a, b, beta)
					if err != nil {
						return err
					}

					fmt.Fprintf(w, "\x1b[34m%s\x1b[0m vs \x1b[34m%s\x1b[0m\n",
						strings.Join(match.Teams[i], ", "),
						strings.Join(match.Teams[j], ", "))
					fmt.Fprintf(w, "  Win Chance: %5.1f%% (%+.1f elo)\n", 100*p, stats.EloDifference(p))
					fmt.Fprintf(w, "  Quality:    %5.1f%%\n", 100*quality)
				}
			}

			return nil
		},
	}
}

// skills lists the skills of the players of a team in name order.
func skills(team trueskill.Team) []trueskill.Belief {
	players := make([]string, 0, len(team))
	for player := range team {
		players = append(players, player)
	}
	sort.Strings(players)

	beliefs := make([]trueskill.Belief, len(players))
	for i, player := range players {
		beliefs[i] = team[player]
	}
	return beliefs
}
