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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rater/pkg/ratings"
	"laptudirm.com/x/rater/pkg/stats"
)

// rater ratings
func Ratings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings [player...]",
		Short: "Show the leaderboard",
		Long: heredoc.Doc(`ratings lists the rated players, best first, by their
			conservative rating mu - 3*sigma, along with a credible interval
			of their skill. Given players, only those are listed.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := engineConfig(cmd)
			if err != nil {
				return err
			}

			store, err := openStore(cmd, config)
			if err != nil {
				return err
			}

			mass, _ := cmd.Flags().GetFloat64("interval")

			wanted := make(map[string]bool, len(args))
			for _, player := range args {
				if _, found := store.Get(player); !found {
					return fmt.Errorf("%s: %w", player, ratings.ErrNotFound)
				}
				wanted[player] = true
			}

			entries := store.Entries()
			w := cmd.OutOrStdout()

			if len(entries) == 0 {
				fmt.Fprintln(w, "\x1b[31mNo Players Rated.\x1b[0m")
				return nil
			}

			fmt.Fprintf(w, "\x1b[32m%4s  %-20s %8s %8s %8s  %-19s %7s\x1b[0m\n",
				"Rank", "Player", "Rating", "Mu", "Sigma", fmt.Sprintf("%g%% Interval", 100*mass), "Matches")

			for rank, entry := range entries {
				if len(wanted) > 0 && !wanted[entry.Player] {
					continue
				}

				skill, err := entry.Belief()
				if err != nil {
					return fmt.Errorf("rating of %s: %w", entry.Player, err)
				}

				rating, err := stats.Conservative(skill, stats.ConservativeK)
				if err != nil {
					return err
				}

				lower, _, upper, err := stats.Interval(skill, mass)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%4d  \x1b[34m%-20s\x1b[0m %8.3f %8.3f %8.3f  [%7.3f, %7.3f] %7d\n",
					rank+1, entry.Player, rating, entry.Mu, entry.Sigma, lower, upper, entry.Matches)
			}

			return nil
		},
	}

	cmd.Flags().Float64P("interval", "i", 0.95, "Probability mass of the skill interval")

	return cmd
}
