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
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rater/pkg/rater"
	"laptudirm.com/x/rater/pkg/roster"
)

// rater rate
func Rate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate match-file",
		Short: "Update ratings with the result of a match",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`rate updates the ratings of the players of a finished match.

			A .yaml or .yml match file holds a list of teams and optionally
			their ranks, where 1 is the winner. Any other file lists one team
			per line with its players separated by commas, from the winning
			team to the losing one.

			Players who haven't been rated before start with the default
			prior of the configured model.`),
		Example: heredoc.Doc(`
			$ cat game.csv
			alice, bob
			carol, dave
			$ rater rate game.csv
			$ rater rate game.csv --ranks 2,1 --dry-run`),

		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := roster.LoadFile(args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("ranks") {
				match.Ranks, _ = cmd.Flags().GetIntSlice("ranks")
			}

			service, err := newService(cmd)
			if err != nil {
				return err
			}

			var result rater.Result
			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				result, err = service.Evaluate(match)
			} else {
				result, err = service.Rate(match)
			}
			if err != nil {
				return err
			}

			ordered, _ := match.Ordered()
			return printResult(cmd.OutOrStdout(), ordered, result)
		},
	}

	cmd.Flags().IntSliceP("ranks", "r", nil, "Ranks of the teams in file order, 1 is best")
	cmd.Flags().BoolP("dry-run", "n", false, "Show the new ratings without storing them")

	return cmd
}

func printResult(w io.Writer, teams roster.Roster, result rater.Result) error {
	for rank, team := range teams {
		fmt.Fprintf(w, "\x1b[32mRank #%d\x1b[0m\n", rank+1)

		for _, player := range team {
			mu, sigma, err := result.Before[player].Params()
			if err != nil {
				return err
			}

			newMu, newSigma, err := result.After[player].Params()
			if err != nil {
				return err
			}

			color := "\x1b[32m"
			if newMu < mu {
				color = "\x1b[31m"
			}

			fmt.Fprintf(w, "- \x1b[34m%-20s\x1b[0m %7.3f ± %.3f -> %7.3f ± %.3f (%s%+.3f\x1b[0m)\n",
				player, mu, sigma, newMu, newSigma, color, newMu-mu)
		}
	}

	if !result.Report.Converged {
		fmt.Fprintf(w, "\n\x1b[33mRatings did not converge after %d sweeps.\x1b[0m\n", result.Report.Sweeps)
	}

	return nil
}
