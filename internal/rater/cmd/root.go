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
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rater/pkg/common"
	"laptudirm.com/x/rater/pkg/trueskill"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "rater",
		Short: "Rate players from the results of their matches",
		Long: heredoc.Doc(`rater keeps TrueSkill ratings of the players of team games
			with any number of teams, updating them from the rankings of
			finished matches.

			Ratings are stored in ratings.yaml in rater's data directory,
			along with a config.yaml holding the parameters of the model.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			return common.Setup()
		},
	}

	defaults := trueskill.DefaultConfig()

	// global flags
	flags := root.PersistentFlags()
	flags.BoolP("help", "h", false, "Show Help Information")
	flags.BoolP("version", "v", false, "Show Rater's Version")
	flags.BoolP("trace", "t", false, "Show Trace Information")

	flags.String("config", common.ConfigFile(), "Model configuration file")
	flags.StringP("store", "s", common.RatingsFile(), "Rating database (.yaml or .csv)")
	flags.Float64("beta", defaults.Beta, "Performance noise deviation")
	flags.Float64("dynamics", defaults.Dynamics, "Skill drift deviation per match")
	flags.Float64("delta", defaults.Delta, "Convergence threshold of the relaxation loop")
	flags.Int("max-iterations", defaults.MaxIterations, "Maximum sweeps of the relaxation loop")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Rate())
	root.AddCommand(Predict())
	root.AddCommand(Ratings())
	root.AddCommand(Remove())
	root.AddCommand(Replay())
	root.AddCommand(Completion())

	return root
}
