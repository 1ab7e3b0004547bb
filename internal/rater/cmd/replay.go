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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rater/internal/util"
	"laptudirm.com/x/rater/pkg/rater"
	"laptudirm.com/x/rater/pkg/roster"
)

// rater replay
func Replay() *cobra.Command {
	return &cobra.Command{
		Use:   "replay history-file",
		Short: "Rate a list of matches in the order they were played",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`replay rates every match of a YAML history file in order,
			storing the ratings after each one.

			The file holds a list of matches under "matches", each with
			its "teams" and optionally their "ranks" and a "name". If a
			match can't be rated, replay stops there; the matches before
			it stay rated.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := roster.LoadHistory(args[0])
			if err != nil {
				return err
			}

			service, err := newService(cmd)
			if err != nil {
				return err
			}

			total := len(history.Matches)
			unconverged := 0

			if message, ok := progressMessage(1, total); ok {
				util.StartSpinner(message)
			}

			done, err := service.Replay(history, func(done int, result rater.Result) {
				if !result.Report.Converged {
					unconverged++
				}

				if message, ok := progressMessage(done+1, total); ok {
					util.SetSpinner(message)
				}
			})
			util.PauseSpinner()

			logrus.Infof("Rated %d of %d matches", done, total)
			if unconverged > 0 {
				logrus.Warnf("%d matches did not converge", unconverged)
			}

			return err
		},
	}
}

// progressMessage describes the match being rated, if there is one.
func progressMessage(next, total int) (string, bool) {
	if next < 1 || next > total {
		return "", false
	}

	return fmt.Sprintf("Rating match %d/%d", next, total), true
}
