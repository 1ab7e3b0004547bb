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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/rater/pkg/ratings"
)

// rater remove
func Remove() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove player...",
		Short: "Remove players from the rating database",
		Args:  cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := engineConfig(cmd)
			if err != nil {
				return err
			}

			store, err := openStore(cmd, config)
			if err != nil {
				return err
			}

			force, _ := cmd.Flags().GetBool("force")
			for _, player := range args {
				err := store.Remove(player)
				switch {
				case errors.Is(err, ratings.ErrNotFound) && force:
					continue
				case err != nil:
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32mRemoved Player:\x1b[0m %s\n", player)
			}

			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Ignore players who aren't rated")

	return cmd
}
