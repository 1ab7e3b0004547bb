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
	"github.com/spf13/cobra"

	"laptudirm.com/x/rater/pkg/common"
	"laptudirm.com/x/rater/pkg/rater"
	"laptudirm.com/x/rater/pkg/ratings"
	"laptudirm.com/x/rater/pkg/trueskill"
)

// engineConfig reads the configuration file and applies the parameters
// given on the command line over it.
func engineConfig(cmd *cobra.Command) (trueskill.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	config, err := common.LoadConfig(path)
	if err != nil {
		return config, err
	}

	if flags.Changed("beta") {
		config.Beta, _ = flags.GetFloat64("beta")
	}
	if flags.Changed("dynamics") {
		config.Dynamics, _ = flags.GetFloat64("dynamics")
	}
	if flags.Changed("delta") {
		config.Delta, _ = flags.GetFloat64("delta")
	}
	if flags.Changed("max-iterations") {
		config.MaxIterations, _ = flags.GetInt("max-iterations")
	}

	return config, config.Validate()
}

// openStore opens the rating database chosen on the command line.
func openStore(cmd *cobra.Command, config trueskill.Config) (*ratings.FileStore, error) {
	prior, err := config.Prior()
	if err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("store")
	return ratings.Open(path, prior)
}

// newService sets up a rating service from the command line's options.
func newService(cmd *cobra.Command) (*rater.Service, error) {
	config, err := engineConfig(cmd)
	if err != nil {
		return nil, err
	}

	engine, err := trueskill.New(config)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cmd, config)
	if err != nil {
		return nil, err
	}

	return &rater.Service{Store: store, Engine: engine}, nil
}
