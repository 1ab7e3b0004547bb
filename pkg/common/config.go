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

package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/rater/pkg/trueskill"
)

// LoadConfig reads the model parameters from the given YAML file. Missing
// parameters, or a missing file, fall back to the defaults.
func LoadConfig(path string) (trueskill.Config, error) {
	config := trueskill.DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Debug("No configuration file, using defaults")
		return config, nil
	case err != nil:
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}

	logrus.WithField("path", path).Debug("Loaded configuration")
	return config, config.Validate()
}

// DefaultConfigFile returns the contents of a configuration file holding
// the default parameters.
func DefaultConfigFile() []byte {
	data, _ := yaml.Marshal(trueskill.DefaultConfig())
	return data
}
