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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Match is the outcome of a single match.
type Match struct {
	Name string `yaml:"name,omitempty"`

	// The teams that played, each a list of player identifiers.
	Teams Roster `yaml:"teams"`

	// Ranks[i] is where Teams[i] finished, lower is better. Without ranks
	// the teams are taken to be listed from the best to the worst.
	Ranks []int `yaml:"ranks,omitempty"`
}

// Ordered validates the match and returns its teams from the best to the
// worst ranked.
func (match Match) Ordered() (Roster, error) {
	if err := match.Teams.Validate(); err != nil {
		return nil, err
	}

	if match.Ranks == nil {
		return match.Teams, nil
	}

	return match.Teams.Order(match.Ranks)
}

func (match Match) String() string {
	if match.Name != "" {
		return match.Name
	}

	teams := make([]string, len(match.Teams))
	for i, team := range match.Teams {
		teams[i] = strings.Join(team, ", ")
	}
	return strings.Join(teams, " vs ")
}

// History is a list of matches in the order they were played.
type History struct {
	Matches []Match `yaml:"matches"`
}

// LoadFile reads a match from the given file. Files with a .yaml or .yml
// extension hold a YAML Match; anything else is read with Parse.
func LoadFile(path string) (Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return Match{}, err
	}
	defer file.Close()

	var match Match
	if isYAML(path) {
		if err := yaml.NewDecoder(file).Decode(&match); err != nil {
			return Match{}, fmt.Errorf("match %s: %w", path, err)
		}
	} else {
		if match.Teams, err = Parse(file); err != nil {
			return Match{}, fmt.Errorf("match %s: %w", path, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"teams": len(match.Teams),
	}).Debug("Loaded match")

	return match, nil
}

// LoadHistory reads a YAML History from the given file.
func LoadHistory(path string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return History{}, err
	}

	var history History
	if err := yaml.Unmarshal(data, &history); err != nil {
		return History{}, fmt.Errorf("history %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"matches": len(history.Matches),
	}).Debug("Loaded match history")

	return history, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
