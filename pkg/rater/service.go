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

// Package rater rates matches against a rating store.
package rater

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rater/pkg/ratings"
	"laptudirm.com/x/rater/pkg/roster"
	"laptudirm.com/x/rater/pkg/trueskill"
)

// Service updates the ratings in Store with the results of matches.
type Service struct {
	Store  ratings.Store
	Engine *trueskill.Engine
}

// Result is the outcome of rating a single match.
type Result struct {
	Before trueskill.Ratings
	After  trueskill.Ratings
	Report trueskill.Report
}

// Teams returns the teams of the match, best ranked first, with the
// current ratings of their players.
func (service *Service) Teams(match roster.Match) ([]trueskill.Team, error) {
	ordered, err := match.Ordered()
	if err != nil {
		return nil, err
	}

	teams := make([]trueskill.Team, len(ordered))
	for i, players := range ordered {
		teams[i] = make(trueskill.Team, len(players))
		for _, player := range players {
			if teams[i][player], err = service.Store.Load(player); err != nil {
				return nil, err
			}
		}
	}

	return teams, nil
}

// Evaluate computes the new ratings of the players of a match without
// storing them.
func (service *Service) Evaluate(match roster.Match) (Result, error) {
	teams, err := service.Teams(match)
	if err != nil {
		return Result{}, err
	}

	before := make(trueskill.Ratings)
	for _, team := range teams {
		for player, rating := range team {
			before[player] = rating
		}
	}

	after, report, err := service.Engine.Run(teams)
	if err != nil {
		return Result{}, err
	}

	return Result{Before: before, After: after, Report: report}, nil
}

// Rate computes the new ratings of the players of a match and stores them.
// The store is left untouched if any step fails.
func (service *Service) Rate(match roster.Match) (Result, error) {
	result, err := service.Evaluate(match)
	if err != nil {
		return Result{}, err
	}

	if err := service.Store.Save(result.After); err != nil {
		return Result{}, fmt.Errorf("saving ratings: %w", err)
	}

	return result, nil
}

// Replay rates every match of the history in order, calling progress
// after each one. It stops at the first match which can't be rated;
// matches before it stay rated.
func (service *Service) Replay(history roster.History, progress func(done int, result Result)) (int, error) {
	for i, match := range history.Matches {
		result, err := service.Rate(match)
		if err != nil {
			return i, fmt.Errorf("match #%d (%s): %w", i+1, match, err)
		}

		logrus.WithFields(logrus.Fields{
			"match":     i + 1,
			"sweeps":    result.Report.Sweeps,
			"converged": result.Report.Converged,
		}).Debugf("Rated %s", match)

		if progress != nil {
			progress(i+1, result)
		}
	}

	return len(history.Matches), nil
}
