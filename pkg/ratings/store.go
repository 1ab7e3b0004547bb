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

package ratings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rater/pkg/internal/util"
	"laptudirm.com/x/rater/pkg/stats"
	"laptudirm.com/x/rater/pkg/trueskill"
)

// ErrNotFound is returned for players missing from a store.
var ErrNotFound = errors.New("player not found")

// Store is where player ratings live between matches.
type Store interface {
	// Load returns the rating of the given player, or the default prior
	// if the player hasn't been rated yet.
	Load(player string) (trueskill.Belief, error)

	// Save stores all the given ratings at once.
	Save(ratings trueskill.Ratings) error
}

// Record is the stored rating of a player.
type Record struct {
	Mu      float64 `yaml:"mu"`
	Sigma   float64 `yaml:"sigma"`
	Matches int     `yaml:"matches"`
}

// Belief returns the skill belief described by the record.
func (record Record) Belief() (trueskill.Belief, error) {
	return trueskill.NewBelief(record.Mu, record.Sigma)
}

// Entry is a Record along with the player it belongs to.
type Entry struct {
	Player string
	Record
}

// FileStore is a Store backed by a single file, which is rewritten as a
// whole on every change. It is safe for concurrent use.
type FileStore struct {
	path  string
	codec codec
	prior trueskill.Belief

	mu      sync.Mutex
	records map[string]Record
}

// Open reads the rating database at path. A missing file is an empty
// database. Files with a .csv extension hold name,mu,sigma[,matches] rows;
// anything else is YAML.
func Open(path string, prior trueskill.Belief) (*FileStore, error) {
	if _, _, err := prior.Params(); err != nil {
		return nil, fmt.Errorf("default prior: %w", err)
	}

	store := &FileStore{
		path:    path,
		codec:   codecFor(path),
		prior:   prior,
		records: make(map[string]Record),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Debug("Rating database not found, starting empty")
		return store, nil
	case err != nil:
		return nil, err
	}

	if store.records, err = store.codec.decode(data); err != nil {
		return nil, fmt.Errorf("ratings %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"players": len(store.records),
	}).Debug("Loaded rating database")

	return store, nil
}

// Path returns the path of the file backing the store.
func (store *FileStore) Path() string {
	return store.path
}

func (store *FileStore) Load(player string) (trueskill.Belief, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, found := store.records[player]
	if !found {
		return store.prior, nil
	}

	belief, err := record.Belief()
	if err != nil {
		return trueskill.Belief{}, fmt.Errorf("rating of %s: %w", player, err)
	}
	return belief, nil
}

// Save stores the given ratings and counts a match for each of their
// players. Nothing is changed if the ratings can't be written.
func (store *FileStore) Save(ratings trueskill.Ratings) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	records := make(map[string]Record, len(store.records)+len(ratings))
	for player, record := range store.records {
		records[player] = record
	}

	for player, rating := range ratings {
		mu, sigma, err := rating.Params()
		if err != nil {
			return fmt.Errorf("rating of %s: %w", player, err)
		}

		records[player] = Record{
			Mu:      mu,
			Sigma:   sigma,
			Matches: records[player].Matches + 1,
		}
	}

	if err := store.dump(records); err != nil {
		return err
	}

	store.records = records
	logrus.WithFields(logrus.Fields{
		"path":    store.path,
		"updated": len(ratings),
	}).Debug("Saved rating database")
	return nil
}

// Get returns the record of the given player.
func (store *FileStore) Get(player string) (Record, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, found := store.records[player]
	return record, found
}

// Remove deletes the given player from the store.
func (store *FileStore) Remove(player string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, found := store.records[player]; !found {
		return fmt.Errorf("%s: %w", player, ErrNotFound)
	}

	records := make(map[string]Record, len(store.records))
	for p, record := range store.records {
		if p != player {
			records[p] = record
		}
	}

	if err := store.dump(records); err != nil {
		return err
	}

	store.records = records
	return nil
}

// Entries returns every player in the store, best first by the
// conservative rating mu - 3*sigma. Ties are broken by the natural order
// of the player names.
func (store *FileStore) Entries() []Entry {
	store.mu.Lock()
	defer store.mu.Unlock()

	type ranked struct {
		Entry
		rating float64
	}

	list := make([]ranked, 0, len(store.records))
	for player, record := range store.records {
		rating := record.Mu - stats.ConservativeK*record.Sigma
		if belief, err := record.Belief(); err == nil {
			rating, _ = stats.Conservative(belief, stats.ConservativeK)
		}

		list = append(list, ranked{Entry{player, record}, rating})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].rating != list[j].rating {
			return list[i].rating > list[j].rating
		}
		return util.NaturalLess(list[i].Player, list[j].Player)
	})

	entries := make([]Entry, len(list))
	for i := range list {
		entries[i] = list[i].Entry
	}
	return entries
}

// dump atomically replaces the store's file with the given records.
func (store *FileStore) dump(records map[string]Record) error {
	data, err := store.codec.encode(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.CreateTemp(dir, filepath.Base(store.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(file.Name())

	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(file.Name(), store.path)
}
