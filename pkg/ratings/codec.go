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
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"laptudirm.com/x/rater/pkg/internal/util"
)

// codec converts a rating database to and from its file representation.
type codec interface {
	encode(records map[string]Record) ([]byte, error)
	decode(data []byte) (map[string]Record, error)
}

func codecFor(path string) codec {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csvCodec{}
	}

	return yamlCodec{}
}

// yamlCodec stores the records as a map from player names.
type yamlCodec struct{}

func (yamlCodec) encode(records map[string]Record) ([]byte, error) {
	return yaml.Marshal(records)
}

func (yamlCodec) decode(data []byte) (map[string]Record, error) {
	records := make(map[string]Record)
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	if records == nil {
		// empty document
		records = make(map[string]Record)
	}

	return records, nil
}

// csvCodec stores the records as name,mu,sigma,matches rows. The matches
// column is optional when reading.
type csvCodec struct{}

func (csvCodec) encode(records map[string]Record) ([]byte, error) {
	players := make([]string, 0, len(records))
	for player := range records {
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool {
		return util.NaturalLess(players[i], players[j])
	})

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	for _, player := range players {
		record := records[player]
		if err := writer.Write([]string{
			player,
			strconv.FormatFloat(record.Mu, 'g', -1, 64),
			strconv.FormatFloat(record.Sigma, 'g', -1, 64),
			strconv.Itoa(record.Matches),
		}); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

func (csvCodec) decode(data []byte) (map[string]Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records := make(map[string]Record)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		if len(row) != 3 && len(row) != 4 {
			return nil, fmt.Errorf("line %d: expected 3 or 4 fields, found %d", line, len(row))
		}

		player := strings.TrimSpace(row[0])
		if _, found := records[player]; found {
			return nil, fmt.Errorf("line %d: player %s repeated", line, player)
		}

		var record Record
		if record.Mu, err = strconv.ParseFloat(strings.TrimSpace(row[1]), 64); err != nil {
			return nil, fmt.Errorf("line %d: mu: %w", line, err)
		}
		if record.Sigma, err = strconv.ParseFloat(strings.TrimSpace(row[2]), 64); err != nil {
			return nil, fmt.Errorf("line %d: sigma: %w", line, err)
		}
		if len(row) == 4 {
			if record.Matches, err = strconv.Atoi(strings.TrimSpace(row[3])); err != nil {
				return nil, fmt.Errorf("line %d: matches: %w", line, err)
			}
		}

		records[player] = record
	}
}
