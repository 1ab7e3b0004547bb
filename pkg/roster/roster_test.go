package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	roster, err := Parse(strings.NewReader("alice, bob\r\n\n# second team\ncarol\n  dave,erin  \n"))
	require.NoError(t, err)

	assert.Equal(t, Roster{
		{"alice", "bob"},
		{"carol"},
		{"dave", "erin"},
	}, roster)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave", "erin"}, roster.Players())
}

func TestParseQuotedPlayers(t *testing.T) {
	roster, err := Parse(strings.NewReader("\"smith, john\",alice\n   \nbob\n"))
	require.NoError(t, err)

	assert.Equal(t, Roster{
		{"smith, john", "alice"},
		{"bob"},
	}, roster)
	require.NoError(t, roster.Validate())

	_, err = Parse(strings.NewReader("\"unterminated,alice\nbob\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name   string
		roster Roster
		valid  bool
	}{
		{"two teams", Roster{{"a"}, {"b"}}, true},
		{"many teams", Roster{{"a", "b"}, {"c"}, {"d", "e", "f"}}, true},
		{"no teams", nil, false},
		{"one team", Roster{{"a", "b"}}, false},
		{"empty team", Roster{{"a"}, {}}, false},
		{"unnamed player", Roster{{"a"}, {""}}, false},
		{"repeated within a team", Roster{{"a", "a"}, {"b"}}, false},
		{"repeated across teams", Roster{{"a", "b"}, {"c", "a"}}, false},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := test.roster.Validate()
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	roster := Roster{{"a"}, {"b", "c"}, {"d"}}

	ordered, err := roster.Order([]int{2, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, Roster{{"d"}, {"a"}, {"b", "c"}}, ordered)

	// The input is left alone.
	assert.Equal(t, Roster{{"a"}, {"b", "c"}, {"d"}}, roster)

	_, err = roster.Order([]int{1, 2})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = roster.Order([]int{1, 2, 2})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMatchOrdered(t *testing.T) {
	ordered, err := Match{Teams: Roster{{"a"}, {"b"}}}.Ordered()
	require.NoError(t, err)
	assert.Equal(t, Roster{{"a"}, {"b"}}, ordered)

	ordered, err = Match{Teams: Roster{{"a"}, {"b"}}, Ranks: []int{2, 1}}.Ordered()
	require.NoError(t, err)
	assert.Equal(t, Roster{{"b"}, {"a"}}, ordered)

	_, err = Match{Teams: Roster{{"a"}, {"a"}}, Ranks: []int{1, 2}}.Ordered()
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Match{Teams: Roster{{"a"}, {"b"}, {"c"}}, Ranks: []int{1, 2}}.Ordered()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMatchString(t *testing.T) {
	assert.Equal(t, "final", Match{Name: "final"}.String())
	assert.Equal(t, "a, b vs c", Match{Teams: Roster{{"a", "b"}, {"c"}}}.String())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	csv := filepath.Join(dir, "game.csv")
	require.NoError(t, os.WriteFile(csv, []byte("a,b\nc\n"), 0644))

	match, err := LoadFile(csv)
	require.NoError(t, err)
	assert.Equal(t, Match{Teams: Roster{{"a", "b"}, {"c"}}}, match)

	yml := filepath.Join(dir, "game.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("name: final\nteams:\n  - [a, b]\n  - [c]\nranks: [2, 1]\n"), 0644))

	match, err = LoadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, Match{Name: "final", Teams: Roster{{"a", "b"}, {"c"}}, Ranks: []int{2, 1}}, match)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestLoadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`matches:
  - teams: [[a], [b]]
  - name: rematch
    teams: [[a], [b]]
    ranks: [2, 1]
`), 0644))

	history, err := LoadHistory(path)
	require.NoError(t, err)
	require.Len(t, history.Matches, 2)
	assert.Equal(t, Roster{{"a"}, {"b"}}, history.Matches[0].Teams)
	assert.Equal(t, "rematch", history.Matches[1].Name)
	assert.Equal(t, []int{2, 1}, history.Matches[1].Ranks)
}
