package ratings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/rater/pkg/trueskill"
)

func belief(t *testing.T, mu, sigma float64) trueskill.Belief {
	t.Helper()

	b, err := trueskill.NewBelief(mu, sigma)
	require.NoError(t, err)
	return b
}

func prior(t *testing.T) trueskill.Belief {
	t.Helper()

	b, err := trueskill.DefaultConfig().Prior()
	require.NoError(t, err)
	return b
}

func TestOpenMissingFile(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ratings.yaml"), prior(t))
	require.NoError(t, err)

	assert.Empty(t, store.Entries())

	loaded, err := store.Load("nobody")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(prior(t)))
}

func TestOpenRejectsBadPrior(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "ratings.yaml"), trueskill.Belief{})
	assert.Error(t, err)
}

func TestSaveAndReopen(t *testing.T) {
	for _, name := range []string{"ratings.yaml", "ratings.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			store, err := Open(path, prior(t))
			require.NoError(t, err)

			require.NoError(t, store.Save(trueskill.Ratings{
				"alice": belief(t, 29.2, 7.19),
				"bob":   belief(t, 20.8, 7.19),
			}))
			require.NoError(t, store.Save(trueskill.Ratings{
				"alice": belief(t, 31.5, 6.5),
			}))

			reopened, err := Open(path, prior(t))
			require.NoError(t, err)

			record, found := reopened.Get("alice")
			require.True(t, found)
			assert.InDelta(t, 31.5, record.Mu, 1e-12)
			assert.InDelta(t, 6.5, record.Sigma, 1e-12)
			assert.Equal(t, 2, record.Matches)

			record, found = reopened.Get("bob")
			require.True(t, found)
			assert.Equal(t, 1, record.Matches)

			loaded, err := reopened.Load("bob")
			require.NoError(t, err)
			assert.True(t, loaded.ApproxEqual(belief(t, 20.8, 7.19), 1e-9))
		})
	}
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(filepath.Join(dir, "ratings.yaml"), prior(t))
	require.NoError(t, err)
	require.NoError(t, store.Save(trueskill.Ratings{"alice": prior(t)}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ratings.yaml", files[0].Name())
}

func TestSaveRejectsInvalidBelief(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.yaml")

	store, err := Open(path, prior(t))
	require.NoError(t, err)

	err = store.Save(trueskill.Ratings{
		"alice": prior(t),
		"bob":   trueskill.Belief{},
	})
	assert.ErrorIs(t, err, trueskill.ErrNumerical)

	_, found := store.Get("alice")
	assert.False(t, found)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	require.NoError(t, os.WriteFile(path, []byte("# name,mu,sigma\nalice, 30, 5\nbob,20,6,4\n"), 0644))

	store, err := Open(path, prior(t))
	require.NoError(t, err)

	record, found := store.Get("alice")
	require.True(t, found)
	assert.Equal(t, Record{Mu: 30, Sigma: 5}, record)

	record, found = store.Get("bob")
	require.True(t, found)
	assert.Equal(t, Record{Mu: 20, Sigma: 6, Matches: 4}, record)
}

func TestReadCorrupt(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"short.csv":    "alice,30\n",
		"nan.csv":      "alice,thirty,5\n",
		"repeated.csv": "alice,30,5\nalice,31,5\n",
		"bad.yaml":     "alice: [30, 5]\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		_, err := Open(path, prior(t))
		assert.Error(t, err, name)
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alice:\n  mu: 25\n  sigma: -1\n"), 0644))

	store, err := Open(path, prior(t))
	require.NoError(t, err)

	_, err = store.Load("alice")
	assert.ErrorIs(t, err, trueskill.ErrNumerical)
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.yaml")

	store, err := Open(path, prior(t))
	require.NoError(t, err)
	require.NoError(t, store.Save(trueskill.Ratings{"alice": prior(t), "bob": prior(t)}))

	require.NoError(t, store.Remove("alice"))
	assert.ErrorIs(t, store.Remove("alice"), ErrNotFound)

	reopened, err := Open(path, prior(t))
	require.NoError(t, err)

	_, found := reopened.Get("alice")
	assert.False(t, found)
	_, found = reopened.Get("bob")
	assert.True(t, found)
}

func TestEntries(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ratings.yaml"), prior(t))
	require.NoError(t, err)

	require.NoError(t, store.Save(trueskill.Ratings{
		"p10":   belief(t, 30, 2), // 24
		"p9":    belief(t, 30, 2), // 24
		"carol": belief(t, 40, 3), // 31
		"dave":  belief(t, 35, 8), // 11
	}))

	var players []string
	for _, entry := range store.Entries() {
		players = append(players, entry.Player)
	}

	assert.Equal(t, []string{"carol", "p9", "p10", "dave"}, players)
}
