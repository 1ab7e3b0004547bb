package trueskill

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoPlayer(t *testing.T) {
	config := DefaultConfig()
	config.Dynamics = 0

	prior, err := config.Prior()
	require.NoError(t, err)

	winner, loser, err := TwoPlayer(prior, prior, config)
	require.NoError(t, err)

	// With equal priors t = 0, so the update only depends on c.
	c := math.Sqrt(2*config.Sigma*config.Sigma + 2*config.Beta*config.Beta)
	shift := config.Sigma * config.Sigma / c * math.Sqrt(2/math.Pi)

	mu, sigma, err := winner.Params()
	require.NoError(t, err)
	assert.InDelta(t, 25+shift, mu, 1e-9)
	assert.Less(t, sigma, config.Sigma)

	mu, err = loser.Mu()
	require.NoError(t, err)
	assert.InDelta(t, 25-shift, mu, 1e-9)
}

func TestTwoPlayerUpsetMovesMore(t *testing.T) {
	config := DefaultConfig()
	strong, err := NewBelief(35, 3)
	require.NoError(t, err)
	weak, err := NewBelief(15, 3)
	require.NoError(t, err)

	expectedWinner, _, err := TwoPlayer(strong, weak, config)
	require.NoError(t, err)
	upsetWinner, _, err := TwoPlayer(weak, strong, config)
	require.NoError(t, err)

	expected, err := expectedWinner.Mu()
	require.NoError(t, err)
	upset, err := upsetWinner.Mu()
	require.NoError(t, err)

	assert.Less(t, expected-35, upset-15)
}

func TestTwoTeamsRejectsInvalidTeams(t *testing.T) {
	prior := defaultPrior(t)

	_, err := TwoTeams(Team{"A": prior}, Team{"A": prior}, DefaultConfig())
	assert.ErrorIs(t, err, ErrTeams)

	_, err = TwoTeams(Team{"A": prior}, Team{}, DefaultConfig())
	assert.ErrorIs(t, err, ErrTeams)
}
