package trueskill

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBelief(t *testing.T) {
	b, err := NewBelief(25, 5)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/25, b.Pi, 1e-12)
	assert.InDelta(t, 1.0, b.Tau, 1e-12)

	mu, sigma, err := b.Params()
	require.NoError(t, err)
	assert.InDelta(t, 25.0, mu, 1e-12)
	assert.InDelta(t, 5.0, sigma, 1e-12)
}

func TestNewBeliefRejectsInvalidDeviation(t *testing.T) {
	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(+1)} {
		_, err := NewBelief(25, sigma)
		assert.ErrorIs(t, err, ErrNumerical, "sigma %g", sigma)
	}

	_, err := NewBelief(math.NaN(), 1)
	assert.ErrorIs(t, err, ErrNumerical)
}

func TestBeliefMulDiv(t *testing.T) {
	x := Belief{Pi: 3, Tau: 4}
	y := Belief{Pi: 5, Tau: 6}

	assert.Equal(t, Belief{Pi: 8, Tau: 10}, x.Mul(y))
	assert.Equal(t, Belief{Pi: -2, Tau: -2}, x.Div(y))
}

func TestBeliefAlgebra(t *testing.T) {
	a := Belief{Pi: 0.0144, Tau: 0.36}
	b := Belief{Pi: 0.25, Tau: -1.5}
	c := Belief{Pi: 2.5, Tau: 7.25}

	// (a * b) / b == a
	assert.True(t, a.Mul(b).Div(b).ApproxEqual(a, 1e-12))
	assert.True(t, b.Mul(c).Div(c).ApproxEqual(b, 1e-12))

	// commutative and associative
	assert.True(t, a.Mul(b).Equal(b.Mul(a)))
	assert.True(t, a.Mul(b).Mul(c).ApproxEqual(a.Mul(b.Mul(c)), 1e-12))

	// the zero belief is the identity
	assert.True(t, a.Mul(Belief{}).Equal(a))
	assert.True(t, a.Div(Belief{}).Equal(a))
}

func TestBeliefAccessors(t *testing.T) {
	t.Run("no information", func(t *testing.T) {
		var b Belief

		sigma, err := b.Sigma()
		require.NoError(t, err)
		assert.True(t, math.IsInf(sigma, +1))

		_, err = b.Mu()
		assert.ErrorIs(t, err, ErrNumerical)
	})

	t.Run("negative precision", func(t *testing.T) {
		b := Belief{Pi: -1, Tau: 2}

		_, err := b.Sigma()
		assert.ErrorIs(t, err, ErrNumerical)

		_, err = b.Mu()
		assert.ErrorIs(t, err, ErrNumerical)

		_, _, err = b.Params()
		assert.ErrorIs(t, err, ErrNumerical)
	})
}

func TestBeliefEqualUsesNaturalParameters(t *testing.T) {
	// Both have undefined means, but are different beliefs.
	assert.False(t, Belief{Pi: 0, Tau: 1}.Equal(Belief{Pi: 0, Tau: 2}))
	assert.True(t, Belief{Pi: -1, Tau: 1}.Equal(Belief{Pi: -1, Tau: 1}))
}

func TestDelta(t *testing.T) {
	assert.InDelta(t, 3.0, delta(Belief{Pi: 1, Tau: 1}, Belief{Pi: 10, Tau: 2}), 1e-12)
	assert.InDelta(t, 5.0, delta(Belief{Pi: 1, Tau: 1}, Belief{Pi: 2, Tau: 6}), 1e-12)

	// An infinite change in precision counts as no change.
	assert.InDelta(t, 1.0, delta(Belief{Pi: 1, Tau: 1}, Belief{Pi: math.Inf(+1), Tau: 2}), 1e-12)
}

func TestCorrections(t *testing.T) {
	// Moments of a standard normal truncated to (0, +Inf).
	assert.InDelta(t, math.Sqrt(2/math.Pi), V(0), 1e-9)
	assert.InDelta(t, 2/math.Pi, W(0), 1e-9)

	prev := math.Inf(+1)
	for x := -5.0; x <= 5; x += 0.5 {
		v, w := V(x), W(x)
		assert.Less(t, v, prev, "V is decreasing at %g", x)
		assert.Greater(t, w, 0.0, "W at %g", x)
		assert.Less(t, w, 1.0, "W at %g", x)
		prev = v
	}
}
