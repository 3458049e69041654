package lsb

import (
	"testing"

	"PPD/pkg/pixel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDistribution(t *testing.T) {
	m, err := pixel.New(4, 1)
	require.NoError(t, err)
	copy(m.Samples(), []int{2, 3, 4, 5})

	d, err := AnalyzeDistribution(m)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Zeros)
	assert.Equal(t, 2, d.Ones)
	assert.Equal(t, 0.5, d.ZeroRatio)
	assert.InDelta(t, 1.0, d.Entropy, 1e-12)

	copy(m.Samples(), []int{2, 4, 6, 8})
	d, err = AnalyzeDistribution(m)
	require.NoError(t, err)
	assert.Zero(t, d.Entropy)

	m.Release()
	_, err = AnalyzeDistribution(m)
	require.Error(t, err)
}

func TestChangedSamples(t *testing.T) {
	a, err := pixel.New(3, 1)
	require.NoError(t, err)
	b, err := a.Clone()
	require.NoError(t, err)
	require.NoError(t, b.Set(1, 0, 1))

	n, err := ChangedSamples(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c, err := pixel.New(2, 1)
	require.NoError(t, err)
	_, err = ChangedSamples(a, c)
	require.ErrorIs(t, err, pixel.ErrDimensionMismatch)
}
