package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualizeCrop_OddDifference(t *testing.T) {
	m, err := EqualizeCrop(101, 100, 100, 100)
	require.NoError(t, err)
	require.Equal(t, CropMargins{Left: 0, Right: 1, Top: 0, Bottom: 0}, m)
}

func TestEqualizeCrop_EvenDifference(t *testing.T) {
	m, err := EqualizeCrop(100, 100, 96, 96)
	require.NoError(t, err)
	require.Equal(t, CropMargins{Left: 2, Right: 2, Top: 2, Bottom: 2}, m)
}

func TestEqualizeCrop_AlignmentError(t *testing.T) {
	_, err := EqualizeCrop(95, 100, 96, 100)
	var alignErr *AlignmentError
	require.ErrorAs(t, err, &alignErr)
	require.Equal(t, "x", alignErr.Axis)

	_, err = EqualizeCrop(100, 95, 100, 96)
	require.ErrorAs(t, err, &alignErr)
	require.Equal(t, "y", alignErr.Axis)
}

func TestDefaultConversionRatio(t *testing.T) {
	r := DefaultConversionRatio()
	require.InDelta(t, 0.2778, r.X, 0.0005)
	require.InDelta(t, 0.2780, r.Y, 0.0005)

	// Маска опорного VIS-кадра после масштабирования накрывает NIR-кадр.
	require.GreaterOrEqual(t, int(float64(VISRefWidth)*r.X), NIRRefWidth)
	require.GreaterOrEqual(t, int(float64(VISRefHeight)*r.Y), NIRRefHeight)
}
