package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestROI_Resolve(t *testing.T) {
	rect, err := StopperROI.Resolve(VISRefWidth, VISRefHeight)
	require.NoError(t, err)
	require.Equal(t, image.Rect(1480, 850, 1584, 981), rect)
}

func TestROI_ResolveDegenerate(t *testing.T) {
	roi := ROI{XAdj: 100, WAdj: -950}
	_, err := roi.Resolve(1000, 1000)
	require.Error(t, err)
}

func TestROI_ResolveOutOfFrame(t *testing.T) {
	roi := ROI{XAdj: -10}
	_, err := roi.Resolve(1000, 1000)
	require.Error(t, err)
}

func TestCabinetROIs_ValidForReferenceFrame(t *testing.T) {
	rois := append([]ROI{StopperROI, PlantWindowROI}, ScrewHoleROIs...)
	for _, roi := range rois {
		_, err := roi.Resolve(VISRefWidth, VISRefHeight)
		require.NoError(t, err)
	}
}
