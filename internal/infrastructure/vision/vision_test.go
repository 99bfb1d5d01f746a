//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func rectMask(t *testing.T, rows, cols int, rects ...image.Rectangle) gocv.Mat {
	t.Helper()
	m := gocv.Zeros(rows, cols, gocv.MatTypeCV8U)
	for _, r := range rects {
		gocv.Rectangle(&m, r, white, -1)
	}
	return m
}

func TestLogicalOr_Bilevel(t *testing.T) {
	a := rectMask(t, 50, 50, image.Rect(5, 5, 20, 20))
	defer a.Close()
	b := rectMask(t, 50, 50, image.Rect(15, 15, 40, 40))
	defer b.Close()

	or := logicalOr(a, b)
	defer or.Close()

	for y := 0; y < or.Rows(); y++ {
		for x := 0; x < or.Cols(); x++ {
			v := or.GetUCharAt(y, x)
			require.True(t, v == 0 || v == 255, "пиксель (%d,%d)=%d", x, y, v)
		}
	}
	require.Equal(t, uint8(255), or.GetUCharAt(10, 10))
	require.Equal(t, uint8(255), or.GetUCharAt(30, 30))
	require.Equal(t, uint8(0), or.GetUCharAt(45, 45))
}

func TestFillSmall_RemovesSpeckle(t *testing.T) {
	mask := rectMask(t, 100, 100, image.Rect(10, 10, 40, 40), image.Rect(80, 80, 84, 84))
	defer mask.Close()

	clean := fillSmall(mask, fillMinArea)
	defer clean.Close()

	require.Equal(t, uint8(255), clean.GetUCharAt(20, 20))
	require.Equal(t, uint8(0), clean.GetUCharAt(82, 82))
}

func TestRemoveContoursInROI_FullContainmentOnly(t *testing.T) {
	// Первый квадрат целиком внутри ROI, второй пересекает его границу.
	mask := rectMask(t, 100, 100, image.Rect(10, 10, 20, 20), image.Rect(40, 40, 60, 60))
	defer mask.Close()

	contours, hierarchy := findObjects(mask)
	defer contours.Close()
	defer hierarchy.Close()

	roi := roiPolygon(image.Rect(5, 5, 50, 50))
	defer roi.Close()

	clean := removeContoursInROI(mask, contours, roi)
	defer clean.Close()

	require.Equal(t, uint8(0), clean.GetUCharAt(15, 15))
	require.Equal(t, uint8(255), clean.GetUCharAt(45, 45))
	require.Equal(t, uint8(255), clean.GetUCharAt(55, 55))
}

func TestRemoveContoursInROI_Idempotent(t *testing.T) {
	mask := rectMask(t, 100, 100, image.Rect(10, 10, 20, 20), image.Rect(40, 40, 60, 60))
	defer mask.Close()
	roi := roiPolygon(image.Rect(5, 5, 50, 50))
	defer roi.Close()

	contours, hierarchy := findObjects(mask)
	once := removeContoursInROI(mask, contours, roi)
	contours.Close()
	hierarchy.Close()
	defer once.Close()

	contours, hierarchy = findObjects(once)
	twice := removeContoursInROI(once, contours, roi)
	contours.Close()
	hierarchy.Close()
	defer twice.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(once, twice, &diff)
	require.Equal(t, 0, gocv.CountNonZero(diff))
}

func TestRemoveContoursInROI_OutsidePixelsUntouched(t *testing.T) {
	suppressed := image.Rect(10, 10, 20, 20)
	mask := rectMask(t, 100, 100, suppressed, image.Rect(70, 70, 90, 90))
	defer mask.Close()

	contours, hierarchy := findObjects(mask)
	defer contours.Close()
	defer hierarchy.Close()
	roi := roiPolygon(image.Rect(5, 5, 50, 50))
	defer roi.Close()

	clean := removeContoursInROI(mask, contours, roi)
	defer clean.Close()

	// Вне закрашенного контура маски совпадают попиксельно.
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(mask, clean, &diff)
	for y := 0; y < diff.Rows(); y++ {
		for x := 0; x < diff.Cols(); x++ {
			if diff.GetUCharAt(y, x) != 0 {
				require.True(t, image.Pt(x, y).In(suppressed.Inset(-1)),
					"изменён пиксель (%d,%d) вне подавленного контура", x, y)
			}
		}
	}
}

func TestSelectRegionObjects_PartialOverlapKept(t *testing.T) {
	mask := rectMask(t, 100, 100, image.Rect(40, 40, 60, 60), image.Rect(80, 80, 95, 95))
	defer mask.Close()

	contours, hierarchy := findObjects(mask)
	defer contours.Close()
	defer hierarchy.Close()

	// ROI пересекает первый квадрат и не касается второго.
	roi := roiPolygon(image.Rect(5, 5, 50, 50))
	defer roi.Close()

	kept := selectRegionObjects(contours, hierarchy, roi)
	require.Len(t, kept, 1)
}

func TestComposeObject_UnionMask(t *testing.T) {
	kept := [][]image.Point{
		{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30}},
		{{X: 50, Y: 50}, {X: 70, Y: 50}, {X: 70, Y: 70}, {X: 50, Y: 70}},
	}
	contour, mask := composeObject(100, 100, kept)
	defer contour.Close()
	defer mask.Close()

	require.Equal(t, 8, contour.Size())
	require.Equal(t, uint8(255), mask.GetUCharAt(20, 20))
	require.Equal(t, uint8(255), mask.GetUCharAt(60, 60))
	require.Equal(t, uint8(0), mask.GetUCharAt(40, 40))
}

func TestBlurRethreshold_Bilevel(t *testing.T) {
	mask := rectMask(t, 60, 60, image.Rect(20, 20, 40, 40))
	defer mask.Close()

	out := blurRethreshold(mask)
	defer out.Close()

	for y := 0; y < out.Rows(); y++ {
		for x := 0; x < out.Cols(); x++ {
			v := out.GetUCharAt(y, x)
			require.True(t, v == 0 || v == 255)
		}
	}
}
