//go:build gocv
// +build gocv

package vision

import (
	"math"
	"sort"
	"strconv"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"phenopipe/internal/domain/entity"
)

// analyzeShape считает форм-метрики объединённого контура растения.
func analyzeShape(contour gocv.PointVector, mask gocv.Mat) entity.MetricBlock {
	area := gocv.ContourArea(contour)
	perimeter := gocv.ArcLength(contour, true)

	hullMat := gocv.NewMat()
	defer hullMat.Close()
	gocv.ConvexHull(contour, &hullMat, true, true)
	hull := gocv.NewPointVectorFromMat(hullMat)
	defer hull.Close()
	hullArea := gocv.ContourArea(hull)

	var solidity float64
	if hullArea > 0 {
		solidity = area / hullArea
	}

	rect := gocv.BoundingRect(contour)
	longest := math.Hypot(float64(rect.Dx()), float64(rect.Dy()))

	var cmx, cmy float64
	m := gocv.Moments(mask, true)
	if m["m00"] > 0 {
		cmx = m["m10"] / m["m00"]
		cmy = m["m01"] / m["m00"]
	}

	return entity.MetricBlock{
		Header: []string{
			"HEADER_SHAPES", "area", "hull-area", "solidity", "perimeter",
			"width", "height", "longest-axis", "center-of-mass-x", "center-of-mass-y",
		},
		Data: []string{
			"SHAPES_DATA", ff(area), ff(hullArea), ff(solidity), ff(perimeter),
			strconv.Itoa(rect.Dx()), strconv.Itoa(rect.Dy()), ff(longest), ff(cmx), ff(cmy),
		},
	}
}

// analyzeColor считает сводную статистику HSV-каналов внутри маски растения.
func analyzeColor(img, mask gocv.Mat) entity.MetricBlock {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	channels := gocv.Split(hsv)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()

	header := []string{"HEADER_COLOR", "pixel-count"}
	data := []string{"COLOR_DATA", strconv.Itoa(gocv.CountNonZero(mask))}
	names := [3]string{"hue", "saturation", "value"}
	for i, name := range names {
		mean, median, std := summary(maskedValues(channels[i], mask))
		header = append(header, name+"-mean", name+"-median", name+"-std")
		data = append(data, ff(mean), ff(median), ff(std))
	}
	return entity.MetricBlock{Header: header, Data: data}
}

// analyzeIntensity считает статистику NIR-сигнала внутри маски растения.
func analyzeIntensity(gray, mask gocv.Mat) entity.MetricBlock {
	mean, median, std := summary(maskedValues(gray, mask))
	return entity.MetricBlock{
		Header: []string{"HEADER_NIR", "pixel-count", "nir-mean", "nir-median", "nir-std"},
		Data:   []string{"NIR_DATA", strconv.Itoa(gocv.CountNonZero(mask)), ff(mean), ff(median), ff(std)},
	}
}

// maskedValues собирает значения канала по белым пикселям маски.
func maskedValues(ch, mask gocv.Mat) []float64 {
	vals := make([]float64, 0, gocv.CountNonZero(mask))
	for y := 0; y < mask.Rows(); y++ {
		for x := 0; x < mask.Cols(); x++ {
			if mask.GetUCharAt(y, x) != 0 {
				vals = append(vals, float64(ch.GetUCharAt(y, x)))
			}
		}
	}
	return vals
}

// summary возвращает среднее, медиану и стандартное отклонение выборки.
func summary(vals []float64) (mean, median, std float64) {
	if len(vals) == 0 {
		return 0, 0, 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	return mean, median, std
}

// ff форматирует метрику для tab-разделённой строки результата.
func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
