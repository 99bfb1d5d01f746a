//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// findObjects возвращает все контуры бинарной маски вместе с иерархией
// вложенности. Контуры не упрощаются: дальше по их вершинам идут точные
// point-in-polygon тесты.
func findObjects(mask gocv.Mat) (gocv.PointsVector, gocv.Mat) {
	hierarchy := gocv.NewMat()
	contours := gocv.FindContoursWithParams(mask, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxNone)
	return contours, hierarchy
}

// roiPolygon строит контур прямоугольника ROI для point-in-polygon тестов.
func roiPolygon(rect image.Rectangle) gocv.PointVector {
	return gocv.NewPointVectorFromPoints([]image.Point{
		rect.Min,
		{X: rect.Max.X, Y: rect.Min.Y},
		rect.Max,
		{X: rect.Min.X, Y: rect.Max.Y},
	})
}

// removeContoursInROI закрашивает чёрным каждый контур, все вершины
// которого лежат строго внутри ROI. Контур, хотя бы одной вершиной
// лежащий на границе или вне её, сохраняется целиком: правило намеренно
// консервативное, чтобы не срезать силуэт растения рядом с крепежом.
// Исходная маска не меняется.
func removeContoursInROI(mask gocv.Mat, contours gocv.PointsVector, roi gocv.PointVector) gocv.Mat {
	clean := mask.Clone()
	black := color.RGBA{}
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		inside := c.Size() > 0
		for j := 0; j < c.Size(); j++ {
			if gocv.PointPolygonTest(roi, c.At(j), false) <= 0 {
				inside = false
				break
			}
		}
		if inside {
			gocv.DrawContours(&clean, contours, i, black, -1)
		}
	}
	return clean
}

// selectRegionObjects оставляет контуры, хотя бы частично попадающие в ROI.
// В отличие от подавления здесь частичное перекрытие означает «оставить».
func selectRegionObjects(contours gocv.PointsVector, hierarchy gocv.Mat, roi gocv.PointVector) [][]image.Point {
	kept := make([][]image.Point, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		// Дочерние контуры (дыры) не считаются самостоятельными объектами.
		if hierarchy.GetVeciAt(0, i)[3] >= 0 {
			continue
		}
		c := contours.At(i)
		for j := 0; j < c.Size(); j++ {
			if gocv.PointPolygonTest(roi, c.At(j), false) >= 0 {
				kept = append(kept, c.ToPoints())
				break
			}
		}
	}
	return kept
}

// topLevelContours возвращает вершины всех контуров верхнего уровня.
func topLevelContours(contours gocv.PointsVector, hierarchy gocv.Mat) [][]image.Point {
	kept := make([][]image.Point, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		if hierarchy.GetVeciAt(0, i)[3] >= 0 {
			continue
		}
		kept = append(kept, contours.At(i).ToPoints())
	}
	return kept
}

// composeObject объединяет оставленные контуры в один общий контур
// (конкатенация вершин) и одну залитую маску растения.
func composeObject(rows, cols int, kept [][]image.Point) (gocv.PointVector, gocv.Mat) {
	merged := make([]image.Point, 0)
	pv := gocv.NewPointsVector()
	defer pv.Close()
	for _, c := range kept {
		merged = append(merged, c...)
		pv.Append(gocv.NewPointVectorFromPoints(c))
	}

	mask := gocv.Zeros(rows, cols, gocv.MatTypeCV8U)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i < pv.Size(); i++ {
		gocv.DrawContours(&mask, pv, i, white, -1)
	}
	return gocv.NewPointVectorFromPoints(merged), mask
}
