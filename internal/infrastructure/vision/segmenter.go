//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"

	"gocv.io/x/gocv"

	"phenopipe/internal/domain/entity"
	"phenopipe/internal/domain/port"
)

// GoCVSegmenter строит маску растения по VIS-снимку и переносит её
// в NIR-пространство. Конвейер строго последовательный: каждая стадия
// возвращает новую маску, буферы между стадиями не разделяются.
type GoCVSegmenter struct {
	Ratio entity.ConversionRatio
	debug *DebugSink
}

// NewGoCVSegmenter создаёт сегментатор. Непустой debugDir включает запись
// нумерованных промежуточных масок в этот каталог.
func NewGoCVSegmenter(debugDir string) *GoCVSegmenter {
	return &GoCVSegmenter{
		Ratio: entity.DefaultConversionRatio(),
		debug: newDebugSink(debugDir),
	}
}

// ProcessPair реализует port.PlantSegmenter.
func (s *GoCVSegmenter) ProcessPair(ctx context.Context, visImage, nirImage []byte) (*entity.PairResult, error) {
	_ = ctx

	img, err := decodeToMat(visImage, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	if img.Empty() {
		return nil, errors.New("empty image")
	}

	mask, err := s.buildVISMask(img)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	kept, err := s.selectPlant(mask)
	if err != nil {
		return nil, err
	}

	res := &entity.PairResult{ImageWidth: img.Cols(), ImageHeight: img.Rows()}
	if len(kept) == 0 {
		res.NoPlant = true
		return res, nil
	}

	plantContour, plantMask := composeObject(mask.Rows(), mask.Cols(), kept)
	defer plantContour.Close()
	defer plantMask.Close()
	s.debug.write("plant_mask", plantMask)

	res.VIS = []entity.MetricBlock{
		analyzeShape(plantContour, plantMask),
		analyzeColor(img, plantMask),
	}

	if nirImage != nil {
		nir, err := s.nirBlocks(plantMask, nirImage)
		if err != nil {
			res.NIRErr = err
		} else {
			res.NIR = nir
		}
	}

	return res, nil
}

// buildVISMask строит очищенную бинарную маску растения в VIS-пространстве:
// два прохода «порог → размытие → повторный порог» с сохранением
// центрального окна, объединение масок повреждённых и здоровых тканей
// и подавление контуров крепежа по фиксированным ROI.
func (s *GoCVSegmenter) buildVISMask(img gocv.Mat) (gocv.Mat, error) {
	green := greenMagentaChannel(img)
	defer green.Close()
	s.debug.write("green_channel", green)

	// Проход 1: светлый порог выделяет повреждённые ткани.
	light := thresholdLight(green, greenLightThresh)
	defer light.Close()
	coarse := s.blurPreservingCore(light)
	defer coarse.Close()

	// Латунный стопор даёт устойчивый контур, он убирается ещё до
	// объединения масок.
	coarseClean, err := s.suppressROI(coarse, entity.StopperROI)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer coarseClean.Close()

	// Тёмный порог выделяет здоровые ткани; маски объединяются.
	dark := thresholdDark(green, greenDarkThresh)
	defer dark.Close()
	merged := logicalOr(dark, coarseClean)
	defer merged.Close()
	s.debug.write("merged", merged)

	// Проход 2: то же сглаживание по объединённой маске.
	refined := s.blurPreservingCore(merged)
	defer refined.Close()

	// Медианный фильтр против теней направляющих, мелочь закрашивается.
	med := medianFilter(refined)
	defer med.Close()
	filled := fillSmall(med, fillMinArea)
	s.debug.write("fill_small", filled)

	// Стопор и оба винтовых отверстия.
	current := filled
	for _, roi := range append([]entity.ROI{entity.StopperROI}, entity.ScrewHoleROIs...) {
		next, err := s.suppressROI(current, roi)
		current.Close()
		if err != nil {
			return gocv.NewMat(), err
		}
		current = next
	}
	return current, nil
}

// blurPreservingCore размывает маску и заново бинаризует её, сохранив
// центральное окно нетронутым: тонкие листья переживают фильтрацию кромок.
func (s *GoCVSegmenter) blurPreservingCore(mask gocv.Mat) gocv.Mat {
	out := blurRethreshold(mask)

	core := entity.PlantCoreRegion.Intersect(image.Rect(0, 0, mask.Cols(), mask.Rows()))
	if !core.Empty() {
		src := mask.Region(core)
		dst := out.Region(core)
		src.CopyTo(&dst)
		src.Close()
		dst.Close()
	}
	s.debug.write("blur_rethreshold", out)
	return out
}

// suppressROI убирает из маски контуры, целиком лежащие внутри ROI.
func (s *GoCVSegmenter) suppressROI(mask gocv.Mat, roi entity.ROI) (gocv.Mat, error) {
	rect, err := roi.Resolve(mask.Cols(), mask.Rows())
	if err != nil {
		return gocv.NewMat(), err
	}
	poly := roiPolygon(rect)
	defer poly.Close()

	contours, hierarchy := findObjects(mask)
	defer contours.Close()
	defer hierarchy.Close()

	clean := removeContoursInROI(mask, contours, poly)
	s.debug.write("remove_contours", clean)
	return clean, nil
}

// selectPlant возвращает контуры маски, хотя бы частично попадающие
// в окно растения.
func (s *GoCVSegmenter) selectPlant(mask gocv.Mat) ([][]image.Point, error) {
	rect, err := entity.PlantWindowROI.Resolve(mask.Cols(), mask.Rows())
	if err != nil {
		return nil, err
	}
	poly := roiPolygon(rect)
	defer poly.Close()

	contours, hierarchy := findObjects(mask)
	defer contours.Close()
	defer hierarchy.Close()

	return selectRegionObjects(contours, hierarchy, poly), nil
}

// nirBlocks переносит маску растения в NIR-пространство и считает метрики
// по NIR-снимку через перенесённую маску.
func (s *GoCVSegmenter) nirBlocks(plantMask gocv.Mat, nirImage []byte) ([]entity.MetricBlock, error) {
	nir, err := decodeToMat(nirImage, gocv.IMReadGrayScale)
	if err != nil {
		return nil, err
	}
	defer nir.Close()

	nmask, err := mapToNIR(plantMask, s.Ratio, nir.Cols(), nir.Rows())
	if err != nil {
		return nil, err
	}
	defer nmask.Close()
	s.debug.write("nir_mask", nmask)

	contours, hierarchy := findObjects(nmask)
	defer contours.Close()
	defer hierarchy.Close()

	kept := topLevelContours(contours, hierarchy)
	if len(kept) == 0 {
		return nil, nil
	}

	nirContour, nirMask := composeObject(nmask.Rows(), nmask.Cols(), kept)
	defer nirContour.Close()
	defer nirMask.Close()

	return []entity.MetricBlock{
		analyzeIntensity(nir, nirMask),
		analyzeShape(nirContour, nirMask),
	}, nil
}

// Проверка реализации интерфейса
var _ port.PlantSegmenter = (*GoCVSegmenter)(nil)
