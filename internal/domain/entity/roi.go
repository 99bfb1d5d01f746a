package entity

import (
	"fmt"
	"image"
)

// ROI описывает прямоугольную область интереса как четыре знаковых
// смещения от полного кадра опорного изображения.
type ROI struct {
	XAdj int // сдвиг левой границы вправо
	YAdj int // сдвиг верхней границы вниз
	WAdj int // поправка правой границы (отрицательная сужает кадр)
	HAdj int // поправка нижней границы (отрицательная сужает кадр)
}

// Фиксированная геометрия съёмочного шкафа. Константы привязаны к монтажу
// конкретного оборудования: при замене крепежа меняются только они,
// логика подавления контуров остаётся прежней.
var (
	// StopperROI накрывает латунный стопор крепления горшка.
	StopperROI = ROI{XAdj: 1480, YAdj: 850, WAdj: -870, HAdj: -1075}

	// ScrewHoleROIs накрывают два отверстия под винты на стенке шкафа.
	ScrewHoleROIs = []ROI{
		{XAdj: 2000, YAdj: 945, WAdj: -220, HAdj: -880},
		{XAdj: 1660, YAdj: 990, WAdj: -600, HAdj: -1000},
	}

	// PlantWindowROI ограничивает область, где может находиться растение.
	PlantWindowROI = ROI{XAdj: 565, YAdj: 200, WAdj: -520, HAdj: -250}

	// PlantCoreRegion — центральное окно, которое извлекается до размытия
	// и возвращается обратно, чтобы фильтры не съели тонкие детали растения.
	PlantCoreRegion = image.Rect(250, 250, 2250, 2000)
)

// Resolve возвращает конкретный прямоугольник ROI для кадра width×height.
// Вырожденный или выходящий за кадр прямоугольник — фатальная ошибка
// конфигурации геометрии шкафа, а не повод для повтора.
func (r ROI) Resolve(width, height int) (image.Rectangle, error) {
	rect := image.Rectangle{
		Min: image.Pt(r.XAdj, r.YAdj),
		Max: image.Pt(width+r.WAdj, height+r.HAdj),
	}
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("roi %+v вырожден для кадра %dx%d", r, width, height)
	}
	if rect.Min.X < 0 || rect.Min.Y < 0 || rect.Max.X > width || rect.Max.Y > height {
		return image.Rectangle{}, fmt.Errorf("roi %+v выходит за кадр %dx%d", r, width, height)
	}
	return rect, nil
}
