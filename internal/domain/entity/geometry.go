package entity

import "fmt"

// Опорные разрешения сенсоров и физический коэффициент пересчёта.
// Детерминированные константы пары камер, от снимка не зависят.
const (
	VISRefWidth  = 2454
	VISRefHeight = 2056
	NIRRefWidth  = 606
	NIRRefHeight = 508

	pixelConvFactor = 1.125
)

// Остаточная поправка положения маски после переноса в NIR-кадр,
// измерена эмпирически для креплений этой пары камер.
// Привязка к нижнему правому углу кадра.
const (
	NIRShiftX = 2
	NIRShiftY = 0
)

// ConversionRatio — фиксированные масштабы перевода VIS-пикселей в NIR-пиксели.
type ConversionRatio struct {
	X float64
	Y float64
}

// DefaultConversionRatio возвращает масштабы для камер съёмочного шкафа.
func DefaultConversionRatio() ConversionRatio {
	return ConversionRatio{
		X: pixelConvFactor * float64(NIRRefWidth) / float64(VISRefWidth),
		Y: pixelConvFactor * float64(NIRRefHeight) / float64(VISRefHeight),
	}
}

// AlignmentError означает, что масштабированная VIS-маска меньше NIR-кадра:
// перенос невозможен, геометрия съёмки не совпала с константами пересчёта.
type AlignmentError struct {
	Axis    string
	Resized int
	Target  int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("маска меньше NIR-кадра по оси %s: %d < %d", e.Axis, e.Resized, e.Target)
}

// CropMargins — сколько пикселей срезать с каждой стороны маски.
type CropMargins struct {
	Left, Right, Top, Bottom int
}

// EqualizeCrop делит разницу размеров маски и NIR-кадра поровну между
// сторонами каждой оси. Нечётный остаток всегда уходит задней стороне
// (право/низ), чтобы центроид растения не смещался к одному углу.
func EqualizeCrop(maskWidth, maskHeight, targetWidth, targetHeight int) (CropMargins, error) {
	dx := maskWidth - targetWidth
	dy := maskHeight - targetHeight
	if dx < 0 {
		return CropMargins{}, &AlignmentError{Axis: "x", Resized: maskWidth, Target: targetWidth}
	}
	if dy < 0 {
		return CropMargins{}, &AlignmentError{Axis: "y", Resized: maskHeight, Target: targetHeight}
	}
	return CropMargins{
		Left:   dx / 2,
		Right:  dx/2 + dx%2,
		Top:    dy / 2,
		Bottom: dy/2 + dy%2,
	}, nil
}
