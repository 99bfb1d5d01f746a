//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"phenopipe/internal/domain/entity"
)

// mapToNIR переносит маску растения из VIS-пространства в NIR-пространство:
// расширение, масштабирование с повторной бинаризацией, симметричная
// обрезка до размеров NIR-кадра и фиксированная позиционная поправка.
// NIR-снимок при этом не сегментируется.
func mapToNIR(plantMask gocv.Mat, ratio entity.ConversionRatio, nirCols, nirRows int) (gocv.Mat, error) {
	dilated := dilateMask(plantMask)
	defer dilated.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(dilated, &resized, image.Pt(0, 0), ratio.X, ratio.Y, gocv.InterpolationLinear)

	// Интерполяция оставляет промежуточные значения, маска бинаризуется
	// заново: любой ненулевой пиксель снова становится белым.
	binary := thresholdLight(resized, resizeRethresh)
	defer binary.Close()

	margins, err := entity.EqualizeCrop(binary.Cols(), binary.Rows(), nirCols, nirRows)
	if err != nil {
		return gocv.NewMat(), err
	}

	cropped := binary.Region(image.Rect(
		margins.Left,
		margins.Top,
		binary.Cols()-margins.Right,
		binary.Rows()-margins.Bottom,
	))
	defer cropped.Close()

	return shiftMask(cropped, entity.NIRShiftX, entity.NIRShiftY), nil
}

// shiftMask сдвигает содержимое маски на dx и dy от нижнего правого угла
// кадра; освободившиеся края заполняются чёрным.
func shiftMask(mask gocv.Mat, dx, dy int) gocv.Mat {
	out := gocv.Zeros(mask.Rows(), mask.Cols(), gocv.MatTypeCV8U)
	if dx >= mask.Cols() || dy >= mask.Rows() {
		return out
	}

	src := mask.Region(image.Rect(dx, dy, mask.Cols(), mask.Rows()))
	defer src.Close()
	dst := out.Region(image.Rect(0, 0, mask.Cols()-dx, mask.Rows()-dy))
	defer dst.Close()
	src.CopyTo(&dst)
	return out
}
