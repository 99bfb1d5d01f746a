//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Пороги и ядра фильтрации, подобраны эмпирически для этого шкафа.
const (
	greenLightThresh = 137 // канал a: повреждённые ткани
	greenDarkThresh  = 120 // канал a: здоровые ткани
	blurRethresh     = 250 // повторный порог после гауссова размытия
	resizeRethresh   = 0   // повторный порог после масштабирования

	gaussianKernel = 7
	medianKernel   = 7
	fillMinArea    = 100 // минимальная площадь связной компоненты, px
)

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte, flag gocv.IMReadFlag) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, flag)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// greenMagentaChannel переводит изображение в LAB и возвращает канал a
// (зелёный-пурпурный): на нём растение лучше всего отделяется от фона.
func greenMagentaChannel(img gocv.Mat) gocv.Mat {
	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(img, &lab, gocv.ColorBGRToLab)

	channels := gocv.Split(lab)
	channels[0].Close()
	channels[2].Close()
	return channels[1]
}

// thresholdLight возвращает маску пикселей со значением выше порога.
func thresholdLight(img gocv.Mat, thresh float32) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Threshold(img, &dst, thresh, 255, gocv.ThresholdBinary)
	return dst
}

// thresholdDark возвращает маску пикселей со значением не выше порога.
func thresholdDark(img gocv.Mat, thresh float32) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Threshold(img, &dst, thresh, 255, gocv.ThresholdBinaryInv)
	return dst
}

// blurRethreshold размывает маску гауссовым ядром и заново бинаризует:
// резкие кромки шкафа уходят ниже порога и исчезают. Промежуточные
// значения после размытия дальше по конвейеру смысла не имеют.
func blurRethreshold(mask gocv.Mat) gocv.Mat {
	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(mask, &blur, image.Pt(gaussianKernel, gaussianKernel), 0, 0, gocv.BorderDefault)
	return thresholdLight(blur, blurRethresh)
}

// medianFilter рвёт горизонтальные и вертикальные линии от теней
// направляющих.
func medianFilter(mask gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.MedianBlur(mask, &dst, medianKernel)
	return dst
}

// logicalOr объединяет две бинарные маски одинакового размера.
func logicalOr(a, b gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.BitwiseOr(a, b, &dst)
	return dst
}

// fillSmall закрашивает связные компоненты площадью меньше minArea —
// точечный шум, оставшийся после фильтров.
func fillSmall(mask gocv.Mat, minArea float64) gocv.Mat {
	clean := mask.Clone()
	contours := gocv.FindContours(mask, gocv.RetrievalCComp, gocv.ChainApproxSimple)
	defer contours.Close()

	black := color.RGBA{}
	for i := 0; i < contours.Size(); i++ {
		if gocv.ContourArea(contours.At(i)) < minArea {
			gocv.DrawContours(&clean, contours, i, black, -1)
		}
	}
	return clean
}

// dilateMask расширяет белую область на один пиксель: перед переносом
// между сенсорами маска намеренно становится более щедрой.
func dilateMask(mask gocv.Mat) gocv.Mat {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	dst := gocv.NewMat()
	gocv.Dilate(mask, &dst, kernel)
	return dst
}
