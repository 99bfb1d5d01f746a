//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"phenopipe/internal/domain/entity"
	"phenopipe/internal/domain/port"
)

type GoCVSegmenter struct {
	Ratio entity.ConversionRatio
}

// NewGoCVSegmenter создаёт сегментатор-заглушку (сборка без OpenCV).
func NewGoCVSegmenter(debugDir string) *GoCVSegmenter {
	_ = debugDir
	return &GoCVSegmenter{Ratio: entity.DefaultConversionRatio()}
}

// ProcessPair возвращает ошибку, если сборка без тега gocv.
func (s *GoCVSegmenter) ProcessPair(ctx context.Context, visImage, nirImage []byte) (*entity.PairResult, error) {
	_ = ctx
	_ = visImage
	_ = nirImage
	return nil, errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.PlantSegmenter = (*GoCVSegmenter)(nil)
