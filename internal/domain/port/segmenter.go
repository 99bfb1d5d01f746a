package port

import (
	"context"

	"phenopipe/internal/domain/entity"
)

// PlantSegmenter — ядро выделения силуэта растения.
type PlantSegmenter interface {
	// ProcessPair строит маску растения по VIS-снимку, считает метрики
	// и переносит маску в NIR-пространство. nirImage может быть nil,
	// тогда NIR-часть пропускается.
	ProcessPair(ctx context.Context, visImage, nirImage []byte) (*entity.PairResult, error)
}
