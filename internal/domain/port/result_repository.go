package port

import (
	"context"

	"phenopipe/internal/domain/entity"
)

// ResultRepository — хранилище блоков метрик.
type ResultRepository interface {
	// AppendBlocks дописывает блоки в конец файла результата.
	AppendBlocks(ctx context.Context, path string, blocks []entity.MetricBlock) error
}
