package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"phenopipe/internal/domain/entity"
	"phenopipe/internal/domain/port"
)

// TSVResultRepository дописывает блоки метрик в tab-разделённые файлы.
// Мьютекс сериализует записи от параллельных задач пакетной обработки.
type TSVResultRepository struct {
	mu sync.Mutex
}

// NewTSVResultRepository создаёт хранилище результатов.
func NewTSVResultRepository() *TSVResultRepository {
	return &TSVResultRepository{}
}

// AppendBlocks дописывает каждый блок парой строк: имена полей и значения.
func (r *TSVResultRepository) AppendBlocks(ctx context.Context, path string, blocks []entity.MetricBlock) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open result file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	for _, b := range blocks {
		if err := w.Write(b.Header); err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
		if err := w.Write(b.Data); err != nil {
			return fmt.Errorf("write data row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Проверка реализации интерфейса
var _ port.ResultRepository = (*TSVResultRepository)(nil)
