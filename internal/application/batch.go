package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"phenopipe/internal/domain/port"
)

// BatchService прогоняет конвейер по множеству независимых пар.
type BatchService struct {
	pipeline *PipelineService
	notifier port.Notifier
	workers  int
}

// BatchSummary — счётчики исходов пакетной обработки.
type BatchSummary struct {
	Processed int // пары с записанными VIS-результатами
	NoPlant   int // пары без растения
	NIRFailed int // пары, у которых не выполнен NIR-перенос
	Failed    int // пары, завершившиеся ошибкой
}

func (b BatchSummary) String() string {
	return fmt.Sprintf("пар обработано: %d, без растения: %d, без NIR: %d, с ошибкой: %d",
		b.Processed, b.NoPlant, b.NIRFailed, b.Failed)
}

// NewBatchService создаёт сервис пакетной обработки.
func NewBatchService(pipeline *PipelineService, notifier port.Notifier, workers int) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{pipeline: pipeline, notifier: notifier, workers: workers}
}

// Run обрабатывает снимки пулом воркеров. Параллелизм только на уровне
// целых пар: внутри пары порядок стадий строгий. Отмена контекста
// действует между парами, начатые пары дорабатываются.
func (b *BatchService) Run(ctx context.Context, visPaths []string, resultPath, coresultPath string) BatchSummary {
	jobs := make(chan string)
	var mu sync.Mutex
	var summary BatchSummary
	var wg sync.WaitGroup

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				out, err := b.pipeline.ProcessPair(ctx, path, resultPath, coresultPath)

				mu.Lock()
				switch {
				case err != nil:
					log.Printf("pair %s: %v", path, err)
					summary.Failed++
				case out.NoPlant:
					log.Printf("pair %s: растение не найдено", path)
					summary.NoPlant++
				default:
					if out.NIRErr != nil {
						log.Printf("pair %s: NIR-перенос пропущен: %v", path, out.NIRErr)
						summary.NIRFailed++
					}
					summary.Processed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, p := range visPaths {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case jobs <- p:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()

	if b.notifier != nil {
		if err := b.notifier.NotifySummary(ctx, summary.String()); err != nil {
			log.Printf("notify summary: %v", err)
		}
	}
	return summary
}
