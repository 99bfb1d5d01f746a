package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"phenopipe/internal/domain/port"
)

// PipelineService обрабатывает одну пару VIS/NIR от чтения файлов
// до записи блоков метрик.
type PipelineService struct {
	segmenter port.PlantSegmenter
	locator   port.PairLocator
	results   port.ResultRepository
}

// PairOutcome — итог обработки одной пары для сводки.
type PairOutcome struct {
	VISPath string
	NoPlant bool
	NIRErr  error // NIR-часть не выполнена; VIS-результаты уже записаны
}

// NewPipelineService создаёт сервис обработки пар снимков.
func NewPipelineService(segmenter port.PlantSegmenter, locator port.PairLocator, results port.ResultRepository) *PipelineService {
	return &PipelineService{segmenter: segmenter, locator: locator, results: results}
}

// ProcessPair прогоняет конвейер для одного VIS-снимка. Все сбои локальны
// для пары: «растение не найдено» и ошибка NIR-переноса не мешают другим
// парам и не отменяют уже посчитанные VIS-результаты.
func (s *PipelineService) ProcessPair(ctx context.Context, visPath, resultPath, coresultPath string) (*PairOutcome, error) {
	if s.segmenter == nil {
		return nil, errors.New("segmenter is not configured")
	}

	visData, err := os.ReadFile(visPath)
	if err != nil {
		return nil, fmt.Errorf("read vis image: %w", err)
	}

	var nirData []byte
	var nirErr error
	nirPath, err := s.locator.FindNIR(visPath)
	if err != nil {
		nirErr = err
	} else if nirData, err = os.ReadFile(nirPath); err != nil {
		nirErr = fmt.Errorf("read nir image: %w", err)
		nirData = nil
	}

	res, err := s.segmenter.ProcessPair(ctx, visData, nirData)
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", filepath.Base(visPath), err)
	}

	out := &PairOutcome{VISPath: visPath}
	if res.NoPlant {
		// Пустой горшок или сбой съёмки: валидный терминальный исход.
		out.NoPlant = true
		return out, nil
	}

	if err := s.results.AppendBlocks(ctx, resultPath, res.VIS); err != nil {
		return nil, err
	}

	if nirErr == nil {
		nirErr = res.NIRErr
	}
	if nirErr != nil {
		out.NIRErr = nirErr
		return out, nil
	}

	if len(res.NIR) > 0 {
		if err := s.results.AppendBlocks(ctx, coresultPath, res.NIR); err != nil {
			return nil, err
		}
	}
	return out, nil
}
