package container

import (
	app "phenopipe/internal/application"
	"phenopipe/internal/domain/port"
)

type Container struct {
	PipelineService *app.PipelineService
	BatchService    *app.BatchService
}

func New(segmenter port.PlantSegmenter, locator port.PairLocator, results port.ResultRepository, notifier port.Notifier, workers int) *Container {
	pipelineService := app.NewPipelineService(segmenter, locator, results)
	batchService := app.NewBatchService(pipelineService, notifier, workers)

	return &Container{
		PipelineService: pipelineService,
		BatchService:    batchService,
	}
}
