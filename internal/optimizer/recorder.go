package optimizer

import (
	"time"

	"heat-optimizer/internal/analysis"
	"heat-optimizer/internal/model"
)

// Recorder observes completed runs.
type Recorder interface {
	ObserveRun(s model.RunSettings, elapsed time.Duration, summary analysis.Summary)
}

type NopRecorder struct{}

func (NopRecorder) ObserveRun(model.RunSettings, time.Duration, analysis.Summary) {}
