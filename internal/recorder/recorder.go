package recorder

import (
	"context"

	"VolSentinel/internal/model"
)

// Recorder persists volatility reports for later analysis.
type Recorder interface {
	RecordReport(ctx context.Context, r *model.VolatilityReport) error
	Close() error
}

var (
	_ Recorder = (*SQLiteRecorder)(nil)
	_ Recorder = (*RedisRecorder)(nil)
	_ Recorder = (*NoopRecorder)(nil)
	_ Recorder = MultiRecorder(nil)
)
