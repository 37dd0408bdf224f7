package recorder

import (
	"context"

	"VolSentinel/internal/model"
)

// NoopRecorder is a no-op implementation used when no storage is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReport(_ context.Context, _ *model.VolatilityReport) error { return nil }
func (n *NoopRecorder) Close() error                                                 { return nil }
