package recorder

import (
	"context"
	"errors"

	"VolSentinel/internal/model"
)

// MultiRecorder fans a report out to every recorder; one failing sink does not stop the others.
type MultiRecorder []Recorder

func (m MultiRecorder) RecordReport(ctx context.Context, r *model.VolatilityReport) error {
	var errs []error
	for _, rec := range m {
		if err := rec.RecordReport(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiRecorder) Close() error {
	var errs []error
	for _, rec := range m {
		if err := rec.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
