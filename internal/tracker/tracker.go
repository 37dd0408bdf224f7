package tracker

import (
	"sync"
	"time"

	"VolSentinel/internal/logger"
	"VolSentinel/internal/model"
)

// Change describes a regime transition observed by Update.
type Change struct {
	Symbol   string
	From     model.Regime
	To       model.Regime
	Index    float64
	Previous float64
	First    bool // no earlier reading for the symbol
}

// Tracker remembers the last regime per symbol with concurrency safety.
type Tracker struct {
	mu       sync.Mutex
	state    *model.RegimeState
	filePath string
}

// NewTracker creates a Tracker, loading state from disk.
// An empty filePath keeps state in memory only.
func NewTracker(filePath string) (*Tracker, error) {
	state := &model.RegimeState{Symbols: map[string]model.RegimeSnapshot{}}
	if filePath != "" {
		var err error
		state, err = LoadState(filePath)
		if err != nil {
			return nil, err
		}
	}
	return &Tracker{state: state, filePath: filePath}, nil
}

// Get returns the last snapshot for a symbol.
func (t *Tracker) Get(symbol string) (model.RegimeSnapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap, ok := t.state.Symbols[symbol]
	return snap, ok
}

// Update stores the report's regime and returns the change, if any.
// Reports without a successful DVOL reading leave the state untouched.
func (t *Tracker) Update(r *model.VolatilityReport) (*Change, bool) {
	primary, ok := r.Primary()
	if !ok {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.state.Symbols[r.Symbol]
	t.state.Symbols[r.Symbol] = model.RegimeSnapshot{
		Regime:    r.Regime,
		DVOLIndex: primary.DVOLIndex,
		Method:    primary.Method,
		ReportID:  r.ID,
		At:        time.Now(),
	}
	if err := t.save(); err != nil {
		logger.Error("failed to save regime state: %v", err)
	}

	if seen && prev.Regime.Label == r.Regime.Label {
		return nil, false
	}
	return &Change{
		Symbol:   r.Symbol,
		From:     prev.Regime,
		To:       r.Regime,
		Index:    primary.DVOLIndex,
		Previous: prev.DVOLIndex,
		First:    !seen,
	}, true
}

func (t *Tracker) save() error {
	if t.filePath == "" {
		return nil
	}
	return SaveState(t.filePath, t.state)
}
