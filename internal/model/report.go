package model

import "time"

// Regime is a named band of the DVOL index.
type Regime struct {
	Label    string  `json:"label"`
	MinIndex float64 `json:"min_index"`
	Alert    bool    `json:"alert"` // worth pushing a notification on entry
}

// VolatilityReport is the final output of one collection run.
type VolatilityReport struct {
	ID          string             `json:"id"`
	Symbol      string             `json:"symbol"`
	Period      Period             `json:"period"`
	Source      string             `json:"source"`
	Synthetic   bool               `json:"synthetic"`
	DataPoints  int                `json:"data_points"`
	LastPrice   float64            `json:"last_price"`
	Metrics     *VolatilityMetrics `json:"metrics,omitempty"`
	Results     []DVOLResult       `json:"results"`
	Diagnostics *DiagnosticsResult `json:"diagnostics,omitempty"`
	Regime      Regime             `json:"regime"`
	Warnings    []string           `json:"warnings,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Primary returns the highest-confidence DVOL reading, or false if none succeeded.
func (r *VolatilityReport) Primary() (DVOLResult, bool) {
	if len(r.Results) == 0 {
		return DVOLResult{}, false
	}
	best := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.Confidence > best.Confidence {
			best = res
		}
	}
	return best, true
}

// Result returns the reading produced by the given method.
func (r *VolatilityReport) Result(m Method) (DVOLResult, bool) {
	for _, res := range r.Results {
		if res.Method == m {
			return res, true
		}
	}
	return DVOLResult{}, false
}

// RegimeSnapshot is the last regime observed for one symbol.
type RegimeSnapshot struct {
	Regime    Regime    `json:"regime"`
	DVOLIndex float64   `json:"dvol_index"`
	Method    Method    `json:"method"`
	ReportID  string    `json:"report_id"`
	At        time.Time `json:"at"`
}

// RegimeState persists the per-symbol regime snapshots between runs.
type RegimeState struct {
	Symbols   map[string]RegimeSnapshot `json:"symbols"`
	UpdatedAt time.Time                 `json:"updated_at"`
}
