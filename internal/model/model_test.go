package model

import (
	"errors"
	"testing"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"", DefaultPeriod, false},
		{"1d", Period1D, false},
		{"30d", Period30D, false},
		{"365d", Period365D, false},
		{"2w", "", true},
		{"30D", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePeriod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMethod("vix"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestGARCHParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  GARCHParams
		wantErr bool
	}{
		{"defaults", GARCHParams{Omega: 1e-6, Alpha: 0.1, Beta: 0.85}, false},
		{"zero alpha and beta", GARCHParams{Omega: 1e-6}, false},
		{"persistence at one", GARCHParams{Omega: 1e-6, Alpha: 0.2, Beta: 0.8}, true},
		{"zero omega", GARCHParams{Alpha: 0.1, Beta: 0.85}, true},
		{"negative alpha", GARCHParams{Omega: 1e-6, Alpha: -0.01, Beta: 0.5}, true},
		{"negative beta", GARCHParams{Omega: 1e-6, Alpha: 0.1, Beta: -0.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("GARCHParams.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPriceSeries(t *testing.T) {
	s, err := NewPriceSeries("BTC", Period1D, []int64{1, 2, 3}, []float64{10, 11, 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prices := s.Prices()
	if len(prices) != 3 || prices[2] != 12 {
		t.Errorf("unexpected prices: %v", prices)
	}
	last, ok := s.Last()
	if !ok || last.Timestamp != 3 {
		t.Errorf("unexpected last point: %+v", last)
	}
	if _, err := NewPriceSeries("BTC", Period1D, []int64{1}, []float64{10, 11}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestReportPrimary(t *testing.T) {
	r := &VolatilityReport{}
	if _, ok := r.Primary(); ok {
		t.Error("expected no primary reading for an empty report")
	}
	r.Results = []DVOLResult{
		{Method: MethodSimple, Confidence: 40},
		{Method: MethodEWMA, Confidence: 90},
		{Method: MethodGARCH, Confidence: 70},
	}
	best, ok := r.Primary()
	if !ok || best.Method != MethodEWMA {
		t.Errorf("expected ewma as primary, got %+v", best)
	}
	if g, ok := r.Result(MethodGARCH); !ok || g.Confidence != 70 {
		t.Errorf("unexpected garch result: %+v", g)
	}
}
