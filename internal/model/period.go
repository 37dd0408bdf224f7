package model

import (
	"fmt"
	"sort"
	"time"
)

// Period is the look-back label a series was fetched for.
type Period string

const (
	Period1D   Period = "1d"
	Period7D   Period = "7d"
	Period30D  Period = "30d"
	Period90D  Period = "90d"
	Period365D Period = "365d"
)

// DefaultPeriod is used when no period is configured.
const DefaultPeriod = Period30D

// ValidPeriods maps every known label to its look-back span.
var ValidPeriods = map[Period]time.Duration{
	Period1D:   24 * time.Hour,
	Period7D:   7 * 24 * time.Hour,
	Period30D:  30 * 24 * time.Hour,
	Period90D:  90 * 24 * time.Hour,
	Period365D: 365 * 24 * time.Hour,
}

// ParsePeriod validates a period label. An empty label yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	p := Period(s)
	if _, ok := ValidPeriods[p]; !ok {
		return "", fmt.Errorf("%w: unknown period %q, must be one of %v", ErrInvalidParameter, s, validPeriodKeys())
	}
	return p, nil
}

// Duration returns the look-back span, or zero for an unknown label.
func (p Period) Duration() time.Duration {
	return ValidPeriods[p]
}

func validPeriodKeys() []string {
	keys := make([]string, 0, len(ValidPeriods))
	for k := range ValidPeriods {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
