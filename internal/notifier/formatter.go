package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"VolSentinel/internal/model"
	"VolSentinel/internal/recorder"
	"VolSentinel/internal/tracker"
)

var regimeEmoji = map[string]string{
	"extreme":  "🔴",
	"high":     "🟠",
	"elevated": "🟡",
	"normal":   "🟢",
	"calm":     "🔵",
}

func emojiFor(label string) string {
	if e, ok := regimeEmoji[label]; ok {
		return e
	}
	return "⚪"
}

// FormatVolatilityReport formats a report into a Telegram message.
func FormatVolatilityReport(r *model.VolatilityReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>VolSentinel</b> | %s %s | %s\n\n",
		html.EscapeString(r.Symbol), r.Period, r.GeneratedAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Last price: %.2f\n", r.LastPrice))
	b.WriteString(fmt.Sprintf("Source: %s (%d points)\n", html.EscapeString(r.Source), r.DataPoints))
	if m := r.Metrics; m != nil {
		b.WriteString(fmt.Sprintf("Volatility: %.2f%% per period | annualized %.1f%%\n", m.Volatility, m.AnnualizedVolatility))
	}

	if len(r.Results) > 0 {
		b.WriteString("\n📈 <b>DVOL estimates:</b>\n")
		primary, _ := r.Primary()
		for _, res := range r.Results {
			marker := "  "
			if res.Method == primary.Method {
				marker = "▶ "
			}
			b.WriteString(fmt.Sprintf("%s%-6s %6.1f%%  idx %5.1f  conf %3.0f\n",
				marker, res.Method, res.DVOL, res.DVOLIndex, res.Confidence))
		}
	}

	b.WriteString(fmt.Sprintf("\n%s <b>Regime:</b> %s\n", emojiFor(r.Regime.Label), r.Regime.Label))

	if len(r.Warnings) > 0 {
		b.WriteString("\n⚠️ <b>Warnings:</b>\n")
		for _, w := range r.Warnings {
			b.WriteString("• " + html.EscapeString(w) + "\n")
		}
	}
	return b.String()
}

// FormatDiagnostics formats the distribution statistics of a report.
func FormatDiagnostics(r *model.VolatilityReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔬 <b>Diagnostics</b> | %s %s\n\n", html.EscapeString(r.Symbol), r.Period))
	d := r.Diagnostics
	if d == nil {
		b.WriteString("Not enough data for diagnostics.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Autocorrelation (lag 1): %+.3f\n", d.Autocorrelation))
	b.WriteString(fmt.Sprintf("Heteroskedasticity: %+.3f\n", d.Heteroskedasticity))
	b.WriteString(fmt.Sprintf("Skewness: %+.3f\n", d.Skewness))
	b.WriteString(fmt.Sprintf("Excess kurtosis: %+.3f\n", d.Kurtosis))
	return b.String()
}

// FormatRegimeChange formats a regime transition alert.
func FormatRegimeChange(c *tracker.Change) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>Volatility regime change</b> | %s\n\n", emojiFor(c.To.Label), html.EscapeString(c.Symbol)))
	if c.First {
		b.WriteString(fmt.Sprintf("Now: %s (index %.1f)\n", c.To.Label, c.Index))
	} else {
		b.WriteString(fmt.Sprintf("%s → %s\n", c.From.Label, c.To.Label))
		b.WriteString(fmt.Sprintf("DVOL index: %.1f → %.1f\n", c.Previous, c.Index))
	}
	return b.String()
}

// FormatRegimeStatus formats the stored regime of a symbol.
func FormatRegimeStatus(symbol string, snap model.RegimeSnapshot) string {
	return fmt.Sprintf("%s <b>%s</b>: %s\nDVOL index %.1f (%s)\nUpdated: %s\n",
		emojiFor(snap.Regime.Label), html.EscapeString(symbol), snap.Regime.Label,
		snap.DVOLIndex, snap.Method, snap.At.Format(time.DateTime))
}

// FormatHistory formats stored readings, newest first.
func FormatHistory(symbol string, method model.Method, points []recorder.HistoryPoint) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>History</b> | %s %s\n\n", html.EscapeString(symbol), method))
	if len(points) == 0 {
		b.WriteString("No stored readings.\n")
		return b.String()
	}
	for _, p := range points {
		b.WriteString(fmt.Sprintf("%s  %6.1f%%  idx %5.1f  %s\n",
			time.Unix(p.Timestamp, 0).Format("01-02 15:04"), p.DVOL, p.DVOLIndex, p.Regime))
	}
	return b.String()
}
