package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/sim"
)

// marginalBand is how close to the limit a ratio must be to get a warning.
const marginalBand = 0.9

// StabilityBadge labels a stability ratio against its limit.
func StabilityBadge(s fdm.Stability) string {
	text := fmt.Sprintf("%.4g / %.4g", s.Ratio, s.Limit)
	switch {
	case !s.Stable():
		return StatusUnstable.Render("UNSTABLE " + text)
	case s.Ratio >= marginalBand*s.Limit:
		return StatusMarginal.Render("MARGINAL " + text)
	default:
		return StatusStable.Render("STABLE " + text)
	}
}

// Metrics renders name/value pairs sorted by name.
func Metrics(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	width := 0
	for name := range metrics {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		label := MetricLabel.Render(fmt.Sprintf("%-*s", width, name))
		fmt.Fprintf(&b, "  %s  %s\n", label, MetricValue.Render(fmt.Sprintf("%.6g", metrics[name])))
	}
	return b.String()
}

// Report summarises a finished run.
func Report(result *sim.Result) string {
	var b strings.Builder
	b.WriteString(Title.Render(result.Scheme) + "  " + Subtle.Render(result.Grid.String()) + "\n")
	b.WriteString("stability  " + StabilityBadge(result.Stability) + "\n")
	fmt.Fprintf(&b, "steps      %d\n", result.StepsTaken)
	if peaks := Peaks(result.Frames); len(peaks) > 1 {
		b.WriteString("peak |u|   " + Sparkline(peaks, 60) + "\n")
	}
	if len(result.Metrics) > 0 {
		b.WriteString(Separator(40) + "\nmetrics:\n")
		b.WriteString(Metrics(result.Metrics))
	}
	for _, err := range result.Errors {
		b.WriteString(StatusUnstable.Render(err.Error()) + "\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// Peaks is the max magnitude of each recorded frame.
func Peaks(frames []sim.Frame) []float64 {
	out := make([]float64, len(frames))
	for i, fr := range frames {
		out[i] = fr.Field.MaxAbs()
	}
	return out
}

// MidProfile returns component c along the middle row of f, which is the
// whole field in 1D.
func MidProfile(f *fdm.Field, c int) []float64 {
	row := f.Row(c, f.Ny/2)
	return append([]float64(nil), row...)
}

// Profile plots a line with asciigraph. Series holding NaN or Inf are not
// plottable and yield a one-line notice instead.
func Profile(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return Subtle.Render(caption + ": no data")
	}
	for _, v := range data {
		if !isFinite(v) {
			return StatusUnstable.Render(caption + ": field is not finite")
		}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteRange(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		lo, hi, ok = math.Min(lo, v), math.Max(hi, v), true
	}
	return lo, hi, ok
}
