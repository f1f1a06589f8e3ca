package categoryops

import (
	"fmt"
	"math"
)

// safeDiv returns 0 for non-positive denominators. Every ratio in the engine
// goes through here so empty slices never produce NaN or Inf.
func safeDiv(n, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return n / d
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// deltaPercent is the relative change against a baseline; nil when the
// baseline is non-positive, which renders as "no delta" rather than 0%.
func deltaPercent(current, baseline float64) *float64 {
	if baseline <= 0 {
		return nil
	}
	v := (current - baseline) / baseline
	return &v
}

// deltaPp is the difference of two ratios in percentage points.
func deltaPp(current, baseline float64) float64 {
	return (current - baseline) * 100
}

func float64Ptr(v float64) *float64 { return &v }

// formatWan renders an amount in units of ten thousand, one decimal.
func formatWan(v float64) string {
	return fmt.Sprintf("%.1f万", v/10000)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func formatSignedPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v*100)
}

func formatSignedPp(v float64) string {
	return fmt.Sprintf("%+.1fpp", v)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absFloat(v float64) float64 { return math.Abs(v) }
