package pricing

import (
	"sort"

	"farmprice/internal/model"

	"github.com/shopspring/decimal"
)

// predictionDepth is how many of the most recent points feed PredictNext.
const predictionDepth = 3

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// PercentChange returns the change from previous to current as a percentage.
// A previous price of zero means "no prior price" and yields zero.
func PercentChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// PredictNext extrapolates the next price from a history sorted latest first.
// It averages the deltas between the three most recent points and adds the
// mean to the latest price, rounding half up to a whole number. This is a
// heuristic with no smoothing or seasonality. An empty history yields zero.
func PredictNext(history []model.PricePoint) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}

	recent := history[:min(predictionDepth, len(history))]
	latest := recent[0].Price

	meanDelta := decimal.Zero
	if deltas := len(recent) - 1; deltas > 0 {
		sum := decimal.Zero
		for i := 0; i < deltas; i++ {
			sum = sum.Add(recent[i].Price.Sub(recent[i+1].Price))
		}
		meanDelta = sum.Div(decimal.NewFromInt(int64(deltas)))
	}

	return latest.Add(meanDelta).Add(half).Floor()
}

// SortHistory returns a copy of history ordered latest first.
// Points observed at the same instant keep their relative order.
func SortHistory(history []model.PricePoint) []model.PricePoint {
	sorted := make([]model.PricePoint, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedAt.After(sorted[j].ObservedAt)
	})
	return sorted
}

// Summarize computes the trend over the window most recent points of history.
// history need not be sorted. A non-positive window uses the whole history.
func Summarize(history []model.PricePoint, window int) model.TrendSummary {
	sorted := SortHistory(history)
	if window > 0 && len(sorted) > window {
		sorted = sorted[:window]
	}

	summary := model.TrendSummary{
		Latest:        decimal.Zero,
		Previous:      decimal.Zero,
		Min:           decimal.Zero,
		Max:           decimal.Zero,
		Predicted:     decimal.Zero,
		ChangePercent: decimal.Zero,
		Points:        sorted,
	}
	if len(sorted) == 0 {
		summary.Points = []model.PricePoint{}
		return summary
	}

	summary.Latest = sorted[0].Price
	summary.Min, summary.Max = sorted[0].Price, sorted[0].Price
	for _, p := range sorted[1:] {
		summary.Min = decimal.Min(summary.Min, p.Price)
		summary.Max = decimal.Max(summary.Max, p.Price)
	}

	// Prefer the point before the latest; fall back to the quote's own
	// previous price when only one observation exists.
	if len(sorted) > 1 {
		summary.Previous = sorted[1].Price
	} else {
		summary.Previous = sorted[0].PreviousPrice
	}

	summary.ChangePercent = PercentChange(summary.Previous, summary.Latest)
	summary.Predicted = PredictNext(sorted)

	return summary
}
