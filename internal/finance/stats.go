package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// MeanStdDev returns the mean and population standard deviation of values.
// Both are zero for an empty sample.
func MeanStdDev(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += math.Pow(v-mean, 2)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

// SumAmounts totals the amounts of the given transactions.
func SumAmounts(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// Amounts extracts transaction amounts as float64 for statistics.
func Amounts(transactions []Transaction) []float64 {
	values := make([]float64, len(transactions))
	for i, t := range transactions {
		values[i] = t.Amount.InexactFloat64()
	}
	return values
}
