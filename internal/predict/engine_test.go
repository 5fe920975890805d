package predict

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/insight-server/internal/finance"
)

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine := NewEngine(finance.NewSymbolFormatter("₸"))
	engine.now = func() time.Time { return testNow }
	return engine
}

func expense(id string, category finance.Category, amount int64, date time.Time) finance.Transaction {
	return finance.Transaction{
		ID:       id,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     date,
		Kind:     finance.KindExpense,
	}
}

func income(id string, amount int64, date time.Time) finance.Transaction {
	return finance.Transaction{
		ID:       id,
		Amount:   decimal.NewFromInt(amount),
		Category: finance.CategoryIncome,
		Date:     date,
		Kind:     finance.KindIncome,
	}
}

// -- PredictSpending tests --

func TestPredictSpending_NoData(t *testing.T) {
	engine := newTestEngine(t)

	forecast := engine.PredictSpending(nil, finance.CategoryFood, 30)

	assert.True(t, forecast.PredictedAmount.IsZero())
	assert.Zero(t, forecast.Confidence)
	assert.Equal(t, finance.TrendStable, forecast.Trend)
	assert.Equal(t, "Not enough data to forecast.", forecast.Recommendation)
}

func TestPredictSpending_StableTrend(t *testing.T) {
	engine := newTestEngine(t)

	transactions := []finance.Transaction{
		expense("1", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -51)),
		expense("2", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -41)),
		expense("3", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -20)),
		expense("4", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -10)),
	}

	forecast := engine.PredictSpending(transactions, finance.CategoryFood, 30)

	assert.Equal(t, finance.TrendStable, forecast.Trend)
	// 4000 over 51 days, projected 30 days ahead with no multiplier.
	assert.Equal(t, "2353", forecast.PredictedAmount.String())
	assert.InDelta(t, 0.2, forecast.Confidence, 1e-9)
}

func TestPredictSpending_IncreasingTrend(t *testing.T) {
	engine := newTestEngine(t)

	transactions := []finance.Transaction{
		expense("1", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -45)),
		expense("2", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -40)),
		expense("3", finance.CategoryFood, 2000, testNow.AddDate(0, 0, -15)),
		expense("4", finance.CategoryFood, 2000, testNow.AddDate(0, 0, -5)),
	}

	forecast := engine.PredictSpending(transactions, finance.CategoryFood, 30)

	assert.Equal(t, finance.TrendIncreasing, forecast.Trend)
	assert.Contains(t, forecast.Recommendation, "trending up")
}

func TestPredictSpending_DecreasingTrend(t *testing.T) {
	engine := newTestEngine(t)

	transactions := []finance.Transaction{
		expense("1", finance.CategoryFood, 2000, testNow.AddDate(0, 0, -45)),
		expense("2", finance.CategoryFood, 2000, testNow.AddDate(0, 0, -40)),
		expense("3", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -15)),
		expense("4", finance.CategoryFood, 1000, testNow.AddDate(0, 0, -5)),
	}

	forecast := engine.PredictSpending(transactions, finance.CategoryFood, 30)

	assert.Equal(t, finance.TrendDecreasing, forecast.Trend)
}

func TestPredictSpending_ConfidenceCapped(t *testing.T) {
	engine := newTestEngine(t)

	var transactions []finance.Transaction
	for i := 0; i < 25; i++ {
		transactions = append(transactions, expense(fmt.Sprint(i), finance.CategoryFood, 1000, testNow.AddDate(0, 0, -i)))
	}

	forecast := engine.PredictSpending(transactions, finance.CategoryFood, 30)
	assert.InDelta(t, 0.9, forecast.Confidence, 1e-9)
}

func TestPredictSpending_IgnoresOtherCategoriesAndIncome(t *testing.T) {
	engine := newTestEngine(t)

	transactions := []finance.Transaction{
		expense("1", finance.CategoryTransport, 1000, testNow.AddDate(0, 0, -10)),
		income("2", 100000, testNow.AddDate(0, 0, -10)),
	}

	forecast := engine.PredictSpending(transactions, finance.CategoryFood, 30)
	assert.Zero(t, forecast.Confidence)
}

// -- RecommendBuffer tests --

func bufferFixture(amounts []int64) []finance.Transaction {
	transactions := make([]finance.Transaction, len(amounts))
	for i, amount := range amounts {
		transactions[i] = expense(fmt.Sprint(i), finance.CategoryFood, amount, testNow.AddDate(0, 0, -i))
	}
	return transactions
}

func TestRecommendBuffer_InsufficientHistory(t *testing.T) {
	engine := newTestEngine(t)
	budget := finance.Budget{Category: finance.CategoryFood, Limit: decimal.NewFromInt(10000)}

	rec := engine.RecommendBuffer(budget, bufferFixture([]int64{1000, 1000, 1000}))

	assert.Equal(t, "1000", rec.RecommendedBuffer.String())
	assert.Contains(t, rec.Reason, "not enough history")
}

func TestRecommendBuffer_MonotonicInVolatility(t *testing.T) {
	engine := newTestEngine(t)
	budget := finance.Budget{Category: finance.CategoryFood, Limit: decimal.NewFromInt(10000)}

	// cv ≈ 0.09 → 10% buffer.
	stable := engine.RecommendBuffer(budget, bufferFixture([]int64{900, 1100, 900, 1100, 1000}))
	assert.Equal(t, "1000", stable.RecommendedBuffer.String())

	// cv ≈ 0.36 → 15% buffer.
	moderate := engine.RecommendBuffer(budget, bufferFixture([]int64{600, 1400, 600, 1400, 1000}))
	assert.Equal(t, "1500", moderate.RecommendedBuffer.String())

	// cv ≈ 0.72 → 20% buffer.
	volatile := engine.RecommendBuffer(budget, bufferFixture([]int64{200, 1800, 200, 1800, 1000}))
	assert.Equal(t, "2000", volatile.RecommendedBuffer.String())
}

func TestRecommendBuffer_OnlyLastThirtyTransactionsCount(t *testing.T) {
	engine := newTestEngine(t)
	budget := finance.Budget{Category: finance.CategoryFood, Limit: decimal.NewFromInt(10000)}

	// 30 recent stable amounts followed by 5 wild ones too old to be included.
	var transactions []finance.Transaction
	for i := 0; i < 30; i++ {
		transactions = append(transactions, expense(fmt.Sprint(i), finance.CategoryFood, 1000, testNow.AddDate(0, 0, -i)))
	}
	for i := 30; i < 35; i++ {
		transactions = append(transactions, expense(fmt.Sprint(i), finance.CategoryFood, 90000, testNow.AddDate(0, 0, -i-100)))
	}

	rec := engine.RecommendBuffer(budget, transactions)
	assert.Equal(t, "1000", rec.RecommendedBuffer.String(), "wild history outside the 30-transaction window is ignored")
}

// -- CalculateGoalETA tests --

func TestCalculateGoalETA_AlreadyReached(t *testing.T) {
	engine := newTestEngine(t)
	goal := finance.Goal{
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(10000),
		Deadline:      testNow.AddDate(0, 1, 0),
	}

	eta := engine.CalculateGoalETA(goal, nil)

	assert.Equal(t, finance.RiskLow, eta.RiskLevel)
	assert.True(t, eta.RecommendedWeeklySaving.IsZero())
	assert.Equal(t, testNow, eta.EstimatedDate)
}

func TestCalculateGoalETA_FloorAtOneYearPayoff(t *testing.T) {
	engine := newTestEngine(t)
	goal := finance.Goal{
		TargetAmount:  decimal.NewFromInt(5200),
		CurrentAmount: decimal.Zero,
		Deadline:      testNow.AddDate(1, 0, 0),
	}

	// No income at all: raw saving potential is negative, but the
	// recommendation must never drop below remaining/52.
	transactions := []finance.Transaction{
		expense("1", finance.CategoryFood, 3000, testNow.AddDate(0, 0, -5)),
	}

	eta := engine.CalculateGoalETA(goal, transactions)

	assert.Equal(t, "100", eta.RecommendedWeeklySaving.String())
}

func TestCalculateGoalETA_LowRisk(t *testing.T) {
	engine := newTestEngine(t)
	goal := finance.Goal{
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.Zero,
		Deadline:      testNow.AddDate(0, 0, 100),
	}

	transactions := []finance.Transaction{
		income("1", 100000, testNow.AddDate(0, 0, -10)),
		expense("2", finance.CategoryFood, 10000, testNow.AddDate(0, 0, -5)),
	}

	eta := engine.CalculateGoalETA(goal, transactions)

	assert.Equal(t, finance.RiskLow, eta.RiskLevel)
	// 90000 monthly potential → 20785 weekly → 70% slack → 14550.
	assert.Equal(t, "14550", eta.RecommendedWeeklySaving.String())
	assert.Equal(t, testNow.AddDate(0, 0, 7), eta.EstimatedDate)
}

func TestCalculateGoalETA_HighRiskNamesRequiredRate(t *testing.T) {
	engine := newTestEngine(t)
	goal := finance.Goal{
		TargetAmount:  decimal.NewFromInt(52000),
		CurrentAmount: decimal.Zero,
		Deadline:      testNow.AddDate(0, 0, 30),
	}

	eta := engine.CalculateGoalETA(goal, nil)

	assert.Equal(t, finance.RiskHigh, eta.RiskLevel)
	assert.Contains(t, eta.Note, "per week")
}
