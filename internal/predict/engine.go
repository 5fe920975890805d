package predict

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/insight-server/internal/finance"
)

const (
	trendWindowDays    = 30
	trendThreshold     = 0.15
	confidenceDivisor  = 20.0
	maxConfidence      = 0.9
	weeksPerMonth      = 4.33
	savingSlackFactor  = 0.7
	maxPayoffWeeks     = 52
	bufferHistoryLimit = 30
	minBufferHistory   = 5
)

// SpendingForecast projects category spend over a future window.
type SpendingForecast struct {
	PredictedAmount decimal.Decimal
	Confidence      float64
	Trend           finance.Trend
	Recommendation  string
}

// BufferRecommendation sizes a safety buffer on top of a budget limit.
type BufferRecommendation struct {
	RecommendedBuffer decimal.Decimal
	Reason            string
}

// GoalETA estimates when a savings goal will be reached.
type GoalETA struct {
	EstimatedDate           time.Time
	RecommendedWeeklySaving decimal.Decimal
	RiskLevel               finance.RiskLevel
	Note                    string
}

// Engine produces statistical projections over transaction snapshots. It is
// stateless; every call operates on the collections the caller passes in.
type Engine struct {
	formatter finance.AmountFormatter
	now       func() time.Time
}

// NewEngine creates a prediction engine using the given amount formatter for
// message templates.
func NewEngine(formatter finance.AmountFormatter) *Engine {
	return &Engine{formatter: formatter, now: time.Now}
}

// PredictSpending forecasts expense spend in a category over the next
// daysAhead days. The average daily spend since the oldest transaction is
// scaled by a trend multiplier derived from the last 30 days versus the prior
// 30-60 day window.
func (e *Engine) PredictSpending(transactions []finance.Transaction, category finance.Category, daysAhead int) SpendingForecast {
	var categoryTransactions []finance.Transaction
	for _, t := range transactions {
		if t.Category == category && t.IsExpense() {
			categoryTransactions = append(categoryTransactions, t)
		}
	}

	if len(categoryTransactions) == 0 {
		return SpendingForecast{
			PredictedAmount: decimal.Zero,
			Confidence:      0,
			Trend:           finance.TrendStable,
			Recommendation:  "Not enough data to forecast.",
		}
	}

	now := e.now()
	totalSpent := finance.SumAmounts(categoryTransactions).InexactFloat64()
	oldest := categoryTransactions[0].Date
	for _, t := range categoryTransactions[1:] {
		if t.Date.Before(oldest) {
			oldest = t.Date
		}
	}
	daysCovered := daysBetween(oldest, now)
	if daysCovered < 1 {
		daysCovered = 1
	}
	avgDailySpend := totalSpent / float64(daysCovered)

	trend, multiplier := e.spendingTrend(categoryTransactions, now)

	predicted := math.Round(avgDailySpend * float64(daysAhead) * multiplier)
	confidence := math.Min(float64(len(categoryTransactions))/confidenceDivisor, maxConfidence)

	var recommendation string
	switch trend {
	case finance.TrendIncreasing:
		recommendation = "Spending is trending up. Try trimming it by 10% this month."
	case finance.TrendDecreasing:
		recommendation = "Nice work, spending is trending down. Keep it up."
	default:
		recommendation = "Spending is stable. Everything under control."
	}

	return SpendingForecast{
		PredictedAmount: decimal.NewFromFloat(predicted),
		Confidence:      confidence,
		Trend:           trend,
		Recommendation:  recommendation,
	}
}

// spendingTrend compares mean transaction amounts in the last 30 days against
// the prior 30-60 day window. A swing of more than 15% in either direction
// moves the forecast multiplier by 10%.
func (e *Engine) spendingTrend(transactions []finance.Transaction, now time.Time) (finance.Trend, float64) {
	thirtyDaysAgo := now.AddDate(0, 0, -trendWindowDays)
	sixtyDaysAgo := now.AddDate(0, 0, -2*trendWindowDays)

	var recent, older []float64
	for _, t := range transactions {
		switch {
		case !t.Date.Before(thirtyDaysAgo):
			recent = append(recent, t.Amount.InexactFloat64())
		case !t.Date.Before(sixtyDaysAgo):
			older = append(older, t.Amount.InexactFloat64())
		}
	}

	recentAvg, _ := finance.MeanStdDev(recent)
	olderAvg := recentAvg
	if len(older) > 0 {
		olderAvg, _ = finance.MeanStdDev(older)
	}

	switch {
	case recentAvg > olderAvg*(1+trendThreshold):
		return finance.TrendIncreasing, 1.1
	case recentAvg < olderAvg*(1-trendThreshold):
		return finance.TrendDecreasing, 0.9
	default:
		return finance.TrendStable, 1.0
	}
}

// RecommendBuffer sizes a budget buffer from the volatility of the last 30
// expense transactions in the budget's category, measured as the coefficient
// of variation of their amounts.
func (e *Engine) RecommendBuffer(budget finance.Budget, transactions []finance.Transaction) BufferRecommendation {
	var history []finance.Transaction
	for _, t := range transactions {
		if t.Category == budget.Category && t.IsExpense() {
			history = append(history, t)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	if len(history) > bufferHistoryLimit {
		history = history[:bufferHistoryLimit]
	}

	if len(history) < minBufferHistory {
		return BufferRecommendation{
			RecommendedBuffer: budget.Limit.Mul(decimal.NewFromFloat(0.1)).Round(0),
			Reason:            "Standard 10% buffer (not enough history).",
		}
	}

	mean, stdDev := finance.MeanStdDev(finance.Amounts(history))
	cv := 0.0
	if mean > 0 {
		cv = stdDev / mean
	}

	bufferPercent := 0.1
	reason := "Stable spending, standard buffer."
	switch {
	case cv > 0.5:
		bufferPercent = 0.2
		reason = "High spending volatility, a larger buffer is recommended."
	case cv > 0.3:
		bufferPercent = 0.15
		reason = "Moderate volatility, adding a small extra buffer."
	}

	return BufferRecommendation{
		RecommendedBuffer: budget.Limit.Mul(decimal.NewFromFloat(bufferPercent)).Round(0),
		Reason:            reason,
	}
}

// CalculateGoalETA projects when a goal will be reached. The recommended
// weekly saving is 70% of the last-30-day saving potential, floored at a
// one-year payoff rate so the plan never stretches past 52 weeks.
func (e *Engine) CalculateGoalETA(goal finance.Goal, transactions []finance.Transaction) GoalETA {
	now := e.now()
	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)

	if remaining.LessThanOrEqual(decimal.Zero) {
		return GoalETA{
			EstimatedDate:           now,
			RecommendedWeeklySaving: decimal.Zero,
			RiskLevel:               finance.RiskLow,
			Note:                    "Goal already reached!",
		}
	}

	thirtyDaysAgo := now.AddDate(0, 0, -trendWindowDays)
	var recentIncome, recentExpenses decimal.Decimal
	for _, t := range transactions {
		if t.Date.Before(thirtyDaysAgo) {
			continue
		}
		if t.Kind == finance.KindIncome {
			recentIncome = recentIncome.Add(t.Amount)
		} else if t.IsExpense() {
			recentExpenses = recentExpenses.Add(t.Amount)
		}
	}

	monthlyPotential := recentIncome.Sub(recentExpenses).InexactFloat64()
	weeklyPotential := monthlyPotential / weeksPerMonth
	remainingFloat := remaining.InexactFloat64()

	recommended := math.Max(
		math.Round(weeklyPotential*savingSlackFactor),
		math.Round(remainingFloat/maxPayoffWeeks),
	)
	if recommended < 1 {
		// A tiny remaining amount rounds to zero; a positive rate is still
		// needed to project a finite date.
		recommended = 1
	}

	weeksNeeded := int(math.Ceil(remainingFloat / recommended))
	estimatedDate := now.AddDate(0, 0, weeksNeeded*7)

	daysUntilDeadline := daysBetween(now, goal.Deadline)
	daysNeeded := weeksNeeded * 7

	var riskLevel finance.RiskLevel
	var note string
	switch {
	case float64(daysNeeded) <= float64(daysUntilDeadline)*0.7:
		riskLevel = finance.RiskLow
		note = "The goal is comfortably reachable at the current saving pace."
	case float64(daysNeeded) <= float64(daysUntilDeadline)*1.2:
		riskLevel = finance.RiskMedium
		note = "It will take discipline, but the goal is reachable."
	default:
		riskLevel = finance.RiskHigh
		weeksLeft := float64(daysUntilDeadline) / 7
		if weeksLeft < 1 {
			weeksLeft = 1
		}
		required := decimal.NewFromFloat(math.Round(remainingFloat / weeksLeft))
		note = fmt.Sprintf("Hitting the deadline would require putting aside %s per week.", e.formatter.Format(required))
	}

	return GoalETA{
		EstimatedDate:           estimatedDate,
		RecommendedWeeklySaving: decimal.NewFromFloat(recommended),
		RiskLevel:               riskLevel,
		Note:                    note,
	}
}

// daysBetween returns the number of whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
