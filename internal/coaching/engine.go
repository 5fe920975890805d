package coaching

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insight-server/internal/finance"
)

const (
	maxInsights          = 5
	budgetWarningPercent = 90.0
	goalAlmostPercent    = 75.0
	monthDropPercent     = -10.0
	monthJumpPercent     = 20.0
	minPatternSample     = 5
	patternWindowDays    = 30
	weeksPerMonth        = 4.33
)

// patternCategories is the fixed set analyzePatterns reports on.
var patternCategories = []finance.Category{
	finance.CategoryFood,
	finance.CategoryTransport,
	finance.CategoryShopping,
	finance.CategoryEntertainment,
	finance.CategoryCoffee,
	finance.CategorySubscriptions,
}

// Engine synthesizes budget, goal, and trend observations into ranked
// user-facing insights. It is stateless over the snapshots it is given.
type Engine struct {
	formatter finance.AmountFormatter
	now       func() time.Time
}

// NewEngine creates a coaching engine using the given amount formatter for
// message templates.
func NewEngine(formatter finance.AmountFormatter) *Engine {
	return &Engine{formatter: formatter, now: time.Now}
}

// GenerateInsights produces at most five insights, generated in priority
// order: exhausted budgets, rising category trends, nearly-complete goals,
// month-over-month comparison, and the top spending category.
func (e *Engine) GenerateInsights(transactions []finance.Transaction, budgets []finance.Budget, goals []finance.Goal) []finance.Insight {
	var insights []finance.Insight

	insights = append(insights, e.budgetInsights(transactions, budgets)...)
	insights = append(insights, e.trendInsights(transactions)...)
	insights = append(insights, e.goalInsights(goals)...)
	insights = append(insights, e.comparisonInsights(transactions)...)
	insights = append(insights, e.topCategoryInsights(transactions)...)

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// budgetInsights warns on budgets that are at least 90% consumed.
func (e *Engine) budgetInsights(transactions []finance.Transaction, budgets []finance.Budget) []finance.Insight {
	var insights []finance.Insight
	for _, budget := range budgets {
		spent := budgetSpent(budget, transactions)
		if budget.Limit.LessThanOrEqual(decimal.Zero) {
			continue
		}
		percentage := spent.Div(budget.Limit).InexactFloat64() * 100
		if percentage < budgetWarningPercent {
			continue
		}

		remaining := budget.Limit.Sub(spent)
		// Daily cut that would bring the pace back to 80% of the limit over a week.
		dailyCut := spent.Sub(budget.Limit.Mul(decimal.NewFromFloat(0.8))).Div(decimal.NewFromInt(7))

		insights = append(insights, finance.Insight{
			ID:         e.newID(),
			Kind:       finance.InsightCoaching,
			Title:      fmt.Sprintf("Your %s budget is almost used up", budget.Category.Label()),
			Message:    fmt.Sprintf("You have spent %d%% of the limit. %s left until the end of the period.", int(math.Round(percentage)), e.formatter.Format(remaining)),
			Actionable: fmt.Sprintf("Try cutting %s spending by %s per day.", budget.Category.Label(), e.formatter.Format(dailyCut)),
			Priority:   finance.PriorityHigh,
			Category:   budget.Category,
			Date:       e.now(),
		})
	}
	return insights
}

// trendInsights suggests a cap for categories whose spend is trending up.
func (e *Engine) trendInsights(transactions []finance.Transaction) []finance.Insight {
	var insights []finance.Insight
	for _, pattern := range e.AnalyzePatterns(transactions) {
		if pattern.Trend != finance.TrendIncreasing {
			continue
		}
		monthlyCap := pattern.AverageMonthly.Mul(decimal.NewFromFloat(1.1))
		insights = append(insights, finance.Insight{
			ID:         e.newID(),
			Kind:       finance.InsightCoaching,
			Title:      fmt.Sprintf("Spending on %s is rising", pattern.Category.Label()),
			Message:    fmt.Sprintf("Your %s spending went up over the last month.", pattern.Category.Label()),
			Actionable: fmt.Sprintf("Try setting a cap of %s for this month.", e.formatter.Format(monthlyCap)),
			Priority:   finance.PriorityMedium,
			Category:   pattern.Category,
			Date:       e.now(),
		})
	}
	return insights
}

// goalInsights celebrates goals that are 75-99% complete.
func (e *Engine) goalInsights(goals []finance.Goal) []finance.Insight {
	var insights []finance.Insight
	for _, goal := range goals {
		if goal.TargetAmount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		progress := goal.CurrentAmount.Div(goal.TargetAmount).InexactFloat64() * 100
		if progress < goalAlmostPercent || progress >= 100 {
			continue
		}

		remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
		actionable := "Keep up the current pace."
		if days := e.daysAtCurrentPace(goal, remaining); days > 0 {
			actionable = fmt.Sprintf("About %d more days at the current pace.", days)
		}

		insights = append(insights, finance.Insight{
			ID:         e.newID(),
			Kind:       finance.InsightCoaching,
			Title:      fmt.Sprintf("Almost there on %q!", goal.Name),
			Message:    fmt.Sprintf("You have saved %d%% of the goal. Only %s to go.", int(math.Round(progress)), e.formatter.Format(remaining)),
			Actionable: actionable,
			Priority:   finance.PriorityHigh,
			Date:       e.now(),
		})
	}
	return insights
}

// daysAtCurrentPace estimates days to finish a goal assuming the historical
// saving rate since the goal was created. Zero when the pace is unknowable.
func (e *Engine) daysAtCurrentPace(goal finance.Goal, remaining decimal.Decimal) int {
	if goal.CreatedAt.IsZero() || goal.CurrentAmount.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	daysSince := e.now().Sub(goal.CreatedAt).Hours() / 24
	if daysSince < 1 {
		daysSince = 1
	}
	pace := goal.CurrentAmount.InexactFloat64() / daysSince
	if pace <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.InexactFloat64() / pace))
}

// comparisonInsights compares this calendar month's expenses with last month's.
func (e *Engine) comparisonInsights(transactions []finance.Transaction) []finance.Insight {
	thisMonth := e.monthlyTotal(transactions, 0)
	lastMonth := e.monthlyTotal(transactions, 1)
	if !lastMonth.IsPositive() {
		return nil
	}

	difference := thisMonth.Sub(lastMonth).Div(lastMonth).InexactFloat64() * 100

	switch {
	case difference < monthDropPercent:
		saved := lastMonth.Sub(thisMonth)
		return []finance.Insight{{
			ID:         e.newID(),
			Kind:       finance.InsightCoaching,
			Title:      "Great savings!",
			Message:    fmt.Sprintf("You spent %d%% less than last month.", int(math.Round(math.Abs(difference)))),
			Actionable: fmt.Sprintf("You saved %s. Keep it up!", e.formatter.Format(saved)),
			Priority:   finance.PriorityLow,
			Date:       e.now(),
		}}
	case difference > monthJumpPercent:
		return []finance.Insight{{
			ID:         e.newID(),
			Kind:       finance.InsightCoaching,
			Title:      "Spending is up",
			Message:    fmt.Sprintf("Expenses are %d%% higher than last month.", int(math.Round(difference))),
			Actionable: "Check the fastest-growing categories and trim them.",
			Priority:   finance.PriorityMedium,
			Date:       e.now(),
		}}
	default:
		return nil
	}
}

// topCategoryInsights reports the single largest spending category of the
// last 30 days and its share of total spend.
func (e *Engine) topCategoryInsights(transactions []finance.Transaction) []finance.Insight {
	totals := e.categoryTotals(transactions, patternWindowDays)
	if len(totals) == 0 {
		return nil
	}

	categories := make([]finance.Category, 0, len(totals))
	grandTotal := decimal.Zero
	for category, total := range totals {
		categories = append(categories, category)
		grandTotal = grandTotal.Add(total)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := totals[categories[i]], totals[categories[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return categories[i] < categories[j]
	})

	top := categories[0]
	share := 0
	if grandTotal.IsPositive() {
		share = int(math.Round(totals[top].Div(grandTotal).InexactFloat64() * 100))
	}

	return []finance.Insight{{
		ID:         e.newID(),
		Kind:       finance.InsightPrediction,
		Title:      "Your biggest spending category",
		Message:    fmt.Sprintf("%s: %s over the last month.", top.Label(), e.formatter.Format(totals[top])),
		Actionable: fmt.Sprintf("That is %d%% of everything you spent.", share),
		Priority:   finance.PriorityLow,
		Category:   top,
		Date:       e.now(),
	}}
}

// AnalyzePatterns computes 30-day spending patterns for the fixed category
// set. A category needs at least five expense transactions to be reported;
// trend compares the last 30 days against the prior 30.
func (e *Engine) AnalyzePatterns(transactions []finance.Transaction) []finance.SpendingPattern {
	now := e.now()
	thirtyDaysAgo := now.AddDate(0, 0, -patternWindowDays)
	sixtyDaysAgo := now.AddDate(0, 0, -2*patternWindowDays)

	var patterns []finance.SpendingPattern
	for _, category := range patternCategories {
		var sampleSize int
		monthlyTotal := decimal.Zero
		previousTotal := decimal.Zero
		for _, t := range transactions {
			if t.Category != category || !t.IsExpense() {
				continue
			}
			sampleSize++
			switch {
			case !t.Date.Before(thirtyDaysAgo):
				monthlyTotal = monthlyTotal.Add(t.Amount)
			case !t.Date.Before(sixtyDaysAgo):
				previousTotal = previousTotal.Add(t.Amount)
			}
		}
		if sampleSize < minPatternSample {
			continue
		}

		trend := finance.TrendStable
		if monthlyTotal.GreaterThan(previousTotal.Mul(decimal.NewFromFloat(1.15))) {
			trend = finance.TrendIncreasing
		} else if monthlyTotal.LessThan(previousTotal.Mul(decimal.NewFromFloat(0.85))) {
			trend = finance.TrendDecreasing
		}

		patterns = append(patterns, finance.SpendingPattern{
			Category:       category,
			AverageDaily:   monthlyTotal.Div(decimal.NewFromInt(patternWindowDays)).Round(2),
			AverageWeekly:  monthlyTotal.Div(decimal.NewFromFloat(weeksPerMonth)).Round(2),
			AverageMonthly: monthlyTotal,
			Trend:          trend,
		})
	}
	return patterns
}

// budgetSpent totals expense transactions in the budget's category and period.
func budgetSpent(budget finance.Budget, transactions []finance.Transaction) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range transactions {
		if t.Category != budget.Category || !t.IsExpense() {
			continue
		}
		if t.Date.Before(budget.StartDate) || t.Date.After(budget.EndDate) {
			continue
		}
		spent = spent.Add(t.Amount)
	}
	return spent
}

// monthlyTotal sums expenses for the calendar month monthsAgo months back.
func (e *Engine) monthlyTotal(transactions []finance.Transaction, monthsAgo int) decimal.Decimal {
	now := e.now()
	target := now.AddDate(0, -monthsAgo, 0)
	start := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, target.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	total := decimal.Zero
	for _, t := range transactions {
		if !t.IsExpense() || t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// categoryTotals sums expenses per category over the trailing window.
func (e *Engine) categoryTotals(transactions []finance.Transaction, days int) map[finance.Category]decimal.Decimal {
	cutoff := e.now().AddDate(0, 0, -days)

	totals := make(map[finance.Category]decimal.Decimal)
	for _, t := range transactions {
		if !t.IsExpense() || t.Date.Before(cutoff) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	return totals
}

func (e *Engine) newID() string {
	return uuid.Must(uuid.NewV4()).String()
}
