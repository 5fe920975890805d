package challenge

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/insight-server/internal/finance"
)

const (
	budgetPressurePercent = 80.0
	weekOverWeekFactor    = 1.3
	targetReductionFactor = 0.7
	recentWindowDays      = 7
	spendingWindowDays    = 30
)

// watchedCategories are the categories checked for a week-over-week jump.
var watchedCategories = []finance.Category{
	finance.CategoryCoffee,
	finance.CategoryTransport,
	finance.CategoryFood,
	finance.CategoryShopping,
}

// Generator proposes a savings challenge matched to where the user is
// currently overspending.
type Generator struct {
	templates []finance.ChallengeTemplate
	rng       *rand.Rand
	now       func() time.Time
}

// NewGenerator creates a Generator over the given catalog. The rand source is
// injected so callers can make the pick deterministic.
func NewGenerator(templates []finance.ChallengeTemplate, rng *rand.Rand) *Generator {
	return &Generator{templates: templates, rng: rng, now: time.Now}
}

// Key identifies a template across generations, for tracking completion.
func Key(kind finance.ChallengeKind, category finance.Category) string {
	if category == "" {
		category = finance.CategoryGeneral
	}
	return string(kind) + "-" + string(category)
}

// Generate picks one eligible template at random, or nil when every
// candidate has already been completed or nothing needs attention. General
// templates are always candidates; category templates only when the category
// shows budget pressure or a week-over-week jump.
func (g *Generator) Generate(transactions []finance.Transaction, budgets []finance.Budget, completed []string) *finance.ChallengeTemplate {
	problems := g.problemCategories(transactions, budgets)

	problemSet := make(map[finance.Category]bool, len(problems))
	for _, c := range problems {
		problemSet[c] = true
	}
	completedSet := make(map[string]bool, len(completed))
	for _, key := range completed {
		completedSet[key] = true
	}

	var eligible []finance.ChallengeTemplate
	for _, template := range g.templates {
		if completedSet[Key(template.Kind, template.TargetCategory)] {
			continue
		}
		if template.TargetCategory != finance.CategoryGeneral && !problemSet[template.TargetCategory] {
			continue
		}
		eligible = append(eligible, template)
	}
	if len(eligible) == 0 {
		return nil
	}

	picked := eligible[g.rng.Intn(len(eligible))]
	now := g.now()
	picked.TargetAmount = g.targetAmount(picked, transactions)
	picked.StartDate = now
	picked.EndDate = now.AddDate(0, 0, picked.DurationDays)
	return &picked
}

// problemCategories lists categories under budget pressure or with spending
// up more than 30% week over week, in a stable order without duplicates.
func (g *Generator) problemCategories(transactions []finance.Transaction, budgets []finance.Budget) []finance.Category {
	var problems []finance.Category
	seen := make(map[finance.Category]bool)
	add := func(c finance.Category) {
		if !seen[c] {
			seen[c] = true
			problems = append(problems, c)
		}
	}

	for _, budget := range budgets {
		if budget.Limit.LessThanOrEqual(decimal.Zero) {
			continue
		}
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
		if spent.Div(budget.Limit).InexactFloat64()*100 >= budgetPressurePercent {
			add(budget.Category)
		}
	}

	now := g.now()
	weekAgo := now.AddDate(0, 0, -recentWindowDays)
	twoWeeksAgo := now.AddDate(0, 0, -2*recentWindowDays)
	for _, category := range watchedCategories {
		thisWeek := decimal.Zero
		lastWeek := decimal.Zero
		for _, t := range transactions {
			if t.Category != category || !t.IsExpense() {
				continue
			}
			switch {
			case !t.Date.Before(weekAgo):
				thisWeek = thisWeek.Add(t.Amount)
			case !t.Date.Before(twoWeeksAgo):
				lastWeek = lastWeek.Add(t.Amount)
			}
		}
		// A zero prior week still counts: any fresh spend is a jump.
		if thisWeek.GreaterThan(lastWeek.Mul(decimal.NewFromFloat(weekOverWeekFactor))) {
			add(category)
		}
	}

	return problems
}

// targetAmount sizes the challenge at 70% of recent spend: the daily average
// over 30 days for spending challenges, the last week's category total for
// category challenges. Saving challenges carry no target.
func (g *Generator) targetAmount(template finance.ChallengeTemplate, transactions []finance.Transaction) decimal.Decimal {
	now := g.now()
	reduction := decimal.NewFromFloat(targetReductionFactor)

	switch template.Kind {
	case finance.ChallengeSpending:
		cutoff := now.AddDate(0, 0, -spendingWindowDays)
		total := decimal.Zero
		for _, t := range transactions {
			if t.IsExpense() && !t.Date.Before(cutoff) {
				total = total.Add(t.Amount)
			}
		}
		daily := total.Div(decimal.NewFromInt(spendingWindowDays))
		return daily.Mul(reduction).Round(0)
	case finance.ChallengeCategory:
		cutoff := now.AddDate(0, 0, -recentWindowDays)
		total := decimal.Zero
		for _, t := range transactions {
			if t.Category == template.TargetCategory && t.IsExpense() && !t.Date.Before(cutoff) {
				total = total.Add(t.Amount)
			}
		}
		return total.Mul(reduction).Round(0)
	default:
		return decimal.Zero
	}
}
