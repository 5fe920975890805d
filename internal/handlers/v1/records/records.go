// Package records holds the wire models shared by the analysis request
// bodies. Amounts travel as decimal strings and dates as RFC3339, matching
// the rest of the API surface.
package records

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insight-server/internal/finance"
)

// Transaction is the request model for a transaction snapshot entry.
type Transaction struct {
	ID          string   `json:"id" doc:"Caller-assigned transaction ID"`
	Amount      string   `json:"amount" required:"true" doc:"Decimal amount in whole currency units"`
	Category    string   `json:"category" required:"true" doc:"Spending category"`
	Description string   `json:"description" doc:"Free-form description"`
	Date        string   `json:"date" required:"true" doc:"RFC3339 transaction date"`
	Kind        string   `json:"kind" required:"true" enum:"expense,income" doc:"expense or income"`
	Tags        []string `json:"tags,omitempty" doc:"Optional caller tags"`
}

// Budget is the request model for a budget.
type Budget struct {
	ID        string `json:"id" doc:"Caller-assigned budget ID"`
	Category  string `json:"category" required:"true" doc:"Spending category the limit applies to"`
	Limit     string `json:"limit" required:"true" doc:"Decimal spending limit"`
	Period    string `json:"period,omitempty" enum:"weekly,monthly" doc:"Budget cadence, defaults to monthly"`
	StartDate string `json:"startDate" required:"true" doc:"RFC3339 period start"`
	EndDate   string `json:"endDate" required:"true" doc:"RFC3339 period end"`
}

// Goal is the request model for a savings goal.
type Goal struct {
	ID            string `json:"id" doc:"Caller-assigned goal ID"`
	Name          string `json:"name" required:"true" doc:"Display name"`
	TargetAmount  string `json:"targetAmount" required:"true" doc:"Decimal target amount"`
	CurrentAmount string `json:"currentAmount" required:"true" doc:"Decimal amount saved so far"`
	Deadline      string `json:"deadline" required:"true" doc:"RFC3339 deadline"`
	Category      string `json:"category" doc:"Optional linked category"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 creation date, used to estimate saving pace"`
}

// ParseTransaction validates and converts a wire transaction.
func ParseTransaction(t Transaction) (finance.Transaction, error) {
	amount, err := decimal.NewFromString(t.Amount)
	if err != nil {
		return finance.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid transaction amount", err)
	}
	category, err := finance.ParseCategory(t.Category)
	if err != nil {
		return finance.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid transaction category", err)
	}
	date, err := time.Parse(time.RFC3339, t.Date)
	if err != nil {
		return finance.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid transaction date", err)
	}
	kind := finance.TransactionKind(t.Kind)
	if kind != finance.KindExpense && kind != finance.KindIncome {
		return finance.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid transaction kind")
	}

	return finance.Transaction{
		ID:          t.ID,
		Amount:      amount,
		Category:    category,
		Description: t.Description,
		Date:        date,
		Kind:        kind,
		Tags:        t.Tags,
	}, nil
}

// ParseTransactions converts a transaction snapshot, failing on the first
// invalid entry.
func ParseTransactions(wire []Transaction) ([]finance.Transaction, error) {
	transactions := make([]finance.Transaction, len(wire))
	for i, t := range wire {
		parsed, err := ParseTransaction(t)
		if err != nil {
			return nil, err
		}
		transactions[i] = parsed
	}
	return transactions, nil
}

// ParseBudget validates and converts a wire budget.
func ParseBudget(b Budget) (finance.Budget, error) {
	category, err := finance.ParseCategory(b.Category)
	if err != nil {
		return finance.Budget{}, huma.NewError(http.StatusBadRequest, "invalid budget category", err)
	}
	limit, err := decimal.NewFromString(b.Limit)
	if err != nil {
		return finance.Budget{}, huma.NewError(http.StatusBadRequest, "invalid budget limit", err)
	}
	startDate, err := time.Parse(time.RFC3339, b.StartDate)
	if err != nil {
		return finance.Budget{}, huma.NewError(http.StatusBadRequest, "invalid budget startDate", err)
	}
	endDate, err := time.Parse(time.RFC3339, b.EndDate)
	if err != nil {
		return finance.Budget{}, huma.NewError(http.StatusBadRequest, "invalid budget endDate", err)
	}

	period := finance.PeriodMonthly
	if b.Period != "" {
		period = finance.BudgetPeriod(b.Period)
		if period != finance.PeriodWeekly && period != finance.PeriodMonthly {
			return finance.Budget{}, huma.NewError(http.StatusBadRequest, "invalid budget period")
		}
	}

	return finance.Budget{
		ID:        b.ID,
		Category:  category,
		Limit:     limit,
		Period:    period,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// ParseBudgets converts a budget list, failing on the first invalid entry.
func ParseBudgets(wire []Budget) ([]finance.Budget, error) {
	budgets := make([]finance.Budget, len(wire))
	for i, b := range wire {
		parsed, err := ParseBudget(b)
		if err != nil {
			return nil, err
		}
		budgets[i] = parsed
	}
	return budgets, nil
}

// ParseGoal validates and converts a wire goal.
func ParseGoal(g Goal) (finance.Goal, error) {
	targetAmount, err := decimal.NewFromString(g.TargetAmount)
	if err != nil {
		return finance.Goal{}, huma.NewError(http.StatusBadRequest, "invalid goal targetAmount", err)
	}
	currentAmount, err := decimal.NewFromString(g.CurrentAmount)
	if err != nil {
		return finance.Goal{}, huma.NewError(http.StatusBadRequest, "invalid goal currentAmount", err)
	}
	deadline, err := time.Parse(time.RFC3339, g.Deadline)
	if err != nil {
		return finance.Goal{}, huma.NewError(http.StatusBadRequest, "invalid goal deadline", err)
	}

	var category finance.Category
	if g.Category != "" {
		category, err = finance.ParseCategory(g.Category)
		if err != nil {
			return finance.Goal{}, huma.NewError(http.StatusBadRequest, "invalid goal category", err)
		}
	}

	var createdAt time.Time
	if g.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, g.CreatedAt)
		if err != nil {
			return finance.Goal{}, huma.NewError(http.StatusBadRequest, "invalid goal createdAt", err)
		}
	}

	return finance.Goal{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline,
		Category:      category,
		CreatedAt:     createdAt,
	}, nil
}

// ParseGoals converts a goal list, failing on the first invalid entry.
func ParseGoals(wire []Goal) ([]finance.Goal, error) {
	goals := make([]finance.Goal, len(wire))
	for i, g := range wire {
		parsed, err := ParseGoal(g)
		if err != nil {
			return nil, err
		}
		goals[i] = parsed
	}
	return goals, nil
}
