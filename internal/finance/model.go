package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes money going out from money coming in.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// BudgetPeriod is the cadence a budget limit applies to.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
)

// Trend describes the direction of recent spending versus the prior window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// RiskLevel grades how likely a goal is to be met by its deadline.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Priority ranks insights for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// InsightKind is the origin of an insight.
type InsightKind string

const (
	InsightCoaching   InsightKind = "coaching"
	InsightAnomaly    InsightKind = "anomaly"
	InsightPrediction InsightKind = "prediction"
	InsightComparison InsightKind = "comparison"
)

// AnomalyKind is the detection rule that produced an alert.
type AnomalyKind string

const (
	AnomalyUnusualAmount   AnomalyKind = "unusual_amount"
	AnomalyDuplicate       AnomalyKind = "duplicate"
	AnomalyUnusualLocation AnomalyKind = "unusual_location"
	AnomalyUnusualTime     AnomalyKind = "unusual_time"
)

// Severity grades anomaly alerts.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ChallengeKind is the mechanic of a challenge.
type ChallengeKind string

const (
	ChallengeSpending ChallengeKind = "spending"
	ChallengeSaving   ChallengeKind = "saving"
	ChallengeCategory ChallengeKind = "category"
)

// Transaction is an immutable transaction record supplied by the caller.
// Amount is a non-negative value in whole currency units; Kind tells income
// from expense.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Category    Category
	Description string
	Date        time.Time
	Kind        TransactionKind
	AISuggested bool
	Tags        []string
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}

// Budget is a spending limit for a category over a period.
// Spent is always derived from transactions, never stored here.
type Budget struct {
	ID        string
	Category  Category
	Limit     decimal.Decimal
	Period    BudgetPeriod
	StartDate time.Time
	EndDate   time.Time
}

// Goal is a savings goal.
type Goal struct {
	ID            string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	Category      Category
	CreatedAt     time.Time
}

// Insight is a user-facing observation produced by the coaching engine.
// The caller owns retention; the engine only ever creates these.
type Insight struct {
	ID         string
	Kind       InsightKind
	Title      string
	Message    string
	Actionable string
	Priority   Priority
	Category   Category // empty when the insight is not category-specific
	Date       time.Time
	Read       bool
}

// SpendingPattern summarizes a category's recent spending behavior.
type SpendingPattern struct {
	Category       Category
	AverageDaily   decimal.Decimal
	AverageWeekly  decimal.Decimal
	AverageMonthly decimal.Decimal
	Trend          Trend
}

// AnomalyAlert flags a suspicious transaction. Alerts are created fresh on
// every detection pass; cross-call dedup is the caller's job.
type AnomalyAlert struct {
	ID            string
	TransactionID string
	Kind          AnomalyKind
	Severity      Severity
	Message       string
	Suggestion    string
	Date          time.Time
	Dismissed     bool
}

// Badge is the reward attached to a challenge.
type Badge struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Category    Category // CategoryGeneral when not category-specific
}

// Challenge is a caller-owned gamification record. The generator only ever
// produces ChallengeTemplate values; the caller assigns ID, progress, and
// streak on acceptance.
type Challenge struct {
	ID             string
	Title          string
	Description    string
	Kind           ChallengeKind
	TargetCategory Category // empty for general challenges
	TargetAmount   decimal.Decimal
	DurationDays   int
	StartDate      time.Time
	EndDate        time.Time
	Progress       decimal.Decimal
	Streak         int
	Completed      bool
	Badge          *Badge
}

// ChallengeTemplate is an unassigned challenge proposed to the user.
type ChallengeTemplate struct {
	Title          string
	Description    string
	Kind           ChallengeKind
	TargetCategory Category
	TargetAmount   decimal.Decimal
	DurationDays   int
	StartDate      time.Time
	EndDate        time.Time
	Badge          Badge
}

// CorrectionEntry maps description tokens to a user-corrected category.
// Entries take precedence over keyword rules, newest first.
type CorrectionEntry struct {
	Tokens    []string
	Category  Category
	UpdatedAt time.Time
}
