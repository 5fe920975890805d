package service

import (
	"context"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/insight-server/internal/categorize"
	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/predict"
)

const (
	disabledBufferPercent = 0.1
	disabledETAWeeks      = 12
	disabledETADays       = 90
	defaultPeerPercentile = 50
)

// Categorizer suggests categories for transaction descriptions and learns
// from corrections.
type Categorizer interface {
	Categorize(description string, amount decimal.Decimal) categorize.Result
	LearnFromCorrection(ctx context.Context, description string, suggested, correct finance.Category)
}

// Predictor produces spending forecasts, buffer sizes, and goal ETAs.
type Predictor interface {
	PredictSpending(transactions []finance.Transaction, category finance.Category, daysAhead int) predict.SpendingForecast
	RecommendBuffer(budget finance.Budget, transactions []finance.Transaction) predict.BufferRecommendation
	CalculateGoalETA(goal finance.Goal, transactions []finance.Transaction) predict.GoalETA
}

// AnomalyDetector flags suspicious transactions in a snapshot.
type AnomalyDetector interface {
	Detect(transactions []finance.Transaction) []finance.AnomalyAlert
}

// Coach turns snapshots into ranked insights and spending patterns.
type Coach interface {
	GenerateInsights(transactions []finance.Transaction, budgets []finance.Budget, goals []finance.Goal) []finance.Insight
	AnalyzePatterns(transactions []finance.Transaction) []finance.SpendingPattern
}

// ChallengeGenerator proposes a savings challenge for the snapshot.
type ChallengeGenerator interface {
	Generate(transactions []finance.Transaction, budgets []finance.Budget, completed []string) *finance.ChallengeTemplate
}

// PeerComparison positions the user's spending against an anonymized cohort.
type PeerComparison struct {
	Percentile int
	Message    string
}

// InsightService is the single entry point for all analysis features. Every
// method degrades to a neutral fallback value when the features are switched
// off, so callers never need to branch on the flag themselves.
type InsightService struct {
	categorizer Categorizer
	predictor   Predictor
	detector    AnomalyDetector
	coach       Coach
	challenges  ChallengeGenerator
	log         *logrus.Logger
	now         func() time.Time

	mu      sync.RWMutex
	enabled bool
}

// NewInsightService creates the facade over the given engines, with analysis
// initially enabled or disabled per the flag.
func NewInsightService(categorizer Categorizer, predictor Predictor, detector AnomalyDetector, coach Coach, challenges ChallengeGenerator, log *logrus.Logger, enabled bool) *InsightService {
	return &InsightService{
		categorizer: categorizer,
		predictor:   predictor,
		detector:    detector,
		coach:       coach,
		challenges:  challenges,
		log:         log,
		now:         time.Now,
		enabled:     enabled,
	}
}

// SetEnabled switches analysis features on or off at runtime.
func (s *InsightService) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Enabled reports whether analysis features are active.
func (s *InsightService) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

func (s *InsightService) declined(method string) bool {
	requestsTotal.WithLabelValues(method).Inc()
	if s.Enabled() {
		return false
	}
	declinedTotal.Inc()
	return true
}

// CategorizeTransaction suggests a category for a description and amount.
// While disabled it returns the fallback category with zero confidence.
func (s *InsightService) CategorizeTransaction(description string, amount decimal.Decimal) categorize.Result {
	if s.declined("categorize") {
		return categorize.Result{Category: finance.CategoryOther, Confidence: 0}
	}
	return s.categorizer.Categorize(description, amount)
}

// LearnFromCorrection records a user's category correction. Disabled mode
// drops the correction.
func (s *InsightService) LearnFromCorrection(ctx context.Context, description string, suggested, correct finance.Category) {
	if s.declined("learn_correction") {
		return
	}
	s.categorizer.LearnFromCorrection(ctx, description, suggested, correct)
}

// PredictSpending forecasts category spend over the next daysAhead days.
func (s *InsightService) PredictSpending(transactions []finance.Transaction, category finance.Category, daysAhead int) predict.SpendingForecast {
	if s.declined("predict_spending") {
		return predict.SpendingForecast{
			PredictedAmount: decimal.Zero,
			Confidence:      0,
			Trend:           finance.TrendStable,
			Recommendation:  "Spending forecasts are disabled.",
		}
	}
	return s.predictor.PredictSpending(transactions, category, daysAhead)
}

// RecommendBuffer sizes a safety buffer for a budget. Disabled mode falls
// back to a flat 10% of the limit.
func (s *InsightService) RecommendBuffer(budget finance.Budget, transactions []finance.Transaction) predict.BufferRecommendation {
	if s.declined("recommend_buffer") {
		return predict.BufferRecommendation{
			RecommendedBuffer: budget.Limit.Mul(decimal.NewFromFloat(disabledBufferPercent)).Round(0),
			Reason:            "Standard 10% buffer.",
		}
	}
	return s.predictor.RecommendBuffer(budget, transactions)
}

// CalculateGoalETA projects when a goal will be reached. Disabled mode
// answers with a flat twelve-week plan.
func (s *InsightService) CalculateGoalETA(goal finance.Goal, transactions []finance.Transaction) predict.GoalETA {
	if s.declined("goal_eta") {
		remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		return predict.GoalETA{
			EstimatedDate:           s.now().AddDate(0, 0, disabledETADays),
			RecommendedWeeklySaving: remaining.Div(decimal.NewFromInt(disabledETAWeeks)).Round(0),
			RiskLevel:               finance.RiskMedium,
			Note:                    "Goal projections are disabled; this is a flat twelve-week plan.",
		}
	}
	return s.predictor.CalculateGoalETA(goal, transactions)
}

// GenerateInsights returns ranked coaching insights, or none while disabled.
func (s *InsightService) GenerateInsights(transactions []finance.Transaction, budgets []finance.Budget, goals []finance.Goal) []finance.Insight {
	if s.declined("insights") {
		return nil
	}
	return s.coach.GenerateInsights(transactions, budgets, goals)
}

// AnalyzeSpendingPatterns returns per-category spending patterns, or none
// while disabled.
func (s *InsightService) AnalyzeSpendingPatterns(transactions []finance.Transaction) []finance.SpendingPattern {
	if s.declined("patterns") {
		return nil
	}
	return s.coach.AnalyzePatterns(transactions)
}

// DetectAnomalies flags suspicious transactions, or none while disabled.
func (s *InsightService) DetectAnomalies(transactions []finance.Transaction) []finance.AnomalyAlert {
	if s.declined("anomalies") {
		return nil
	}
	return s.detector.Detect(transactions)
}

// GenerateChallenge proposes a savings challenge, or nil while disabled or
// when nothing needs attention.
func (s *InsightService) GenerateChallenge(transactions []finance.Transaction, budgets []finance.Budget, completed []string) *finance.ChallengeTemplate {
	if s.declined("challenge") {
		return nil
	}
	template := s.challenges.Generate(transactions, budgets, completed)
	if template != nil && s.log.IsLevelEnabled(logrus.DebugLevel) {
		s.log.Debug("InsightService.GenerateChallenge.picked ", spew.Sdump(template))
	}
	return template
}

// CompareWithPeers positions the user against an anonymized cohort. The user
// must opt in; without consent, or while disabled, no comparison is made.
// Cohort aggregation is not wired up yet, so everyone lands on the median.
func (s *InsightService) CompareWithPeers(transactions []finance.Transaction, optIn bool) *PeerComparison {
	if s.declined("peer_comparison") {
		return nil
	}
	if !optIn {
		return nil
	}
	return &PeerComparison{
		Percentile: defaultPeerPercentile,
		Message:    "Your spending is about average for similar users.",
	}
}
