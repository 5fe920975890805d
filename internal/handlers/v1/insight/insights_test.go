package insight

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
)

type mockInsightService struct {
	mock.Mock
}

func (m *mockInsightService) GenerateInsights(transactions []finance.Transaction, budgets []finance.Budget, goals []finance.Goal) []finance.Insight {
	args := m.Called(transactions, budgets, goals)
	insights, _ := args.Get(0).([]finance.Insight)
	return insights
}

func (m *mockInsightService) AnalyzeSpendingPatterns(transactions []finance.Transaction) []finance.SpendingPattern {
	args := m.Called(transactions)
	patterns, _ := args.Get(0).([]finance.SpendingPattern)
	return patterns
}

func newInsightTestAPI(t *testing.T, svc *mockInsightService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewInsightsHandler(svc).Register(api)
	NewPatternsHandler(svc).Register(api)
	return api
}

func TestHTTP_GenerateInsights_Success(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	mockSvc := new(mockInsightService)
	mockSvc.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return([]finance.Insight{{
			ID:       "insight-1",
			Kind:     finance.InsightCoaching,
			Title:    "Your food budget is almost used up",
			Message:  "You have spent 95% of the limit.",
			Priority: finance.PriorityHigh,
			Category: finance.CategoryFood,
			Date:     now,
		}})

	resp := newInsightTestAPI(t, mockSvc).Post("/v1/insights", InsightsBody{
		Transactions: []records.Transaction{{
			ID:       "tx-1",
			Amount:   "9500",
			Category: "food",
			Date:     "2024-06-20T12:00:00Z",
			Kind:     "expense",
		}},
		Budgets: []records.Budget{{
			Category:  "food",
			Limit:     "10000",
			StartDate: "2024-06-01T00:00:00Z",
			EndDate:   "2024-06-30T23:59:59Z",
		}},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body InsightsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Insights, 1)
	assert.Equal(t, "coaching", body.Insights[0].Kind)
	assert.Equal(t, "high", body.Insights[0].Priority)
	assert.Equal(t, now.Format(time.RFC3339), body.Insights[0].Date)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GenerateInsights_PassesParsedBudget(t *testing.T) {
	mockSvc := new(mockInsightService)
	mockSvc.On("GenerateInsights", mock.Anything, mock.MatchedBy(func(budgets []finance.Budget) bool {
		return len(budgets) == 1 &&
			budgets[0].Category == finance.CategoryFood &&
			budgets[0].Limit.Equal(decimal.NewFromInt(10000))
	}), mock.Anything).Return(([]finance.Insight)(nil))

	resp := newInsightTestAPI(t, mockSvc).Post("/v1/insights", InsightsBody{
		Transactions: []records.Transaction{},
		Budgets: []records.Budget{{
			Category:  "food",
			Limit:     "10000",
			StartDate: "2024-06-01T00:00:00Z",
			EndDate:   "2024-06-30T23:59:59Z",
		}},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body InsightsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Insights)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GenerateInsights_InvalidGoal(t *testing.T) {
	mockSvc := new(mockInsightService)

	resp := newInsightTestAPI(t, mockSvc).Post("/v1/insights", InsightsBody{
		Transactions: []records.Transaction{},
		Goals: []records.Goal{{
			Name:          "Vacation",
			TargetAmount:  "a-lot",
			CurrentAmount: "0",
			Deadline:      "2024-12-31T00:00:00Z",
		}},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "GenerateInsights")
}

func TestHTTP_AnalyzePatterns_Success(t *testing.T) {
	mockSvc := new(mockInsightService)
	mockSvc.On("AnalyzeSpendingPatterns", mock.Anything).
		Return([]finance.SpendingPattern{{
			Category:       finance.CategoryCoffee,
			AverageDaily:   decimal.NewFromInt(100),
			AverageWeekly:  decimal.RequireFromString("692.84"),
			AverageMonthly: decimal.NewFromInt(3000),
			Trend:          finance.TrendIncreasing,
		}})

	resp := newInsightTestAPI(t, mockSvc).Post("/v1/insights/patterns", PatternsBody{
		Transactions: []records.Transaction{},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body PatternsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Patterns, 1)
	assert.Equal(t, "coffee", body.Patterns[0].Category)
	assert.Equal(t, "increasing", body.Patterns[0].Trend)
	assert.Equal(t, "692.84", body.Patterns[0].AverageWeekly)
	mockSvc.AssertExpectations(t)
}
