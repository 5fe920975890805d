package prediction

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
	"github.com/carson-networks/insight-server/internal/predict"
)

type mockPredictor struct {
	mock.Mock
}

func (m *mockPredictor) PredictSpending(transactions []finance.Transaction, category finance.Category, daysAhead int) predict.SpendingForecast {
	args := m.Called(transactions, category, daysAhead)
	return args.Get(0).(predict.SpendingForecast)
}

func (m *mockPredictor) RecommendBuffer(budget finance.Budget, transactions []finance.Transaction) predict.BufferRecommendation {
	args := m.Called(budget, transactions)
	return args.Get(0).(predict.BufferRecommendation)
}

func (m *mockPredictor) CalculateGoalETA(goal finance.Goal, transactions []finance.Transaction) predict.GoalETA {
	args := m.Called(goal, transactions)
	return args.Get(0).(predict.GoalETA)
}

func newPredictionTestAPI(t *testing.T, svc *mockPredictor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewSpendingHandler(svc).Register(api)
	NewBufferHandler(svc).Register(api)
	NewGoalETAHandler(svc).Register(api)
	return api
}

func wireTransaction(id, category, amount, date string) records.Transaction {
	return records.Transaction{
		ID:       id,
		Amount:   amount,
		Category: category,
		Date:     date,
		Kind:     "expense",
	}
}

// -- parseSpendingInput unit tests --

func TestParseSpendingInput_DefaultsDaysAhead(t *testing.T) {
	input := &SpendingInput{Body: SpendingBody{Category: "food"}}

	_, category, daysAhead, err := parseSpendingInput(input)
	assert.NoError(t, err)
	assert.Equal(t, finance.CategoryFood, category)
	assert.Equal(t, 30, daysAhead)
}

func TestParseSpendingInput_UnknownCategory(t *testing.T) {
	input := &SpendingInput{Body: SpendingBody{Category: "crypto"}}

	_, _, _, err := parseSpendingInput(input)
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_PredictSpending_Success(t *testing.T) {
	mockSvc := new(mockPredictor)
	mockSvc.On("PredictSpending", mock.Anything, finance.CategoryFood, 30).
		Return(predict.SpendingForecast{
			PredictedAmount: decimal.NewFromInt(2353),
			Confidence:      0.2,
			Trend:           finance.TrendStable,
			Recommendation:  "Spending is stable. Everything under control.",
		})

	resp := newPredictionTestAPI(t, mockSvc).Post("/v1/predictions/spending", SpendingBody{
		Transactions: []records.Transaction{
			wireTransaction("tx-1", "food", "1000", "2024-06-01T12:00:00Z"),
		},
		Category: "food",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SpendingResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2353", body.PredictedAmount)
	assert.Equal(t, "stable", body.Trend)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_PredictSpending_InvalidTransaction(t *testing.T) {
	mockSvc := new(mockPredictor)

	resp := newPredictionTestAPI(t, mockSvc).Post("/v1/predictions/spending", SpendingBody{
		Transactions: []records.Transaction{
			wireTransaction("tx-1", "food", "not-a-number", "2024-06-01T12:00:00Z"),
		},
		Category: "food",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "PredictSpending")
}

func TestHTTP_RecommendBuffer_Success(t *testing.T) {
	mockSvc := new(mockPredictor)
	mockSvc.On("RecommendBuffer", mock.MatchedBy(func(b finance.Budget) bool {
		return b.Category == finance.CategoryFood && b.Limit.Equal(decimal.NewFromInt(10000))
	}), mock.Anything).Return(predict.BufferRecommendation{
		RecommendedBuffer: decimal.NewFromInt(1500),
		Reason:            "Moderate volatility, adding a small extra buffer.",
	})

	resp := newPredictionTestAPI(t, mockSvc).Post("/v1/predictions/buffer", BufferBody{
		Budget: records.Budget{
			Category:  "food",
			Limit:     "10000",
			StartDate: "2024-06-01T00:00:00Z",
			EndDate:   "2024-06-30T23:59:59Z",
		},
		Transactions: []records.Transaction{},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body BufferResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1500", body.RecommendedBuffer)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_RecommendBuffer_InvalidBudget(t *testing.T) {
	mockSvc := new(mockPredictor)

	resp := newPredictionTestAPI(t, mockSvc).Post("/v1/predictions/buffer", BufferBody{
		Budget: records.Budget{
			Category:  "food",
			Limit:     "lots",
			StartDate: "2024-06-01T00:00:00Z",
			EndDate:   "2024-06-30T23:59:59Z",
		},
		Transactions: []records.Transaction{},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "RecommendBuffer")
}

func TestHTTP_GoalETA_Success(t *testing.T) {
	mockSvc := new(mockPredictor)
	mockSvc.On("CalculateGoalETA", mock.MatchedBy(func(g finance.Goal) bool {
		return g.Name == "Vacation" && g.TargetAmount.Equal(decimal.NewFromInt(100000))
	}), mock.Anything).Return(predict.GoalETA{
		RecommendedWeeklySaving: decimal.NewFromInt(14550),
		RiskLevel:               finance.RiskLow,
		Note:                    "The goal is comfortably reachable at the current saving pace.",
	})

	resp := newPredictionTestAPI(t, mockSvc).Post("/v1/predictions/goal-eta", GoalETABody{
		Goal: records.Goal{
			Name:          "Vacation",
			TargetAmount:  "100000",
			CurrentAmount: "25000",
			Deadline:      "2024-12-31T00:00:00Z",
		},
		Transactions: []records.Transaction{},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GoalETAResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "14550", body.RecommendedWeeklySaving)
	assert.Equal(t, "low", body.RiskLevel)
	mockSvc.AssertExpectations(t)
}
