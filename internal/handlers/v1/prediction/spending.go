package prediction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
	"github.com/carson-networks/insight-server/internal/logging"
	"github.com/carson-networks/insight-server/internal/predict"
)

const (
	defaultDaysAhead = 30
	maxDaysAhead     = 365
)

// SpendingBody is the request body for a spending forecast.
type SpendingBody struct {
	Transactions []records.Transaction `json:"transactions" required:"true" doc:"Transaction snapshot"`
	Category     string                `json:"category" required:"true" doc:"Category to forecast"`
	DaysAhead    int                   `json:"daysAhead" minimum:"0" maximum:"365" doc:"Forecast horizon in days, defaults to 30"`
}

// SpendingInput is the Huma input for a spending forecast.
type SpendingInput struct {
	Body SpendingBody
}

// SpendingResponseBody is the response body for a spending forecast.
type SpendingResponseBody struct {
	PredictedAmount string  `json:"predictedAmount" doc:"Decimal forecast for the horizon"`
	Confidence      float64 `json:"confidence" doc:"Forecast confidence, 0 to 0.9"`
	Trend           string  `json:"trend" doc:"increasing, decreasing, or stable"`
	Recommendation  string  `json:"recommendation" doc:"Short guidance derived from the trend"`
}

// SpendingOutput is the Huma output for a spending forecast.
type SpendingOutput struct {
	Body SpendingResponseBody
}

// spendingPredictor is the interface for forecasting category spend.
type spendingPredictor interface {
	PredictSpending(transactions []finance.Transaction, category finance.Category, daysAhead int) predict.SpendingForecast
}

// SpendingHandler handles POST /v1/predictions/spending.
type SpendingHandler struct {
	Service spendingPredictor
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(svc spendingPredictor) *SpendingHandler {
	return &SpendingHandler{Service: svc}
}

// Register registers the spending forecast endpoint with the Huma API.
func (h *SpendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "predict-spending",
		Method:      http.MethodPost,
		Path:        "/v1/predictions/spending",
		Summary:     "Predict spending",
		Description: "Forecasts category spending over the coming days.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

// parseSpendingInput parses and validates the API input. A zero horizon
// falls back to the 30-day default.
func parseSpendingInput(input *SpendingInput) ([]finance.Transaction, finance.Category, int, error) {
	transactions, err := records.ParseTransactions(input.Body.Transactions)
	if err != nil {
		return nil, "", 0, err
	}
	category, err := finance.ParseCategory(input.Body.Category)
	if err != nil {
		return nil, "", 0, huma.NewError(http.StatusBadRequest, "invalid category", err)
	}

	daysAhead := input.Body.DaysAhead
	if daysAhead == 0 {
		daysAhead = defaultDaysAhead
	}
	if daysAhead < 0 || daysAhead > maxDaysAhead {
		return nil, "", 0, huma.NewError(http.StatusBadRequest, "daysAhead out of range")
	}

	return transactions, category, daysAhead, nil
}

func (h *SpendingHandler) handle(ctx context.Context, input *SpendingInput) (*SpendingOutput, error) {
	logData := logging.GetLogData(ctx)
	transactions, category, daysAhead, err := parseSpendingInput(input)
	if err != nil {
		return nil, err
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	forecast := h.Service.PredictSpending(transactions, category, daysAhead)

	return &SpendingOutput{Body: SpendingResponseBody{
		PredictedAmount: forecast.PredictedAmount.String(),
		Confidence:      forecast.Confidence,
		Trend:           string(forecast.Trend),
		Recommendation:  forecast.Recommendation,
	}}, nil
}
