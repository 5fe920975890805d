package insight

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
)

// PatternsBody is the request body for analyzing spending patterns.
type PatternsBody struct {
	Transactions []records.Transaction `json:"transactions" required:"true" doc:"Transaction snapshot"`
}

// PatternsInput is the Huma input for analyzing spending patterns.
type PatternsInput struct {
	Body PatternsBody
}

// Pattern is the API response model for a category spending pattern.
type Pattern struct {
	Category       string `json:"category" doc:"Spending category"`
	AverageDaily   string `json:"averageDaily" doc:"Decimal average daily spend over 30 days"`
	AverageWeekly  string `json:"averageWeekly" doc:"Decimal average weekly spend over 30 days"`
	AverageMonthly string `json:"averageMonthly" doc:"Decimal total spend over 30 days"`
	Trend          string `json:"trend" doc:"increasing, decreasing, or stable"`
}

// PatternsResponseBody is the response body for analyzing spending patterns.
type PatternsResponseBody struct {
	Patterns []Pattern `json:"patterns" doc:"Patterns for categories with enough history"`
}

// PatternsOutput is the Huma output for analyzing spending patterns.
type PatternsOutput struct {
	Body PatternsResponseBody
}

// patternAnalyzer is the interface for computing spending patterns.
type patternAnalyzer interface {
	AnalyzeSpendingPatterns(transactions []finance.Transaction) []finance.SpendingPattern
}

// PatternsHandler handles POST /v1/insights/patterns.
type PatternsHandler struct {
	Service patternAnalyzer
}

// NewPatternsHandler creates a new PatternsHandler.
func NewPatternsHandler(svc patternAnalyzer) *PatternsHandler {
	return &PatternsHandler{Service: svc}
}

// Register registers the patterns endpoint with the Huma API.
func (h *PatternsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-patterns",
		Method:      http.MethodPost,
		Path:        "/v1/insights/patterns",
		Summary:     "Analyze spending patterns",
		Description: "Computes 30-day spending patterns per category.",
		Tags:        []string{"Insights"},
	}, h.handle)
}

func (h *PatternsHandler) handle(ctx context.Context, input *PatternsInput) (*PatternsOutput, error) {
	transactions, err := records.ParseTransactions(input.Body.Transactions)
	if err != nil {
		return nil, err
	}

	patterns := h.Service.AnalyzeSpendingPatterns(transactions)

	resp := PatternsResponseBody{Patterns: make([]Pattern, len(patterns))}
	for i, pattern := range patterns {
		resp.Patterns[i] = Pattern{
			Category:       string(pattern.Category),
			AverageDaily:   pattern.AverageDaily.String(),
			AverageWeekly:  pattern.AverageWeekly.String(),
			AverageMonthly: pattern.AverageMonthly.String(),
			Trend:          string(pattern.Trend),
		}
	}

	return &PatternsOutput{Body: resp}, nil
}
