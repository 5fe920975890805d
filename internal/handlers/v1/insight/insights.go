package insight

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
	"github.com/carson-networks/insight-server/internal/logging"
)

// InsightsBody is the request body for generating insights.
type InsightsBody struct {
	Transactions []records.Transaction `json:"transactions" required:"true" doc:"Transaction snapshot"`
	Budgets      []records.Budget      `json:"budgets,omitempty" doc:"Active budgets"`
	Goals        []records.Goal        `json:"goals,omitempty" doc:"Active savings goals"`
}

// InsightsInput is the Huma input for generating insights.
type InsightsInput struct {
	Body InsightsBody
}

// Insight is the API response model for a single insight.
type Insight struct {
	ID         string `json:"id" doc:"Insight UUID"`
	Kind       string `json:"kind" doc:"coaching, anomaly, prediction, or comparison"`
	Title      string `json:"title" doc:"Short headline"`
	Message    string `json:"message" doc:"Observation in plain language"`
	Actionable string `json:"actionable,omitempty" doc:"Suggested next step"`
	Priority   string `json:"priority" doc:"low, medium, or high"`
	Category   string `json:"category,omitempty" doc:"Linked category, when category-specific"`
	Date       string `json:"date" doc:"RFC3339 creation date"`
}

// InsightsResponseBody is the response body for generating insights.
type InsightsResponseBody struct {
	Insights []Insight `json:"insights" doc:"Up to five insights, highest priority first"`
}

// InsightsOutput is the Huma output for generating insights.
type InsightsOutput struct {
	Body InsightsResponseBody
}

// insightGenerator is the interface for generating coaching insights.
type insightGenerator interface {
	GenerateInsights(transactions []finance.Transaction, budgets []finance.Budget, goals []finance.Goal) []finance.Insight
}

// InsightsHandler handles POST /v1/insights.
type InsightsHandler struct {
	Service insightGenerator
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(svc insightGenerator) *InsightsHandler {
	return &InsightsHandler{Service: svc}
}

// Register registers the insights endpoint with the Huma API.
func (h *InsightsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-insights",
		Method:      http.MethodPost,
		Path:        "/v1/insights",
		Summary:     "Generate insights",
		Description: "Generates up to five coaching insights from a financial snapshot.",
		Tags:        []string{"Insights"},
	}, h.handle)
}

func (h *InsightsHandler) handle(ctx context.Context, input *InsightsInput) (*InsightsOutput, error) {
	logData := logging.GetLogData(ctx)

	transactions, err := records.ParseTransactions(input.Body.Transactions)
	if err != nil {
		return nil, err
	}
	budgets, err := records.ParseBudgets(input.Body.Budgets)
	if err != nil {
		return nil, err
	}
	goals, err := records.ParseGoals(input.Body.Goals)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("generateInsightsMs")
	}
	insights := h.Service.GenerateInsights(transactions, budgets, goals)
	if stopTimer != nil {
		stopTimer()
	}

	if logData != nil {
		logData.AddData("insightCount", len(insights))
	}

	resp := InsightsResponseBody{Insights: make([]Insight, len(insights))}
	for i, insight := range insights {
		resp.Insights[i] = Insight{
			ID:         insight.ID,
			Kind:       string(insight.Kind),
			Title:      insight.Title,
			Message:    insight.Message,
			Actionable: insight.Actionable,
			Priority:   string(insight.Priority),
			Category:   string(insight.Category),
			Date:       insight.Date.Format(time.RFC3339),
		}
	}

	return &InsightsOutput{Body: resp}, nil
}
