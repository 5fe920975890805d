package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insight-server/internal/categorize"
)

// CategorizeBody is the request body for categorizing a transaction.
type CategorizeBody struct {
	Description string `json:"description" required:"true" doc:"Transaction description"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount, used as a fallback signal"`
}

// CategorizeInput is the Huma input for categorizing a transaction.
type CategorizeInput struct {
	Body CategorizeBody
}

// CategorizeResponseBody is the response body for a categorization.
type CategorizeResponseBody struct {
	Category     string   `json:"category" doc:"Suggested category"`
	Confidence   float64  `json:"confidence" doc:"Confidence in the suggestion, 0 to 0.95"`
	Alternatives []string `json:"alternatives,omitempty" doc:"Up to two runner-up categories"`
}

// CategorizeOutput is the Huma output for a categorization.
type CategorizeOutput struct {
	Body CategorizeResponseBody
}

// transactionCategorizer is the interface for suggesting categories.
type transactionCategorizer interface {
	CategorizeTransaction(description string, amount decimal.Decimal) categorize.Result
}

// CategorizeHandler handles POST /v1/categorize.
type CategorizeHandler struct {
	Service transactionCategorizer
}

// NewCategorizeHandler creates a new CategorizeHandler.
func NewCategorizeHandler(svc transactionCategorizer) *CategorizeHandler {
	return &CategorizeHandler{Service: svc}
}

// Register registers the categorize endpoint with the Huma API.
func (h *CategorizeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "categorize-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/categorize",
		Summary:     "Categorize transaction",
		Description: "Suggests a spending category for a transaction description.",
		Tags:        []string{"Categorization"},
	}, h.handle)
}

func (h *CategorizeHandler) handle(ctx context.Context, input *CategorizeInput) (*CategorizeOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	result := h.Service.CategorizeTransaction(input.Body.Description, amount)

	alternatives := make([]string, len(result.Alternatives))
	for i, alternative := range result.Alternatives {
		alternatives[i] = string(alternative)
	}

	return &CategorizeOutput{Body: CategorizeResponseBody{
		Category:     string(result.Category),
		Confidence:   result.Confidence,
		Alternatives: alternatives,
	}}, nil
}
