package prediction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
	"github.com/carson-networks/insight-server/internal/predict"
)

// BufferBody is the request body for a budget buffer recommendation.
type BufferBody struct {
	Budget       records.Budget        `json:"budget" required:"true" doc:"Budget to size a buffer for"`
	Transactions []records.Transaction `json:"transactions" required:"true" doc:"Transaction snapshot"`
}

// BufferInput is the Huma input for a buffer recommendation.
type BufferInput struct {
	Body BufferBody
}

// BufferResponseBody is the response body for a buffer recommendation.
type BufferResponseBody struct {
	RecommendedBuffer string `json:"recommendedBuffer" doc:"Decimal buffer on top of the limit"`
	Reason            string `json:"reason" doc:"Why this buffer size was chosen"`
}

// BufferOutput is the Huma output for a buffer recommendation.
type BufferOutput struct {
	Body BufferResponseBody
}

// bufferRecommender is the interface for sizing budget buffers.
type bufferRecommender interface {
	RecommendBuffer(budget finance.Budget, transactions []finance.Transaction) predict.BufferRecommendation
}

// BufferHandler handles POST /v1/predictions/buffer.
type BufferHandler struct {
	Service bufferRecommender
}

// NewBufferHandler creates a new BufferHandler.
func NewBufferHandler(svc bufferRecommender) *BufferHandler {
	return &BufferHandler{Service: svc}
}

// Register registers the buffer endpoint with the Huma API.
func (h *BufferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "recommend-buffer",
		Method:      http.MethodPost,
		Path:        "/v1/predictions/buffer",
		Summary:     "Recommend budget buffer",
		Description: "Sizes a safety buffer for a budget from recent spending volatility.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func (h *BufferHandler) handle(ctx context.Context, input *BufferInput) (*BufferOutput, error) {
	budget, err := records.ParseBudget(input.Body.Budget)
	if err != nil {
		return nil, err
	}
	transactions, err := records.ParseTransactions(input.Body.Transactions)
	if err != nil {
		return nil, err
	}

	recommendation := h.Service.RecommendBuffer(budget, transactions)

	return &BufferOutput{Body: BufferResponseBody{
		RecommendedBuffer: recommendation.RecommendedBuffer.String(),
		Reason:            recommendation.Reason,
	}}, nil
}
