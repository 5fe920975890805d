package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
)

// CorrectionBody is the request body for reporting a category correction.
type CorrectionBody struct {
	Description string `json:"description" required:"true" doc:"Transaction description the suggestion was made for"`
	Suggested   string `json:"suggested" required:"true" doc:"Category the engine suggested"`
	Correct     string `json:"correct" required:"true" doc:"Category the user picked instead"`
}

// CorrectionInput is the Huma input for reporting a correction.
type CorrectionInput struct {
	Body CorrectionBody
}

// CorrectionOutput is the Huma output for reporting a correction.
type CorrectionOutput struct{}

// correctionLearner is the interface for learning from corrections.
type correctionLearner interface {
	LearnFromCorrection(ctx context.Context, description string, suggested, correct finance.Category)
}

// CorrectionHandler handles POST /v1/categorize/correction.
type CorrectionHandler struct {
	Service correctionLearner
}

// NewCorrectionHandler creates a new CorrectionHandler.
func NewCorrectionHandler(svc correctionLearner) *CorrectionHandler {
	return &CorrectionHandler{Service: svc}
}

// Register registers the correction endpoint with the Huma API.
func (h *CorrectionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "correct-category",
		Method:        http.MethodPost,
		Path:          "/v1/categorize/correction",
		Summary:       "Correct category",
		Description:   "Records a user's category correction so future suggestions improve.",
		Tags:          []string{"Categorization"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *CorrectionHandler) handle(ctx context.Context, input *CorrectionInput) (*CorrectionOutput, error) {
	suggested, err := finance.ParseCategory(input.Body.Suggested)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid suggested category", err)
	}
	correct, err := finance.ParseCategory(input.Body.Correct)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid correct category", err)
	}

	h.Service.LearnFromCorrection(ctx, input.Body.Description, suggested, correct)

	return &CorrectionOutput{}, nil
}
