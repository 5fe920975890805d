package challenge

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
)

// GenerateBody is the request body for generating a challenge.
type GenerateBody struct {
	Transactions []records.Transaction `json:"transactions" required:"true" doc:"Transaction snapshot"`
	Budgets      []records.Budget      `json:"budgets,omitempty" doc:"Active budgets"`
	Completed    []string              `json:"completed,omitempty" doc:"Keys of challenges already completed"`
}

// GenerateInput is the Huma input for generating a challenge.
type GenerateInput struct {
	Body GenerateBody
}

// Badge is the API response model for a challenge badge.
type Badge struct {
	ID          string `json:"id" doc:"Badge ID"`
	Name        string `json:"name" doc:"Display name"`
	Icon        string `json:"icon" doc:"Emoji icon"`
	Description string `json:"description" doc:"How the badge is earned"`
	Category    string `json:"category" doc:"Linked category, general when none"`
}

// Challenge is the API response model for a proposed challenge.
type Challenge struct {
	Title          string `json:"title" doc:"Display title"`
	Description    string `json:"description" doc:"What the user has to do"`
	Kind           string `json:"kind" doc:"spending, saving, or category"`
	TargetCategory string `json:"targetCategory" doc:"Category the challenge targets, general when none"`
	TargetAmount   string `json:"targetAmount" doc:"Decimal spend ceiling, zero for saving challenges"`
	DurationDays   int    `json:"durationDays" doc:"Challenge length in days"`
	StartDate      string `json:"startDate" doc:"RFC3339 start"`
	EndDate        string `json:"endDate" doc:"RFC3339 end"`
	Badge          Badge  `json:"badge" doc:"Badge awarded on completion"`
}

// GenerateResponseBody is the response body for generating a challenge.
type GenerateResponseBody struct {
	Challenge *Challenge `json:"challenge" doc:"Proposed challenge, null when nothing needs attention"`
}

// GenerateOutput is the Huma output for generating a challenge.
type GenerateOutput struct {
	Body GenerateResponseBody
}

// challengeGenerator is the interface for proposing challenges.
type challengeGenerator interface {
	GenerateChallenge(transactions []finance.Transaction, budgets []finance.Budget, completed []string) *finance.ChallengeTemplate
}

// GenerateHandler handles POST /v1/challenges.
type GenerateHandler struct {
	Service challengeGenerator
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(svc challengeGenerator) *GenerateHandler {
	return &GenerateHandler{Service: svc}
}

// Register registers the challenge endpoint with the Huma API.
func (h *GenerateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-challenge",
		Method:      http.MethodPost,
		Path:        "/v1/challenges",
		Summary:     "Generate challenge",
		Description: "Proposes a savings challenge matched to current overspending.",
		Tags:        []string{"Challenges"},
	}, h.handle)
}

func (h *GenerateHandler) handle(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	transactions, err := records.ParseTransactions(input.Body.Transactions)
	if err != nil {
		return nil, err
	}
	budgets, err := records.ParseBudgets(input.Body.Budgets)
	if err != nil {
		return nil, err
	}

	template := h.Service.GenerateChallenge(transactions, budgets, input.Body.Completed)
	if template == nil {
		return &GenerateOutput{Body: GenerateResponseBody{}}, nil
	}

	return &GenerateOutput{Body: GenerateResponseBody{Challenge: &Challenge{
		Title:          template.Title,
		Description:    template.Description,
		Kind:           string(template.Kind),
		TargetCategory: string(template.TargetCategory),
		TargetAmount:   template.TargetAmount.String(),
		DurationDays:   template.DurationDays,
		StartDate:      template.StartDate.Format(time.RFC3339),
		EndDate:        template.EndDate.Format(time.RFC3339),
		Badge: Badge{
			ID:          template.Badge.ID,
			Name:        template.Badge.Name,
			Icon:        template.Badge.Icon,
			Description: template.Badge.Description,
			Category:    string(template.Badge.Category),
		},
	}}}, nil
}
