package prediction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
	"github.com/carson-networks/insight-server/internal/predict"
)

// GoalETABody is the request body for a goal ETA projection.
type GoalETABody struct {
	Goal         records.Goal          `json:"goal" required:"true" doc:"Savings goal to project"`
	Transactions []records.Transaction `json:"transactions" required:"true" doc:"Transaction snapshot"`
}

// GoalETAInput is the Huma input for a goal ETA projection.
type GoalETAInput struct {
	Body GoalETABody
}

// GoalETAResponseBody is the response body for a goal ETA projection.
type GoalETAResponseBody struct {
	EstimatedDate           string `json:"estimatedDate" doc:"RFC3339 date the goal is expected to be reached"`
	RecommendedWeeklySaving string `json:"recommendedWeeklySaving" doc:"Decimal weekly saving recommendation"`
	RiskLevel               string `json:"riskLevel" doc:"low, medium, or high"`
	Note                    string `json:"note" doc:"Short explanation of the projection"`
}

// GoalETAOutput is the Huma output for a goal ETA projection.
type GoalETAOutput struct {
	Body GoalETAResponseBody
}

// goalProjector is the interface for projecting goal completion.
type goalProjector interface {
	CalculateGoalETA(goal finance.Goal, transactions []finance.Transaction) predict.GoalETA
}

// GoalETAHandler handles POST /v1/predictions/goal-eta.
type GoalETAHandler struct {
	Service goalProjector
}

// NewGoalETAHandler creates a new GoalETAHandler.
func NewGoalETAHandler(svc goalProjector) *GoalETAHandler {
	return &GoalETAHandler{Service: svc}
}

// Register registers the goal ETA endpoint with the Huma API.
func (h *GoalETAHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "calculate-goal-eta",
		Method:      http.MethodPost,
		Path:        "/v1/predictions/goal-eta",
		Summary:     "Calculate goal ETA",
		Description: "Projects when a savings goal will be reached at a sustainable saving rate.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func (h *GoalETAHandler) handle(ctx context.Context, input *GoalETAInput) (*GoalETAOutput, error) {
	goal, err := records.ParseGoal(input.Body.Goal)
	if err != nil {
		return nil, err
	}
	transactions, err := records.ParseTransactions(input.Body.Transactions)
	if err != nil {
		return nil, err
	}

	eta := h.Service.CalculateGoalETA(goal, transactions)

	return &GoalETAOutput{Body: GoalETAResponseBody{
		EstimatedDate:           eta.EstimatedDate.Format(time.RFC3339),
		RecommendedWeeklySaving: eta.RecommendedWeeklySaving.String(),
		RiskLevel:               string(eta.RiskLevel),
		Note:                    eta.Note,
	}}, nil
}
