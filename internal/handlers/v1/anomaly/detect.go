package anomaly

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/handlers/v1/records"
	"github.com/carson-networks/insight-server/internal/logging"
)

// DetectBody is the request body for anomaly detection.
type DetectBody struct {
	Transactions []records.Transaction `json:"transactions" required:"true" doc:"Transaction snapshot"`
}

// DetectInput is the Huma input for anomaly detection.
type DetectInput struct {
	Body DetectBody
}

// Alert is the API response model for an anomaly alert.
type Alert struct {
	ID            string `json:"id" doc:"Deterministic alert ID derived from the transaction"`
	TransactionID string `json:"transactionId" doc:"Transaction the alert refers to"`
	Kind          string `json:"kind" doc:"unusual_amount, duplicate, or unusual_time"`
	Severity      string `json:"severity" doc:"low, medium, or high"`
	Message       string `json:"message" doc:"What looks suspicious"`
	Suggestion    string `json:"suggestion" doc:"What to check"`
	Date          string `json:"date" doc:"RFC3339 detection date"`
}

// DetectResponseBody is the response body for anomaly detection.
type DetectResponseBody struct {
	Alerts []Alert `json:"alerts" doc:"Up to ten alerts, duplicates first"`
}

// DetectOutput is the Huma output for anomaly detection.
type DetectOutput struct {
	Body DetectResponseBody
}

// anomalyDetector is the interface for flagging suspicious transactions.
type anomalyDetector interface {
	DetectAnomalies(transactions []finance.Transaction) []finance.AnomalyAlert
}

// DetectHandler handles POST /v1/anomalies.
type DetectHandler struct {
	Service anomalyDetector
}

// NewDetectHandler creates a new DetectHandler.
func NewDetectHandler(svc anomalyDetector) *DetectHandler {
	return &DetectHandler{Service: svc}
}

// Register registers the anomaly detection endpoint with the Huma API.
func (h *DetectHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "detect-anomalies",
		Method:      http.MethodPost,
		Path:        "/v1/anomalies",
		Summary:     "Detect anomalies",
		Description: "Flags duplicate, outlier, and off-hours transactions in a snapshot.",
		Tags:        []string{"Anomalies"},
	}, h.handle)
}

func (h *DetectHandler) handle(ctx context.Context, input *DetectInput) (*DetectOutput, error) {
	logData := logging.GetLogData(ctx)

	transactions, err := records.ParseTransactions(input.Body.Transactions)
	if err != nil {
		return nil, err
	}

	alerts := h.Service.DetectAnomalies(transactions)

	if logData != nil {
		logData.AddData("alertCount", len(alerts))
	}

	resp := DetectResponseBody{Alerts: make([]Alert, len(alerts))}
	for i, alert := range alerts {
		resp.Alerts[i] = Alert{
			ID:            alert.ID,
			TransactionID: alert.TransactionID,
			Kind:          string(alert.Kind),
			Severity:      string(alert.Severity),
			Message:       alert.Message,
			Suggestion:    alert.Suggestion,
			Date:          alert.Date.Format(time.RFC3339),
		}
	}

	return &DetectOutput{Body: resp}, nil
}
