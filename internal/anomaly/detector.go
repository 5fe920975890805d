package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/insight-server/internal/finance"
)

const (
	maxAlerts            = 10
	minHistoryForAmounts = 10
	minCategorySample    = 5
	recentPerCategory    = 5
	recentForTimeCheck   = 20
	nightStartHour       = 2
	nightEndHour         = 5
)

// Detector flags duplicate, outlier, and off-hours transactions. Detection is
// a pure pass over the snapshot; alerts are created fresh every call and
// never deduplicated against prior passes.
type Detector struct {
	formatter finance.AmountFormatter
	now       func() time.Time
}

// NewDetector creates a Detector using the given amount formatter for alert
// messages.
func NewDetector(formatter finance.AmountFormatter) *Detector {
	return &Detector{formatter: formatter, now: time.Now}
}

// Detect runs all anomaly rules over the snapshot and returns at most 10
// alerts: duplicates first, then unusual amounts, then unusual times.
func (d *Detector) Detect(transactions []finance.Transaction) []finance.AnomalyAlert {
	var alerts []finance.AnomalyAlert
	alerts = append(alerts, d.findDuplicates(transactions)...)
	alerts = append(alerts, d.findUnusualAmounts(transactions)...)
	alerts = append(alerts, d.findUnusualTimes(transactions)...)

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}

// findDuplicates groups transactions by calendar day and exact amount. Each
// group of two or more yields a single alert referencing the group's first
// transaction in input order.
func (d *Detector) findDuplicates(transactions []finance.Transaction) []finance.AnomalyAlert {
	type group struct {
		first finance.Transaction
		count int
	}
	groups := make(map[string]*group)

	var alerts []finance.AnomalyAlert
	for _, t := range transactions {
		key := t.Date.Format("2006-01-02") + "-" + t.Amount.String()
		g, ok := groups[key]
		if !ok {
			groups[key] = &group{first: t, count: 1}
			continue
		}
		g.count++
		if g.count == 2 {
			alerts = append(alerts, finance.AnomalyAlert{
				ID:            "duplicate-" + g.first.ID,
				TransactionID: g.first.ID,
				Kind:          finance.AnomalyDuplicate,
				Severity:      finance.SeverityMedium,
				Message:       fmt.Sprintf("Similar transactions of %s found on the same day.", d.formatter.Format(g.first.Amount)),
				Suggestion:    "Check whether the bank charged this twice.",
				Date:          d.now(),
			})
		}
	}
	return alerts
}

// findUnusualAmounts flags recent transactions that are far above a category's
// historical profile. The baseline excludes the transaction under test, and
// both conditions must hold: more than two standard deviations above the
// mean, and more than twice the mean, so a wide-but-low-mean category does
// not over-trigger.
func (d *Detector) findUnusualAmounts(transactions []finance.Transaction) []finance.AnomalyAlert {
	if len(transactions) < minHistoryForAmounts {
		return nil
	}

	byCategory := make(map[finance.Category][]finance.Transaction)
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	var alerts []finance.AnomalyAlert
	for _, category := range finance.AllCategories() {
		history := byCategory[category]
		if len(history) < minCategorySample {
			continue
		}

		recent := make([]int, len(history))
		for i := range recent {
			recent[i] = i
		}
		sort.SliceStable(recent, func(i, j int) bool {
			return history[recent[i]].Date.After(history[recent[j]].Date)
		})
		if len(recent) > recentPerCategory {
			recent = recent[:recentPerCategory]
		}

		for _, candidate := range recent {
			t := history[candidate]
			// Exclusion is by position, not ID, so duplicated or empty
			// caller IDs cannot thin out the baseline.
			baseline := make([]float64, 0, len(history)-1)
			for i, h := range history {
				if i == candidate {
					continue
				}
				baseline = append(baseline, h.Amount.InexactFloat64())
			}
			mean, stdDev := finance.MeanStdDev(baseline)

			amount := t.Amount.InexactFloat64()
			if amount > mean+2*stdDev && amount > mean*2 {
				alerts = append(alerts, finance.AnomalyAlert{
					ID:            "unusual-" + t.ID,
					TransactionID: t.ID,
					Kind:          finance.AnomalyUnusualAmount,
					Severity:      finance.SeverityHigh,
					Message: fmt.Sprintf("Unusually large amount: %s against a typical %s.",
						d.formatter.Format(t.Amount), d.formatter.Format(decimal.NewFromFloat(mean))),
					Suggestion: "Make sure this is not a mistake or a fraudulent charge.",
					Date:       d.now(),
				})
			}
		}
	}
	return alerts
}

// findUnusualTimes flags expenses among the 20 most recent transactions that
// happened between 02:00 and 05:59 local time.
func (d *Detector) findUnusualTimes(transactions []finance.Transaction) []finance.AnomalyAlert {
	recent := make([]finance.Transaction, len(transactions))
	copy(recent, transactions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > recentForTimeCheck {
		recent = recent[:recentForTimeCheck]
	}

	var alerts []finance.AnomalyAlert
	for _, t := range recent {
		hour := t.Date.Hour()
		if hour >= nightStartHour && hour <= nightEndHour && t.IsExpense() {
			alerts = append(alerts, finance.AnomalyAlert{
				ID:            "time-" + t.ID,
				TransactionID: t.ID,
				Kind:          finance.AnomalyUnusualTime,
				Severity:      finance.SeverityMedium,
				Message:       fmt.Sprintf("Transaction at an unusual hour: %02d:00.", hour),
				Suggestion:    "Double-check this one, it may not be your purchase.",
				Date:          d.now(),
			})
		}
	}
	return alerts
}
