package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestsTotal tracks facade calls by method, whether served or declined.
var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "insight",
	Subsystem: "service",
	Name:      "requests_total",
	Help:      "Total analysis requests by method.",
}, []string{"method"})

// declinedTotal tracks calls answered with neutral fallbacks because the
// analysis features were switched off.
var declinedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "insight",
	Subsystem: "service",
	Name:      "declined_total",
	Help:      "Total requests answered with fallback values while analysis is disabled.",
})
