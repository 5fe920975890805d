package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/insight-server/internal/handlers/v1/anomaly"
	"github.com/carson-networks/insight-server/internal/handlers/v1/category"
	"github.com/carson-networks/insight-server/internal/handlers/v1/challenge"
	"github.com/carson-networks/insight-server/internal/handlers/v1/insight"
	"github.com/carson-networks/insight-server/internal/handlers/v1/prediction"
	"github.com/carson-networks/insight-server/internal/handlers/v1/status"
	"github.com/carson-networks/insight-server/internal/logging"
	"github.com/carson-networks/insight-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.InsightService
}

func (r *Rest) Serve() {
	statusHandler := status.NewHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.Handle("/metrics", promhttp.Handler())

	humaAPI := humago.New(mux, huma.DefaultConfig("insight-server", "1.0.0"))
	humaAPI.UseMiddleware(logging.Middleware(r.Logger))

	category.NewCategorizeHandler(r.Service).Register(humaAPI)
	category.NewCorrectionHandler(r.Service).Register(humaAPI)
	prediction.NewSpendingHandler(r.Service).Register(humaAPI)
	prediction.NewBufferHandler(r.Service).Register(humaAPI)
	prediction.NewGoalETAHandler(r.Service).Register(humaAPI)
	insight.NewInsightsHandler(r.Service).Register(humaAPI)
	insight.NewPatternsHandler(r.Service).Register(humaAPI)
	anomaly.NewDetectHandler(r.Service).Register(humaAPI)
	challenge.NewGenerateHandler(r.Service).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
