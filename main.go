package main

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/insight-server/api"
	"github.com/carson-networks/insight-server/internal/anomaly"
	"github.com/carson-networks/insight-server/internal/categorize"
	"github.com/carson-networks/insight-server/internal/challenge"
	"github.com/carson-networks/insight-server/internal/coaching"
	"github.com/carson-networks/insight-server/internal/config"
	"github.com/carson-networks/insight-server/internal/finance"
	"github.com/carson-networks/insight-server/internal/logging"
	"github.com/carson-networks/insight-server/internal/predict"
	"github.com/carson-networks/insight-server/internal/service"
	"github.com/carson-networks/insight-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("insight-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)
	formatter := finance.NewSymbolFormatter(envConfig.CurrencySymbol)

	rules := categorize.DefaultRules()
	if envConfig.RulesFile != "" {
		rules, err = categorize.LoadRulesFile(envConfig.RulesFile)
		if err != nil {
			logger.WithError(err).Fatal("categorize.LoadRulesFile")
			return
		}
	}

	categorizer := categorize.NewEngine(rules, dbStorage.Corrections, logger)
	categorizer.LoadCorrections(context.Background())

	svc := service.NewInsightService(
		categorizer,
		predict.NewEngine(formatter),
		anomaly.NewDetector(formatter),
		coaching.NewEngine(formatter),
		challenge.NewGenerator(challenge.DefaultTemplates(), rand.New(rand.NewSource(time.Now().UnixNano()))),
		logger,
		envConfig.AIEnabled,
	)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
