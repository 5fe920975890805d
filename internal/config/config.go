package config

import (
	"os"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	HTTPPort         string
	CurrencySymbol   string
	AIEnabled        bool
	RulesFile        string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		HTTPPort:         "8080",
		CurrencySymbol:   "₸",
		AIEnabled:        true,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envHTTPPort := os.Getenv("HTTP_PORT")
	envCurrencySymbol := os.Getenv("CURRENCY_SYMBOL")
	envAIEnabled := os.Getenv("AI_ENABLED")
	envRulesFile := os.Getenv("CATEGORY_RULES_FILE")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if len(envCurrencySymbol) != 0 {
		env.CurrencySymbol = envCurrencySymbol
	}

	if len(envAIEnabled) != 0 {
		env.AIEnabled = envAIEnabled == "true" || envAIEnabled == "1"
	}

	if len(envRulesFile) != 0 {
		env.RulesFile = envRulesFile
	}

	return &env, nil
}
