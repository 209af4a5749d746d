package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	PayoutAPIAddress    string `env:"PAYOUT_API_ADDRESS"`
	PayoutWebhookSecret string `env:"PAYOUT_WEBHOOK_SECRET"`
	JWTAdminSecret      string `env:"JWT_ADMIN_SECRET"`

	PayoutInterval   time.Duration `env:"PAYOUT_INTERVAL"`
	PayoutBatchLimit uint          `env:"PAYOUT_BATCH_LIMIT"`
}

func LoadConfig() (*Config, error) {
	// .env опционален, нужен для локальной разработки
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.PayoutAPIAddress == "" {
		return nil, errors.New("payout API address is not set")
	}
	if conf.PayoutWebhookSecret == "" {
		return nil, errors.New("payout webhook secret is not set")
	}
	if conf.JWTAdminSecret == "" {
		return nil, errors.New("admin JWT secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.PayoutAPIAddress, "p", "", "Payout processor API address")
	flag.DurationVar(&flagConfig.PayoutInterval, "i", time.Minute, "Scheduled payout run interval")
	flag.UintVar(&flagConfig.PayoutBatchLimit, "l", 100, "Affiliates per scheduled payout run") //nolint:mnd

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	interval := envConfig.PayoutInterval
	if interval == 0 {
		interval = flagsConfig.PayoutInterval
	}
	batchLimit := envConfig.PayoutBatchLimit
	if batchLimit == 0 {
		batchLimit = flagsConfig.PayoutBatchLimit
	}

	return &Config{
		RunAddress:          defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:         defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:       defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		PayoutAPIAddress:    defaultIfBlank(envConfig.PayoutAPIAddress, flagsConfig.PayoutAPIAddress),
		PayoutWebhookSecret: envConfig.PayoutWebhookSecret,
		JWTAdminSecret:      envConfig.JWTAdminSecret,
		PayoutInterval:      interval,
		PayoutBatchLimit:    batchLimit,
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
