package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// defaultTaxRatePercent is applied when TAX_RATE_PERCENT is missing or invalid.
const defaultTaxRatePercent = "5"

type Config struct {
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	AppPort        string
	AppEnv         string
	JWTSecret      string
	TaxRatePercent decimal.Decimal
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		AppPort:        os.Getenv("APP_PORT"),
		AppEnv:         os.Getenv("APP_ENV"),
		JWTSecret:      os.Getenv("SECRET_KEY"),
		TaxRatePercent: parseTaxRate(os.Getenv("TAX_RATE_PERCENT")),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func parseTaxRate(raw string) decimal.Decimal {
	if raw == "" {
		raw = defaultTaxRatePercent
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		rate, _ = decimal.NewFromString(defaultTaxRatePercent)
	}

	return rate
}
