package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// PlaceholderStripeKey stands in when STRIPE_SECRET_KEY is missing so the
// server can still boot for local browsing; payment setup will not succeed
// against the real processor with it.
const PlaceholderStripeKey = "sk_test_placeholder"

type Config struct {
	Port            string
	StripeSecretKey string
	StripePublicKey string
	DBDSN           string // empty = in-process memory store
	LogFile         string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	secret := os.Getenv("STRIPE_SECRET_KEY")
	if secret == "" {
		log.Printf("[warn] STRIPE_SECRET_KEY not set; using placeholder key, payments disabled")
		secret = PlaceholderStripeKey
	}
	pub := os.Getenv("STRIPE_PUBLISHABLE_KEY")
	dsn := os.Getenv("DB_DSN")
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:            port,
		StripeSecretKey: secret,
		StripePublicKey: pub,
		DBDSN:           dsn,
		LogFile:         logFile,
	}
	store := "memory"
	if dsn != "" {
		store = "sqlite:" + dsn
	}
	log.Printf("[config] PORT=%s STORE=%s LOG_FILE=%s", cfg.Port, store, cfg.LogFile)
	return cfg
}
