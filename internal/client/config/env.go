package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first, without overriding variables already
// present in the process environment.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PROMPTMART_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("PROMPTMART_PREVIEW_ENDPOINT"); v != "" {
		cfg.PreviewEndpoint = v
	}
	if v := os.Getenv("PROMPTMART_PREVIEW_MODEL"); v != "" {
		cfg.PreviewModel = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.PreviewAPIKey = v
	}
	if v := os.Getenv("PROMPTMART_STATE_PATH"); v != "" {
		cfg.StatePath = v
	}
	if v := os.Getenv("PROMPTMART_CHECKOUT_URL"); v != "" {
		cfg.CheckoutBaseURL = v
	}
	if v := os.Getenv("PROMPTMART_SUCCESS_URL"); v != "" {
		cfg.SuccessURL = v
	}
	if v := os.Getenv("PROMPTMART_CANCEL_URL"); v != "" {
		cfg.CancelURL = v
	}
	if v := os.Getenv("PROMPTMART_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
