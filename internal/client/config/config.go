// Package config assembles runtime settings for the promptmart CLI from
// defaults, environment variables (with optional .env file), an optional
// JSON file, and command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the promptmart CLI.
type Config struct {
	// APIBaseURL is the root of the marketplace REST API.
	APIBaseURL string

	// PreviewEndpoint and PreviewModel describe the generative-AI preview
	// service (a generateContent-style API). PreviewAPIKey is the initial
	// key; a key set interactively is persisted and wins on next start.
	PreviewEndpoint string
	PreviewModel    string
	PreviewAPIKey   string

	// RequestTimeout bounds every network call.
	RequestTimeout time.Duration

	// StatePath is the sqlite file holding persisted client state
	// (bearer token, preview API key).
	StatePath string

	// CheckoutBaseURL is the hosted-checkout page prefix; the session id is
	// appended to build the redirect URL. SuccessURL and CancelURL are
	// passed through to the checkout session.
	CheckoutBaseURL string
	SuccessURL      string
	CancelURL       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.PreviewEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	c.PreviewModel = "gemini-2.0-flash"
	c.RequestTimeout = 12 * time.Second
	c.StatePath = "promptmart.db"
	c.CheckoutBaseURL = "https://checkout.stripe.com/pay/"
	c.SuccessURL = "http://localhost:5000/success"
	c.CancelURL = "http://localhost:5000/cancel"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given), and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
