package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// duration lets JSON configs spell intervals either as strings like "12s"
// or as integer nanoseconds.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling; values are
// copied into the runtime Config afterwards.
type jsonConfig struct {
	APIBaseURL      string   `json:"api_base_url"`
	PreviewEndpoint string   `json:"preview_endpoint"`
	PreviewModel    string   `json:"preview_model"`
	RequestTimeout  duration `json:"request_timeout"`
	StatePath       string   `json:"state_path"`
	CheckoutBaseURL string   `json:"checkout_base_url"`
	SuccessURL      string   `json:"success_url"`
	CancelURL       string   `json:"cancel_url"`
}

// parseJSON overlays Config with values from the file named by -c/-config.
// Absent flag means no JSON layer. Read or unmarshal errors panic; loading
// runs once at startup and a broken config file should stop the program.
func parseJSON(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.PreviewEndpoint != "" {
		cfg.PreviewEndpoint = jc.PreviewEndpoint
	}
	if jc.PreviewModel != "" {
		cfg.PreviewModel = jc.PreviewModel
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StatePath != "" {
		cfg.StatePath = jc.StatePath
	}
	if jc.CheckoutBaseURL != "" {
		cfg.CheckoutBaseURL = jc.CheckoutBaseURL
	}
	if jc.SuccessURL != "" {
		cfg.SuccessURL = jc.SuccessURL
	}
	if jc.CancelURL != "" {
		cfg.CancelURL = jc.CancelURL
	}
}
