package config

import "time"

// DefaultConfig returns the built-in defaults. The anchor timeout is long
// because infrastructure provisioning calls block until Terraform finishes.
func DefaultConfig() *Config {
	return &Config{
		Anchor: AnchorConfig{
			BaseURL: "http://127.0.0.1:8084",
			Timeout: 5 * time.Minute,
		},
		Agent: AgentConfig{
			Name:        "anchor_orchestrator",
			Model:       "gemini-2.0-flash",
			Temperature: 0.2,
			// Instruction is left empty here; an empty value means the
			// stock orchestrator instruction is used.
			Tools: []string{
				"analyzer",
				"dockerfile_gen",
				"jenkinsfile_gen",
				"get_creds",
				"infra",
				"get_environments",
				"github_webhook_setup",
			},
		},
		Log: LogConfig{
			Level:            "info",
			Format:           "json",
			OutputPaths:      []string{"stdout"},
			EnableCaller:     true,
			EnableStacktrace: false,
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "anchorflow",
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			ServiceName:  "anchorflow",
			SampleRate:   0.1,
		},
	}
}
