package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	content := `
agent:
  measurement: "host_metrics"
  interval: 5
  global_tags:
    - key: "site"
      value: "lab"
    - key: "host"
      value: "node-01"
output:
  url: "http://localhost:8086?db=metrics"
  batch_size: 64
  flush_interval_ms: 250
logging:
  level: "debug"
  format: "text"
  output: "stderr"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Agent.Measurement != "host_metrics" {
		t.Errorf("Agent.Measurement = %q, want %q", cfg.Agent.Measurement, "host_metrics")
	}

	if cfg.Output.URL != "http://localhost:8086?db=metrics" {
		t.Errorf("Output.URL = %q, want %q", cfg.Output.URL, "http://localhost:8086?db=metrics")
	}

	if cfg.Output.BatchSize != 64 {
		t.Errorf("Output.BatchSize = %d, want 64", cfg.Output.BatchSize)
	}

	if len(cfg.Agent.GlobalTags) != 2 {
		t.Fatalf("len(Agent.GlobalTags) = %d, want 2", len(cfg.Agent.GlobalTags))
	}

	// Tag order must survive the round trip: tags are applied in listed order.
	if cfg.Agent.GlobalTags[0].Key != "site" || cfg.Agent.GlobalTags[1].Key != "host" {
		t.Errorf("GlobalTags order = [%s %s], want [site host]",
			cfg.Agent.GlobalTags[0].Key, cfg.Agent.GlobalTags[1].Key)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
agent:
  measurement: "runtime"
output:
  url: ""
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty output.url, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Agent: AgentConfig{
				Measurement: "runtime",
				Interval:    10,
			},
			Output: OutputConfig{
				URL:             "udp://localhost:8089",
				BatchSize:       32,
				FlushIntervalMS: 500,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing output URL",
			mutate:  func(c *Config) { c.Output.URL = "" },
			wantErr: true,
		},
		{
			name:    "negative batch size",
			mutate:  func(c *Config) { c.Output.BatchSize = -1 },
			wantErr: true,
		},
		{
			name:    "negative flush interval",
			mutate:  func(c *Config) { c.Output.FlushIntervalMS = -500 },
			wantErr: true,
		},
		{
			name:    "missing measurement",
			mutate:  func(c *Config) { c.Agent.Measurement = "" },
			wantErr: true,
		},
		{
			name:    "zero sample interval",
			mutate:  func(c *Config) { c.Agent.Interval = 0 },
			wantErr: true,
		},
		{
			name: "tag without value",
			mutate: func(c *Config) {
				c.Agent.GlobalTags = []TagConfig{{Key: "site"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetIntervals(t *testing.T) {
	cfg := &Config{
		Agent:  AgentConfig{Interval: 15},
		Output: OutputConfig{FlushIntervalMS: 250},
	}

	if got := cfg.GetSampleInterval().Seconds(); got != 15 {
		t.Errorf("GetSampleInterval() = %v, want 15", got)
	}

	if got := cfg.GetFlushInterval().Milliseconds(); got != 250 {
		t.Errorf("GetFlushInterval() = %v, want 250", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	// Set environment variables
	t.Setenv("INFLUXLINE_OUTPUT_URL", "http://influx.example.com:8086?db=override")
	t.Setenv("INFLUXLINE_OUTPUT_BATCH_SIZE", "200")
	t.Setenv("INFLUXLINE_AGENT_MEASUREMENT", "custom")
	t.Setenv("INFLUXLINE_LOGGING_LEVEL", "warn")
	t.Setenv("INFLUXLINE_LOGGING_FORMAT", "text")

	applyEnvOverrides(cfg)

	if cfg.Output.URL != "http://influx.example.com:8086?db=override" {
		t.Errorf("Output.URL = %q, want override from environment", cfg.Output.URL)
	}

	if cfg.Output.BatchSize != 200 {
		t.Errorf("Output.BatchSize = %d, want 200", cfg.Output.BatchSize)
	}

	if cfg.Agent.Measurement != "custom" {
		t.Errorf("Agent.Measurement = %q, want %q", cfg.Agent.Measurement, "custom")
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}

	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Agent.Measurement == "" {
		t.Error("defaultConfig should have non-empty Agent.Measurement")
	}

	if cfg.Agent.Interval < 1 {
		t.Errorf("defaultConfig Agent.Interval = %d, want at least 1", cfg.Agent.Interval)
	}

	if cfg.Output.BatchSize != 100 {
		t.Errorf("defaultConfig Output.BatchSize = %d, want 100", cfg.Output.BatchSize)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("defaultConfig Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}
