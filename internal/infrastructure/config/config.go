package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the influxline agent.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// AgentConfig controls what the agent samples and how it labels it.
type AgentConfig struct {
	// Measurement is the measurement name runtime samples are written under.
	Measurement string `yaml:"measurement"`

	// Interval is the sampling interval in seconds.
	Interval int `yaml:"interval"`

	// GlobalTags are applied to every written point, in listed order.
	// Tags cannot be removed once the client has started.
	GlobalTags []TagConfig `yaml:"global_tags"`
}

// TagConfig is one key/value pair of the global tag set.
// A YAML list rather than a map: registration order matters.
type TagConfig struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// OutputConfig contains the connection and batching settings.
type OutputConfig struct {
	// URL selects the transport by scheme (http, https, udp, unix, mqtt, mqtts).
	URL string `yaml:"url"`

	// BatchSize is the flush threshold in points.
	BatchSize int `yaml:"batch_size"`

	// FlushIntervalMS is the periodic flush interval in milliseconds.
	// 0 disables periodic flushing (size-triggered flushing still applies).
	FlushIntervalMS int `yaml:"flush_interval_ms"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: INFLUXLINE_SECTION_KEY
// For example: INFLUXLINE_OUTPUT_URL, INFLUXLINE_LOGGING_LEVEL
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Measurement: "runtime",
			Interval:    10,
		},
		Output: OutputConfig{
			BatchSize:       100,
			FlushIntervalMS: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: INFLUXLINE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INFLUXLINE_OUTPUT_URL"); v != "" {
		cfg.Output.URL = v
	}
	if v := os.Getenv("INFLUXLINE_OUTPUT_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.BatchSize = n
		}
	}
	if v := os.Getenv("INFLUXLINE_AGENT_MEASUREMENT"); v != "" {
		cfg.Agent.Measurement = v
	}
	if v := os.Getenv("INFLUXLINE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("INFLUXLINE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of all validation failures, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Output.URL == "" {
		errs = append(errs, "output.url is required (set INFLUXLINE_OUTPUT_URL environment variable)")
	} else if _, err := url.Parse(c.Output.URL); err != nil {
		errs = append(errs, fmt.Sprintf("output.url is not a valid URL: %v", err))
	}
	if c.Output.BatchSize < 0 {
		errs = append(errs, "output.batch_size must not be negative")
	}
	if c.Output.FlushIntervalMS < 0 {
		errs = append(errs, "output.flush_interval_ms must not be negative")
	}

	if c.Agent.Measurement == "" {
		errs = append(errs, "agent.measurement is required")
	}
	if c.Agent.Interval < 1 {
		errs = append(errs, "agent.interval must be at least 1 second")
	}
	for i, tag := range c.Agent.GlobalTags {
		if tag.Key == "" || tag.Value == "" {
			errs = append(errs, fmt.Sprintf("agent.global_tags[%d] needs both key and value", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetSampleInterval returns the sampling interval as a Duration.
func (c *Config) GetSampleInterval() time.Duration {
	return time.Duration(c.Agent.Interval) * time.Second
}

// GetFlushInterval returns the periodic flush interval as a Duration.
func (c *Config) GetFlushInterval() time.Duration {
	return time.Duration(c.Output.FlushIntervalMS) * time.Millisecond
}
