package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for anchorflow. Values are resolved in
// three layers: built-in defaults, then an optional YAML file, then
// environment variables. Later layers win.
type Config struct {
	Anchor    AnchorConfig    `yaml:"anchor" env:"ANCHOR"`
	Agent     AgentConfig     `yaml:"agent" env:"AGENT"`
	Log       LogConfig       `yaml:"log" env:"LOG"`
	Metrics   MetricsConfig   `yaml:"metrics" env:"METRICS"`
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// AnchorConfig configures the HTTP client for the automation backend.
type AnchorConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// AgentConfig configures the orchestrator agent profile.
type AgentConfig struct {
	Name        string   `yaml:"name" env:"NAME"`
	Model       string   `yaml:"model" env:"MODEL"`
	Instruction string   `yaml:"instruction" env:"INSTRUCTION"`
	Temperature float64  `yaml:"temperature" env:"TEMPERATURE"`
	Tools       []string `yaml:"tools" env:"TOOLS"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level            string   `yaml:"level" env:"LEVEL"`
	Format           string   `yaml:"format" env:"FORMAT"`
	OutputPaths      []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	EnableCaller     bool     `yaml:"enable_caller" env:"ENABLE_CALLER"`
	EnableStacktrace bool     `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// MetricsConfig configures Prometheus metric collection.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// TelemetryConfig configures OpenTelemetry export over OTLP/gRPC.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string  `yaml:"service_name" env:"SERVICE_NAME"`
	SampleRate   float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// Loader resolves a Config from defaults, an optional YAML file and
// environment variables, then runs any registered validators.
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader returns a Loader with the default ANCHORFLOW env prefix and no
// config file.
func NewLoader() *Loader {
	return &Loader{
		envPrefix: "ANCHORFLOW",
	}
}

// WithConfigPath sets the YAML file to load. A missing file is not an error;
// the defaults and environment still apply.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix overrides the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator registers an extra validation function run after loading.
func (l *Loader) WithValidator(fn func(*Config) error) *Loader {
	l.validators = append(l.validators, fn)
	return l
}

// Load resolves the configuration. Order: defaults, YAML file, environment,
// validators.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	for _, validate := range l.validators {
		if err := validate(cfg); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
	}

	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", l.configPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", l.configPath, err)
	}

	return nil
}

func (l *Loader) loadFromEnv(cfg *Config) error {
	return setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix)
}

// setFieldsFromEnv walks the struct recursively, building variable names from
// the env tags joined with underscores under the given prefix.
func setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envName := prefix + "_" + envTag

		if field.Type.Kind() == reflect.Struct {
			if err := setFieldsFromEnv(value, envName); err != nil {
				return err
			}
			continue
		}

		envValue, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		if err := setFieldValue(value, envValue); err != nil {
			return fmt.Errorf("set %s from %s: %w", field.Name, envName, err)
		}
	}

	return nil
}

// setFieldValue converts the string from the environment into the field's
// type. Durations accept both Go duration syntax and bare integers (seconds).
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				secs, serr := strconv.ParseInt(value, 10, 64)
				if serr != nil {
					return fmt.Errorf("invalid duration %q: %w", value, err)
				}
				d = time.Duration(secs) * time.Second
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", value, err)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q: %w", value, err)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q: %w", value, err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool %q: %w", value, err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if trimmed := strings.TrimSpace(p); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			field.Set(reflect.ValueOf(out))
			return nil
		}
		return fmt.Errorf("unsupported slice element type %s", field.Type().Elem().Kind())

	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}

	return nil
}

// MustLoad is Load with a panic on error, for program entry points.
func (l *Loader) MustLoad() *Config {
	cfg, err := l.Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
	return cfg
}

// Load resolves a Config from the given YAML path with the default loader.
func Load(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}

// LoadFromEnv resolves a Config from defaults and environment only.
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}

// Validate checks the configuration for values the rest of the program
// cannot work with. It collects every problem rather than stopping at the
// first one.
func (c *Config) Validate() error {
	var errs []string

	if c.Anchor.BaseURL == "" {
		errs = append(errs, "anchor.base_url is required")
	}
	if c.Anchor.Timeout <= 0 {
		errs = append(errs, "anchor.timeout must be positive")
	}

	if c.Agent.Temperature < 0 || c.Agent.Temperature > 2 {
		errs = append(errs, "agent.temperature must be between 0 and 2")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or console; got %q", c.Log.Format))
	}

	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		errs = append(errs, "telemetry.sample_rate must be between 0 and 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}

	return nil
}
