package config

import (
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/vdom"
)

const (
	// ConfigName is the base name of the configuration file (reactor.yaml).
	ConfigName = "reactor"

	// EnvPrefix prefixes environment overrides, e.g. REACTOR_LOG_LEVEL.
	EnvPrefix = "REACTOR"

	// DefaultAddr is the default playground server address.
	DefaultAddr = ":8080"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "reactor"
)

var validate = validator.New()

// Config represents the complete reactor.yaml configuration.
type Config struct {
	// Log selects the log handler and level.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Render configures the reconciler.
	Render RenderConfig `mapstructure:"render" yaml:"render"`

	// Reactive configures the reactive runtime.
	Reactive ReactiveConfig `mapstructure:"reactive" yaml:"reactive"`

	// Server configures the diff playground.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Metrics configures the Prometheus collectors.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Bench configures the benchmark runner.
	Bench BenchConfig `mapstructure:"bench" yaml:"bench"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`

	// Format is text or json.
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// RenderConfig contains reconciler configuration.
type RenderConfig struct {
	// Strategy is the list reconciliation strategy.
	Strategy string `mapstructure:"strategy" yaml:"strategy" validate:"oneof=quick index keyed double double-ended"`
}

// ReactiveConfig contains reactive runtime configuration.
type ReactiveConfig struct {
	// Strict turns runtime warnings into panics.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// ServerConfig contains playground server configuration.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr" yaml:"addr" validate:"required"`

	// ReadTimeout bounds request reads and idle WebSocket sessions.
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gte=0"`

	// WriteTimeout bounds response and frame writes.
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gte=0"`

	// MaxMessageSize bounds request bodies and WebSocket frames.
	MaxMessageSize int64 `mapstructure:"max_message_size" yaml:"max_message_size" validate:"gte=0"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace" yaml:"namespace" validate:"required"`
}

// BenchConfig contains benchmark configuration.
type BenchConfig struct {
	// Profile is fast, standard or stress.
	Profile string `mapstructure:"profile" yaml:"profile" validate:"oneof=fast standard stress"`

	// Iterations overrides the profile's iteration count when positive.
	Iterations int `mapstructure:"iterations" yaml:"iterations" validate:"gte=0"`

	// Publish uploads reports to S3 when a bucket is set.
	Publish PublishConfig `mapstructure:"publish" yaml:"publish"`
}

// PublishConfig contains benchmark report upload configuration.
type PublishConfig struct {
	// Bucket is the S3 bucket. Empty disables publishing.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the bucket region. Required with a bucket.
	Region string `mapstructure:"region" yaml:"region" validate:"required_with=Bucket"`

	// Prefix is prepended to every object key.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,url"`

	// PathStyle forces path-style addressing.
	PathStyle bool `mapstructure:"path_style" yaml:"path_style"`
}

// SetDefaults registers the default value of every key. Environment
// overrides only apply to keys viper knows about, so every field has one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("render.strategy", "quick")
	v.SetDefault("reactive.strict", false)
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.max_message_size", 1<<20)
	v.SetDefault("metrics.namespace", DefaultNamespace)
	v.SetDefault("bench.profile", "standard")
	v.SetDefault("bench.iterations", 0)
	v.SetDefault("bench.publish.bucket", "")
	v.SetDefault("bench.publish.region", "")
	v.SetDefault("bench.publish.prefix", "reactor/bench")
	v.SetDefault("bench.publish.endpoint", "")
	v.SetDefault("bench.publish.path_style", false)
}

// New returns a viper instance with defaults and REACTOR_ environment
// overrides applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the configuration file into v. An explicit path must
// exist; without one, reactor.yaml is looked up in the working directory
// and its absence is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && stderrors.As(err, &notFound) {
			return nil
		}
		return errors.New("F001").WithDetail("%s", describe(path)).Wrap(err)
	}
	return nil
}

func describe(path string) string {
	if path == "" {
		return ConfigName + ".yaml"
	}
	return path
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("F002").Wrap(err)
	}
	cfg.configPath = v.ConfigFileUsed()
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile is New, ReadFile and Load in one call.
func LoadFile(path string) (*Config, error) {
	v := New()
	if err := ReadFile(v, path); err != nil {
		return nil, err
	}
	return Load(v)
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return errors.New("F002").
				WithDetail("%s fails %q (value %v)", first.Namespace(), first.Tag(), first.Value()).
				Wrap(err)
		}
		return errors.New("F002").Wrap(err)
	}
	return nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

// Strategy returns the configured list strategy.
func (c *Config) Strategy() vdom.Strategy {
	s, err := vdom.ParseStrategy(c.Render.Strategy)
	if err != nil {
		return vdom.StrategyQuick
	}
	return s
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns a logger writing to w with the configured handler and
// level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Publishing reports whether benchmark reports are uploaded.
func (c *Config) Publishing() bool {
	return c.Bench.Publish.Bucket != ""
}
