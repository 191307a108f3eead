package client

import (
	"fmt"
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration read from text such as "1.5s".
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the declarative form of the client and default transport options.
type Config struct {
	Timeout           Duration `envconfig:"TIMEOUT" default:"30s" toml:"timeout" validate:"gte=0"`
	UserAgent         string   `envconfig:"USER_AGENT" toml:"user_agent"`
	ThrottleRPS       int      `envconfig:"THROTTLE_RPS" toml:"throttle_rps" validate:"gte=0"`
	ThrottleBurst     int      `envconfig:"THROTTLE_BURST" toml:"throttle_burst" validate:"required_with=ThrottleRPS,gte=0"`
	RetryMax          int      `envconfig:"RETRY_MAX" toml:"retry_max" validate:"gte=0,lte=10"`
	RetryWaitMin      Duration `envconfig:"RETRY_WAIT_MIN" default:"1s" toml:"retry_wait_min" validate:"gte=0"`
	RetryWaitMax      Duration `envconfig:"RETRY_WAIT_MAX" default:"30s" toml:"retry_wait_max" validate:"gtefield=RetryWaitMin"`
	NoFollowRedirects bool     `envconfig:"NO_FOLLOW_REDIRECTS" toml:"no_follow_redirects"`
	Workers           int      `envconfig:"WORKERS" toml:"workers" validate:"gte=0"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Timeout:      Duration(30 * time.Second),
		RetryWaitMin: Duration(time.Second),
		RetryWaitMax: Duration(30 * time.Second),
	}
}

// LoadConfig reads a Config from environment variables named
// <prefix>_TIMEOUT, <prefix>_USER_AGENT and so on.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DecodeConfig reads a TOML document over DefaultConfig. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cfg against its declared constraints.
func (cfg Config) Validate() error {
	if err := check(cfg); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	return nil
}

// Options converts cfg into options for [Build].
func (cfg Config) Options() []Option {
	opts := []Option{WithTimeout(time.Duration(cfg.Timeout))}

	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}

	if cfg.ThrottleRPS > 0 {
		opts = append(opts, WithThrottle(cfg.ThrottleRPS, cfg.ThrottleBurst))
	}

	if cfg.RetryMax > 0 {
		opts = append(opts, WithRetry(cfg.RetryMax, time.Duration(cfg.RetryWaitMin), time.Duration(cfg.RetryWaitMax)))
	}

	if cfg.NoFollowRedirects {
		opts = append(opts, WithNoFollowRedirects())
	}

	if cfg.Workers > 0 {
		opts = append(opts, WithWorkers(cfg.Workers))
	}

	return opts
}
