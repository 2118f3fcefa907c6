// Package config loads and validates configuration for the arith command.
//
// Configuration comes from an optional config file (YAML, TOML, or JSON),
// overridden by ARITH_* environment variables, over built-in defaults. A
// missing config file is not an error unless a path was given explicitly.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultPrompt is the interactive prompt. Every %s is replaced by the
// invoking user's name.
const DefaultPrompt = "%s@arith> "

// Config is the runtime configuration for the arith command.
type Config struct {
	// Prompt is the interactive prompt template.
	Prompt string `mapstructure:"prompt"`
	Logger Logger `mapstructure:"logger"`
	Cache  Cache  `mapstructure:"cache"`
}

// Logger configures the logger. Level follows logrus: 0 is panic, 4 is
// info, 6 is trace.
type Logger struct {
	Level      int    `mapstructure:"level" validate:"gte=0,lte=6"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	Output     string `mapstructure:"output" validate:"oneof=stderr stdout file"`
	OutputFile string `mapstructure:"output_file" validate:"required_if=Output file"`
}

// Cache configures the interactive mode's parse cache.
type Cache struct {
	Enabled    bool          `mapstructure:"enabled"`
	MaxEntries int           `mapstructure:"max_entries" validate:"gte=0"`
	TTL        time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

var validate = validator.New()

func init() {
	// Report validation errors under the keys users actually write.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Load reads the configuration. With an empty path it searches for an
// "arith" config file in ., $HOME/.config/arith, and /etc/arith, and
// falls back to defaults when none exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("prompt", DefaultPrompt)
	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.output_file", "")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_entries", 128)
	v.SetDefault("cache.ttl", time.Duration(0))

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("arith")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/arith")
		v.AddConfigPath("/etc/arith")
	}
	v.SetEnvPrefix("ARITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		key := strings.TrimPrefix(e.Namespace(), "Config.")
		return fmt.Errorf("config: %s %s", key, constraint(e))
	}
	return err
}

// constraint renders a friendly message for a failed validation tag.
func constraint(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "required_if":
		return "is required"
	default:
		return fmt.Sprintf("fails constraint %q", e.Tag())
	}
}

// PromptFor renders the prompt template for a user name.
func (c *Config) PromptFor(user string) string {
	return strings.ReplaceAll(c.Prompt, "%s", user)
}
