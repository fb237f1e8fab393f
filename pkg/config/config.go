// Package config loads the censorship service configuration from a TOML
// file, a .env file and CENSOR_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"wordfilter/pkg/censor"
)

const envPrefix = "CENSOR_"

type Config struct {
	ServiceName      string `toml:"serviceName"`
	PatternsPath     string `toml:"patternsPath"`
	ReplacementsPath string `toml:"replacementsPath"`

	Placeholder string   `toml:"placeholder"`
	Languages   []string `toml:"languages"`
	Debug       bool     `toml:"debug"`

	HTTPAddr   string `toml:"httpAddr"`
	LogLevel   string `toml:"logLevel"`
	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`
}

func defaults() Config {
	return Config{
		ServiceName: "censorship",
		HTTPAddr:    ":8055",
		LogLevel:    "info",
		Placeholder: censor.DefaultPlaceholder,
		Languages:   []string{"ru", "en"},
	}
}

// Load reads path (skipped when empty) over the defaults, then applies the
// environment. A .env file in the working directory is loaded if present.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"SERVICE_NAME": &c.ServiceName,
		"PATTERNS":     &c.PatternsPath,
		"REPLACEMENTS": &c.ReplacementsPath,
		"PLACEHOLDER":  &c.Placeholder,
		"HTTP_ADDR":    &c.HTTPAddr,
		"LOG_LEVEL":    &c.LogLevel,
		"KAFKA_ADDR":   &c.KafkaAddr,
		"KAFKA_TOPIC":  &c.KafkaTopic,
	}
	for key, dst := range strs {
		if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "LANGUAGES"); ok {
		c.Languages = SplitList(v)
	}

	if v := strings.TrimSpace(os.Getenv(envPrefix + "DEBUG")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sDEBUG %q: %w", envPrefix, v, err)
		}
		c.Debug = b
	}

	if v := strings.TrimSpace(os.Getenv(envPrefix + "KAFKA_BATCH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sKAFKA_BATCH %q: %w", envPrefix, v, err)
		}
		c.KafkaBatch = n
	}

	return nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FilterOptions turns the filter section into censor options.
func (c *Config) FilterOptions() []censor.Option {
	return []censor.Option{
		censor.WithPlaceholder(c.Placeholder),
		censor.WithLanguages(c.Languages...),
		censor.WithDebug(c.Debug),
	}
}
