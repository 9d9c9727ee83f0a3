package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity      = 9.81
	DefaultFluidDensity = 1000.0
	DefaultGamma        = 1.4
	DefaultDataDir      = "./data"
	DefaultLogLevel     = "info"
	DefaultAddr         = ":8080"
	DefaultRateLimit    = 10.0
	DefaultBurst        = 20
	DefaultPlotWidth    = 60
	DefaultPlotHeight   = 15
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PHYSKIT_"

var validate = validator.New()

type Config struct {
	Gravity      float64      `yaml:"gravity" validate:"gt=0"`
	FluidDensity float64      `yaml:"fluid_density" validate:"gt=0"`
	Gamma        float64      `yaml:"gamma" validate:"gt=1"`
	DataDir      string       `yaml:"data_dir" validate:"required"`
	LogLevel     string       `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	Server       ServerConfig `yaml:"server"`
	Plot         PlotConfig   `yaml:"plot"`
}

type ServerConfig struct {
	Addr      string  `yaml:"addr" validate:"required"`
	RateLimit float64 `yaml:"rate_limit" validate:"gt=0"`
	Burst     int     `yaml:"burst" validate:"gt=0"`
}

type PlotConfig struct {
	Width  int `yaml:"width" validate:"gte=10,lte=400"`
	Height int `yaml:"height" validate:"gte=3,lte=100"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:      DefaultGravity,
		FluidDensity: DefaultFluidDensity,
		Gamma:        DefaultGamma,
		DataDir:      DefaultDataDir,
		LogLevel:     DefaultLogLevel,
		Server: ServerConfig{
			Addr:      DefaultAddr,
			RateLimit: DefaultRateLimit,
			Burst:     DefaultBurst,
		},
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv loads envFile when it exists and then lets PHYSKIT_* variables
// override c. An empty envFile skips the file.
func ApplyEnv(c *Config, envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	floats := map[string]*float64{
		"GRAVITY":           &c.Gravity,
		"FLUID_DENSITY":     &c.FluidDensity,
		"GAMMA":             &c.Gamma,
		"SERVER_RATE_LIMIT": &c.Server.RateLimit,
	}
	for key, dst := range floats {
		raw, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = v
	}

	ints := map[string]*int{
		"SERVER_BURST": &c.Server.Burst,
		"PLOT_WIDTH":   &c.Plot.Width,
		"PLOT_HEIGHT":  &c.Plot.Height,
	}
	for key, dst := range ints {
		raw, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = v
	}

	strs := map[string]*string{
		"DATA_DIR":    &c.DataDir,
		"LOG_LEVEL":   &c.LogLevel,
		"SERVER_ADDR": &c.Server.Addr,
	}
	for key, dst := range strs {
		if raw, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = raw
		}
	}

	return c.Validate()
}
