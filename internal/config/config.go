package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/terraincognita07/cyclecast/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Model   ModelConfig   `mapstructure:"model"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP and session settings
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	SecretKey       string `mapstructure:"secret_key"`
	CookieSecure    bool   `mapstructure:"cookie_secure"`
	Timezone        string `mapstructure:"timezone"`
	DefaultLanguage string `mapstructure:"default_language"`
}

// ModelConfig holds the cycle model constants and the input range policy
type ModelConfig struct {
	EstrogenMin             float64 `mapstructure:"estrogen_min"`
	EstrogenMax             float64 `mapstructure:"estrogen_max"`
	ProgesteroneMin         float64 `mapstructure:"progesterone_min"`
	ProgesteroneMax         float64 `mapstructure:"progesterone_max"`
	MenstrualPhaseEnd       int     `mapstructure:"menstrual_phase_end"`
	OvulationHalfWidth      int     `mapstructure:"ovulation_half_width"`
	MinCycleLength          int     `mapstructure:"min_cycle_length"`
	MaxCycleLength          int     `mapstructure:"max_cycle_length"`
	IrregularMaxCycleLength int     `mapstructure:"irregular_max_cycle_length"`
	ClampOvulationWindow    bool    `mapstructure:"clamp_ovulation_window"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// legacyEnv maps keys to the plain environment variable names used by
// earlier deployments; everything else is read from CYCLECAST_* variables.
var legacyEnv = map[string]string{
	"server.port":             "PORT",
	"server.secret_key":       "SECRET_KEY",
	"server.cookie_secure":    "COOKIE_SECURE",
	"server.timezone":         "TZ",
	"server.default_language": "DEFAULT_LANGUAGE",
	"logging.level":           "LOG_LEVEL",
	"logging.format":          "LOG_FORMAT",
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded first if present; it never overrides variables that are
// already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CYCLECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "CYCLECAST_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := models.DefaultCycleConstants()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.secret_key", "")
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("server.default_language", "en")

	v.SetDefault("model.estrogen_min", defaults.EstrogenMin)
	v.SetDefault("model.estrogen_max", defaults.EstrogenMax)
	v.SetDefault("model.progesterone_min", defaults.ProgesteroneMin)
	v.SetDefault("model.progesterone_max", defaults.ProgesteroneMax)
	v.SetDefault("model.menstrual_phase_end", defaults.MenstrualPhaseEnd)
	v.SetDefault("model.ovulation_half_width", defaults.OvulationHalfWidth)
	v.SetDefault("model.min_cycle_length", defaults.MinCycleLength)
	v.SetDefault("model.max_cycle_length", defaults.MaxCycleLength)
	v.SetDefault("model.irregular_max_cycle_length", defaults.IrregularMaxCycleLength)
	v.SetDefault("model.clamp_ovulation_window", defaults.ClampOvulationWindow)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if _, err := c.Server.PortNumber(); err != nil {
		return err
	}

	model := c.Model
	if model.EstrogenMin < 0 || model.EstrogenMin >= model.EstrogenMax {
		return fmt.Errorf("model.estrogen_min must be non-negative and below model.estrogen_max")
	}
	if model.ProgesteroneMin < 0 || model.ProgesteroneMin >= model.ProgesteroneMax {
		return fmt.Errorf("model.progesterone_min must be non-negative and below model.progesterone_max")
	}
	if model.MenstrualPhaseEnd < 1 {
		return fmt.Errorf("model.menstrual_phase_end must be at least 1")
	}
	if model.OvulationHalfWidth < 0 {
		return fmt.Errorf("model.ovulation_half_width must not be negative")
	}
	if model.MinCycleLength < 1 {
		return fmt.Errorf("model.min_cycle_length must be at least 1")
	}
	if model.MaxCycleLength < model.MinCycleLength {
		return fmt.Errorf("model.max_cycle_length must not be below model.min_cycle_length")
	}
	if model.IrregularMaxCycleLength < model.MaxCycleLength {
		return fmt.Errorf("model.irregular_max_cycle_length must not be below model.max_cycle_length")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// CycleConstants converts the model section into the immutable value the
// cycle model is built from.
func (c *Config) CycleConstants() models.CycleConstants {
	return models.CycleConstants{
		EstrogenMin:             c.Model.EstrogenMin,
		EstrogenMax:             c.Model.EstrogenMax,
		ProgesteroneMin:         c.Model.ProgesteroneMin,
		ProgesteroneMax:         c.Model.ProgesteroneMax,
		MenstrualPhaseEnd:       c.Model.MenstrualPhaseEnd,
		OvulationHalfWidth:      c.Model.OvulationHalfWidth,
		MinCycleLength:          c.Model.MinCycleLength,
		MaxCycleLength:          c.Model.MaxCycleLength,
		IrregularMaxCycleLength: c.Model.IrregularMaxCycleLength,
		ClampOvulationWindow:    c.Model.ClampOvulationWindow,
	}
}

func (s ServerConfig) PortNumber() (int, error) {
	raw := strings.TrimSpace(s.Port)
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("server.port must be numeric: %q", raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("server.port must be between 1 and 65535: %d", port)
	}
	return port, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (s ServerConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(s.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return location, nil
}
