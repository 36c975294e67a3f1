package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Competition document sources
const (
	SourcePostgres = "postgres"
	SourceWCA      = "wca"
)

const (
	configFileBase = "natshelper_config"
	defaultWCAURL  = "https://www.worldcubeassociation.org"
)

// DatabaseConfig configures the PostgreSQL document store
type DatabaseConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
}

// WCAConfig configures access to the WCA competition API
type WCAConfig struct {
	BaseURL      string   `yaml:"baseURL,omitempty" validate:"omitempty,url"`
	ClientID     string   `yaml:"clientID,omitempty"`
	ClientSecret string   `yaml:"clientSecret,omitempty"`
	Scopes       []string `yaml:"scopes,omitempty"`
}

// SheetsConfig configures where schedules are published
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty"`
}

// WeightConfig enables a scorer that only takes a weight
type WeightConfig struct {
	Weight float64 `yaml:"weight"`
}

// PreferenceConfig configures the preference scorer
type PreferenceConfig struct {
	Weight  float64  `yaml:"weight"`
	Prefix  string   `yaml:"prefix" validate:"required"`
	Prior   int      `yaml:"prior" validate:"min=1"`
	AllJobs []string `yaml:"allJobs,omitempty"`
}

// ScrambleSpeedConfig configures a scramble speed scorer for one event
type ScrambleSpeedConfig struct {
	Event   string  `yaml:"event" validate:"required"`
	MaxTime int     `yaml:"maxTime" validate:"min=1"` // centiseconds
	Weight  float64 `yaml:"weight"`
}

// GroupRuleConfig configures a group scorer. Empty filters match every group.
type GroupRuleConfig struct {
	Name   string   `yaml:"name" validate:"required"`
	RRule  string   `yaml:"rrule,omitempty"`
	Rooms  []string `yaml:"rooms,omitempty"`
	Events []string `yaml:"events,omitempty"`
	Weight float64  `yaml:"weight"`
}

// ScoringConfig lists the scorers used when rating staff assignments.
// Scorers left out are not used.
type ScoringConfig struct {
	JobCount       *WeightConfig         `yaml:"jobCount,omitempty"`
	Preference     *PreferenceConfig     `yaml:"preference,omitempty"`
	AdjacentGroup  *WeightConfig         `yaml:"adjacentGroup,omitempty"`
	FollowingGroup *WeightConfig         `yaml:"followingGroup,omitempty"`
	ScrambleSpeed  []ScrambleSpeedConfig `yaml:"scrambleSpeed,omitempty" validate:"dive"`
	GroupRules     []GroupRuleConfig     `yaml:"groupRules,omitempty" validate:"dive"`
}

// Config represents the application configuration
type Config struct {
	CompetitionID      string         `yaml:"competitionID" validate:"required"`
	Source             string         `yaml:"source" validate:"required,oneof=postgres wca"`
	ExtensionNamespace string         `yaml:"extensionNamespace,omitempty"`
	Database           DatabaseConfig `yaml:"database"`
	WCA                WCAConfig      `yaml:"wca"`
	Sheets             SheetsConfig   `yaml:"sheets"`
	Scoring            ScoringConfig  `yaml:"scoring"`
}

// envOverrides are environment variables that replace values from the config file
type envOverrides struct {
	CompetitionID   string `env:"NATSHELPER_COMPETITION_ID"`
	DatabaseURL     string `env:"NATSHELPER_DATABASE_URL"`
	WCAClientID     string `env:"NATSHELPER_WCA_CLIENT_ID"`
	WCAClientSecret string `env:"NATSHELPER_WCA_CLIENT_SECRET"`
	SpreadsheetID   string `env:"NATSHELPER_SPREADSHEET_ID"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from natshelper_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" will look for "natshelper_config.test.yaml"
func LoadWithEnv(environment string) (*Config, error) {
	configPath, err := findConfigFile(configFileName(environment))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads the configuration from a specific path, applies
// environment overrides and validates the result
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the settings each source
// needs and the rrule syntax of group rules
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Source {
	case SourcePostgres:
		if cfg.Database.URL == "" {
			return fmt.Errorf("config validation failed: database.url is required for source %q", cfg.Source)
		}
	case SourceWCA:
		if cfg.WCA.ClientID == "" || cfg.WCA.ClientSecret == "" {
			return fmt.Errorf("config validation failed: wca.clientID and wca.clientSecret are required for source %q", cfg.Source)
		}
	}

	for i, rule := range cfg.Scoring.GroupRules {
		if rule.RRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in scoring.groupRules[%d]: %w", i, err)
		}
	}

	return nil
}

func applyEnv(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if overrides.CompetitionID != "" {
		cfg.CompetitionID = overrides.CompetitionID
	}
	if overrides.DatabaseURL != "" {
		cfg.Database.URL = overrides.DatabaseURL
	}
	if overrides.WCAClientID != "" {
		cfg.WCA.ClientID = overrides.WCAClientID
	}
	if overrides.WCAClientSecret != "" {
		cfg.WCA.ClientSecret = overrides.WCAClientSecret
	}
	if overrides.SpreadsheetID != "" {
		cfg.Sheets.SpreadsheetID = overrides.SpreadsheetID
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.WCA.BaseURL == "" {
		cfg.WCA.BaseURL = defaultWCAURL
	}
	if len(cfg.WCA.Scopes) == 0 {
		cfg.WCA.Scopes = []string{"public", "manage_competitions"}
	}
}

func configFileName(environment string) string {
	if environment == "" {
		return configFileBase + ".yaml"
	}
	return configFileBase + "." + environment + ".yaml"
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
