package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPolicyID  = 1
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config is loaded once at startup and passed by value afterwards.
type Config struct {
	FGTHost    string
	APIToken   string
	PolicyID   int
	WebhookURL string
	VerifySSL  bool

	LogLevel  string
	LogFormat string

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string
}

// Load reads .env, the optional YAML config file and the environment.
// Environment variables take precedence over the file.
func Load(cfgFile string) (Config, error) {
	godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".fgtusage")
	}

	v.SetDefault("policy_id", strconv.Itoa(DefaultPolicyID))
	v.SetDefault("verify_ssl", "false")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	v.BindEnv("fgt_host", "FGT_HOST")
	v.BindEnv("api_token", "API_TOKEN")
	v.BindEnv("policy_id", "POLICY_ID")
	v.BindEnv("discord_webhook", "DISCORD_WEBHOOK")
	v.BindEnv("verify_ssl", "VERIFY_SSL")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_format", "LOG_FORMAT")

	cfg := Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		cfg.ConfigFile = filepath.Clean(v.ConfigFileUsed())
	}

	policyID, err := strconv.Atoi(strings.TrimSpace(v.GetString("policy_id")))
	if err != nil {
		return cfg, fmt.Errorf("invalid POLICY_ID %q: %w", v.GetString("policy_id"), err)
	}

	cfg.FGTHost = strings.TrimSpace(v.GetString("fgt_host"))
	cfg.APIToken = strings.TrimSpace(v.GetString("api_token"))
	cfg.PolicyID = policyID
	cfg.WebhookURL = strings.TrimSpace(v.GetString("discord_webhook"))
	cfg.VerifySSL = strings.EqualFold(strings.TrimSpace(v.GetString("verify_ssl")), "true")
	cfg.LogLevel = strings.ToLower(v.GetString("log_level"))
	cfg.LogFormat = strings.ToLower(v.GetString("log_format"))

	return cfg, nil
}

// ValidateFetch checks the settings needed to query the firewall.
func (c Config) ValidateFetch() error {
	if c.FGTHost == "" {
		return fmt.Errorf("FGT_HOST not set")
	}
	if c.APIToken == "" {
		return fmt.Errorf("API_TOKEN not set")
	}
	if c.PolicyID < 0 {
		return fmt.Errorf("POLICY_ID must be non-negative, got %d", c.PolicyID)
	}
	return nil
}

// Validate checks everything a full report run needs.
func (c Config) Validate() error {
	if err := c.ValidateFetch(); err != nil {
		return err
	}
	if c.WebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK not set")
	}
	return nil
}
