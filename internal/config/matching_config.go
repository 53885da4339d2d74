package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type MatchingConfig struct {
	Enabled                bool          `mapstructure:"enabled"`
	AIKey                  string        `mapstructure:"ai_key"`
	AiModel                string        `mapstructure:"ai_model"`
	SweepInterval          time.Duration `mapstructure:"sweep_interval"`
	AiMaxRequestsPerMinute float32       `mapstructure:"ai_max_requests_per_minute"`
	AiMaxRequestsPerDay    float32       `mapstructure:"ai_max_requests_per_day"`
}

func (config MatchingConfig) validate() error {

	if !config.Enabled {
		return nil
	}

	var missingFields []string

	if config.AIKey == "" {
		missingFields = append(missingFields, "ai_key")
	}

	if config.AiModel == "" {
		missingFields = append(missingFields, "ai_model")
	}

	if config.SweepInterval <= 0 {
		missingFields = append(missingFields, "sweep_interval")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config MatchingConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("matching.enabled", "MATCHING_ENABLED"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.ai_key", "AI_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.ai_model", "AI_MODEL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.sweep_interval", "MATCHING_SWEEP_INTERVAL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.ai_max_requests_per_minute", "AI_MAX_REQUESTS_PER_MINUTE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.ai_max_requests_per_day", "AI_MAX_REQUESTS_PER_DAY"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to bind environment variables: %v", errs)
	}

	return nil
}
