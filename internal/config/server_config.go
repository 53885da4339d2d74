package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port        int `mapstructure:"port"`
	MetricsPort int `mapstructure:"metrics_port"`
}

func (config ServerConfig) validate() error {

	if config.Port <= 0 {
		return fmt.Errorf("missing variable: server port")
	}

	if config.MetricsPort <= 0 {
		return fmt.Errorf("missing variable: metrics port")
	}

	if config.Port == config.MetricsPort {
		return fmt.Errorf("server port and metrics port must differ")
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("server.port", "PORT")
	if err != nil {
		return err
	}

	return viper.BindEnv("server.metrics_port", "METRICS_PORT")
}
