// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Configuration defaults
const (
	DefaultEndpoint = "https://api.lora.telenor.io"
	DefaultToken    = ""

	// ConfigFileName is the file looked up in the user's home directory
	ConfigFileName = "lassie.cfg"

	// EnvPrefix prefixes the environment variables LASSIE_ENDPOINT and LASSIE_TOKEN
	EnvPrefix = "LASSIE"
)

// Config holds the endpoint and API token used to reach Congress
type Config struct {
	// Endpoint is the base URL of the REST API
	Endpoint string `mapstructure:"endpoint"`

	// Token is sent in the X-API-Token header
	Token string `mapstructure:"token"`
}

// LoadConfig reads the client configuration.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (LASSIE_ENDPOINT, LASSIE_TOKEN)
//  2. Configuration file (key=value lines, keys are case-insensitive)
//  3. Default values
//
// If file is empty, $HOME/lassie.cfg is used and a missing file is not an
// error. An explicitly named file must exist.
//
// Example:
//
//	cfg, err := lassie.LoadConfig("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := lassie.NewClient(lassie.WithConfig(cfg))
func LoadConfig(file string) (Config, error) {
	v := viper.New()

	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("token", DefaultToken)

	explicit := file != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			file = filepath.Join(home, ConfigFileName)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			if explicit || !isFileNotFoundError(err) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.Token = strings.TrimSpace(cfg.Token)

	return cfg, nil
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
