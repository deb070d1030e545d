package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	LogLevel        string
	ListenAddr      string
	TargetUrl       string
	CharacterId     string
	TimeoutInMillis int64
}

func (config *Config) applyDefaults() {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":4000"
	}
	if config.TimeoutInMillis == 0 {
		config.TimeoutInMillis = 5000
	}
}

// applyEnvOverrides lets the environment win over config.json. PORT replaces
// the listen address. The API key is deliberately not part of Config: it is
// read straight from the environment so it never lands in a config file.
func (config *Config) applyEnvOverrides() error {
	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("invalid PORT %q: expected an integer between 1 and 65535", port)
		}
		config.ListenAddr = ":" + port
	}
	return nil
}

func (config *Config) validate() error {
	u, err := url.Parse(config.TargetUrl)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid TargetUrl %q", config.TargetUrl)
	}
	if config.CharacterId == "" {
		return fmt.Errorf("CharacterId must not be empty")
	}
	if config.TimeoutInMillis < 0 {
		return fmt.Errorf("TimeoutInMillis must not be negative")
	}
	return nil
}
