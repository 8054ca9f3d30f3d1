package config

import (
	"fmt"
	"strings"
	"time"
)

// LocalConfig holds per-checkout defaults stored in .solos/config.local.json.
// Its keys match the runtime settings they default.
type LocalConfig struct {
	Network string `json:"network,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork ConfigKey = "network"
	ConfigKeyTimeout ConfigKey = "timeout"
)

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyTimeout,
	}
}

// ParseConfigKey validates a key, case-insensitively. "net" is accepted for
// network.
func ParseConfigKey(key string) (ConfigKey, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "net" {
		return ConfigKeyNetwork, nil
	}
	for _, valid := range ValidConfigKeys() {
		if string(valid) == key {
			return valid, nil
		}
	}

	names := make([]string, 0, len(ValidConfigKeys()))
	for _, k := range ValidConfigKeys() {
		names = append(names, string(k))
	}
	return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", key, strings.Join(names, ", "))
}

// Get returns the value stored for key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyTimeout:
		return c.Timeout
	default:
		return ""
	}
}

// Set validates and stores a value. An empty value clears the key.
func (c *LocalConfig) Set(key ConfigKey, value string) error {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyTimeout:
		if value != "" {
			d, err := time.ParseDuration(value)
			if err != nil || d <= 0 {
				return fmt.Errorf("timeout must be a positive duration such as 10m, got %q", value)
			}
		}
		c.Timeout = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
