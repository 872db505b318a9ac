// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr   string
	DBPath       string
	APIBaseURL   string
	SecretKey    []byte // nil when PDPANEL_SECRET_KEY is unset.
	LeaveObjects bool
}

// HasSecretKey reports whether API access keys will be encrypted at rest.
func (c *Config) HasSecretKey() bool {
	return c.SecretKey != nil
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: PDPANEL_LISTEN_ADDR (127.0.0.1:8080),
// PDPANEL_DB_PATH (pdpanel.db), PDPANEL_API_BASE_URL (https://api.pagerduty.com),
// PDPANEL_SECRET_KEY (64 hex characters, enables encryption of the API access key)
// and PDPANEL_LEAVE_OBJECTS (false).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("PDPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "pdpanel.db"
	if v, ok := os.LookupEnv("PDPANEL_DB_PATH"); ok {
		dbPath = v
	}

	apiBaseURL := "https://api.pagerduty.com"
	if v, ok := os.LookupEnv("PDPANEL_API_BASE_URL"); ok && v != "" {
		apiBaseURL = v
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("PDPANEL_SECRET_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("PDPANEL_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("PDPANEL_SECRET_KEY must decode to 32 bytes, got %d", len(key))
		}
		secretKey = key
	}

	var leaveObjects bool
	if v, ok := os.LookupEnv("PDPANEL_LEAVE_OBJECTS"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PDPANEL_LEAVE_OBJECTS has invalid boolean %q: %w", v, err)
		}
		leaveObjects = parsed
	}

	return &Config{
		ListenAddr:   listenAddr,
		DBPath:       dbPath,
		APIBaseURL:   apiBaseURL,
		SecretKey:    secretKey,
		LeaveObjects: leaveObjects,
	}, nil
}
