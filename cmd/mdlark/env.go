package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envConfig   = "MDLARK_CONFIG"
	envPreset   = "MDLARK_PRESET"
	envLogLevel = "MDLARK_LOG_LEVEL"
	envLinkBase = "MDLARK_LINK_BASE"
)

// loadEnvFile loads path into the process environment. Variables that are
// already set win over the file.
func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// firstNonEmpty returns the flag value when set, otherwise the environment value.
func firstNonEmpty(flagValue, envKey string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return strings.TrimSpace(os.Getenv(envKey))
}
