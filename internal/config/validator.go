package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the environment variables the server needs
var RequiredEnvVars = []string{
	EnvSchemaVersion,
}

// RequiredDiscordEnvVars lists the extra variables the Discord bot needs
var RequiredDiscordEnvVars = []string{
	EnvDiscordToken,
	EnvDiscordAppID,
	EnvAPIURL,
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	return validateEnv(RequiredEnvVars)
}

// ValidateDiscordEnv is ValidateEnv for the Discord bot
func ValidateDiscordEnv() error {
	return validateEnv(append(append([]string{}, RequiredEnvVars...), RequiredDiscordEnvVars...))
}

func validateEnv(required []string) error {
	schemaVersion := os.Getenv(EnvSchemaVersion)
	if schemaVersion == "" {
		return fmt.Errorf("%s is not set - please update your .env file to include this field (expected: %s)", EnvSchemaVersion, ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("%s mismatch: expected %s, got %s - your .env file may be outdated", EnvSchemaVersion, ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	apiKey := os.Getenv(EnvAPIKey)
	switch apiKey {
	case "":
		warnings = append(warnings, "API_KEY is not set - draw endpoints are open to anyone who can reach the server")
	case ExampleAPIKey:
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if os.Getenv(EnvRandomSeed) != "" {
		warnings = append(warnings, "RANDOM_SEED is set - draws are reproducible and must not be used for a real raffle")
	}

	return warnings, nil
}
