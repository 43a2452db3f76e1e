package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearEnvVars(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvSchemaVersion, "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_OK(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)

	assert.NoError(t, ValidateEnv())
}

func TestValidateDiscordEnv_MissingRequired(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)
	t.Setenv(EnvDiscordToken, "token")

	err := ValidateDiscordEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), EnvDiscordAppID)
	assert.Contains(t, err.Error(), EnvAPIURL)
	assert.NotContains(t, err.Error(), EnvDiscordToken)
}

func TestValidateEnvWithWarnings(t *testing.T) {
	t.Run("no api key", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "API_KEY is not set")
	})

	t.Run("example api key and seed", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)
		t.Setenv(EnvAPIKey, ExampleAPIKey)
		t.Setenv(EnvRandomSeed, "7")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		assert.Len(t, warnings, 2)
	})

	t.Run("secure config", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)
		t.Setenv(EnvAPIKey, "4f1d9c")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})
}
