package config_test

import (
	"testing"

	"github.com/FoixaSoftware/fooocus/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(".")
		require.NoError(t, err)

		assert.Equal(t, "outputs/files", cfg.Output.Dir)
		assert.Equal(t, "http://127.0.0.1:8888/files/", cfg.Output.ServeBase)
		assert.Equal(t, "generations", cfg.Storage.Bucket)
		assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
		assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "renders")
		t.Setenv("STORAGE_ENDPOINT", "https://s3.example.com")
		t.Setenv("OUTPUT_DIR", "/var/lib/fooocus/files")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := config.LoadConfig(".")
		require.NoError(t, err)

		assert.Equal(t, "renders", cfg.Storage.Bucket)
		assert.Equal(t, "https://s3.example.com", cfg.Storage.Endpoint)
		assert.Equal(t, "/var/lib/fooocus/files", cfg.Output.Dir)
		assert.Equal(t, "debug", cfg.Log.Level)
	})
}
