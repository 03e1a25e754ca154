package main

import (
	"path/filepath"
	"testing"

	"github.com/sagarc03/lakepath/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, profile, endpoint, apiKey, account, container = "", "", "", "", "", ""
	})
	for _, key := range []string{"LAKEPATH_ENDPOINT", "LAKEPATH_API_KEY", "LAKEPATH_ACCOUNT", "LAKEPATH_CONTAINER", "LAKEPATH_PROFILE", "LAKEPATH_CLI_CONFIG"} {
		t.Setenv(key, "")
	}
}

func writeProfiles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	file := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
		{Name: "dev", Endpoint: "http://localhost:7071", Container: "raw", Default: true},
		{Name: "prod", Endpoint: "https://lake.example.com", APIKey: "prod-key", Container: "curated"},
	}}
	require.NoError(t, file.Save(path))
	return path
}

func TestBuildConfig(t *testing.T) {
	t.Run("default profile", func(t *testing.T) {
		resetFlags(t)
		cfgFile = writeProfiles(t)

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, &clientcli.Config{Endpoint: "http://localhost:7071", Container: "raw"}, cfg)
	})

	t.Run("profile from env and flag override", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("LAKEPATH_CLI_CONFIG", writeProfiles(t))
		t.Setenv("LAKEPATH_PROFILE", "prod")
		t.Setenv("LAKEPATH_ACCOUNT", "env-account")
		container = "landing"

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, &clientcli.Config{
			Endpoint:  "https://lake.example.com",
			APIKey:    "prod-key",
			Account:   "env-account",
			Container: "landing",
		}, cfg)
	})

	t.Run("unknown profile", func(t *testing.T) {
		resetFlags(t)
		cfgFile = writeProfiles(t)
		profile = "staging"

		_, err := buildConfig()
		assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
	})

	t.Run("missing default file is ignored", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("HOME", t.TempDir())
		endpoint = "http://flag:7071"

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, &clientcli.Config{Endpoint: "http://flag:7071"}, cfg)
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		resetFlags(t)
		cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

		_, err := buildConfig()
		assert.Error(t, err)
	})
}
