package clientcli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/lakepath/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithDefaults(t *testing.T) {
	t.Run("empty endpoint gets default", func(t *testing.T) {
		cfg := &clientcli.Config{Container: "raw"}
		got := cfg.WithDefaults()
		assert.Equal(t, clientcli.DefaultEndpoint, got.Endpoint)
		assert.Equal(t, "raw", got.Container)
		assert.Empty(t, cfg.Endpoint, "original is not mutated")
	})

	t.Run("endpoint kept", func(t *testing.T) {
		cfg := &clientcli.Config{Endpoint: "https://lake.example.com"}
		assert.Equal(t, "https://lake.example.com", cfg.WithDefaults().Endpoint)
	})
}

func TestConfig_ValidateWithAuth(t *testing.T) {
	assert.NoError(t, (&clientcli.Config{APIKey: "key-123"}).ValidateWithAuth())
	assert.ErrorIs(t, (&clientcli.Config{}).ValidateWithAuth(), clientcli.ErrAPIKeyRequired)
}

func TestConfigFile_Profiles(t *testing.T) {
	newFile := func() *clientcli.ConfigFile {
		return &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "dev", Endpoint: "http://localhost:7071", Container: "raw"},
			{Name: "prod", Endpoint: "https://lake.example.com", APIKey: "prod-key", Default: true},
		}}
	}

	t.Run("get by name", func(t *testing.T) {
		p, err := newFile().GetProfile("dev")
		require.NoError(t, err)
		assert.Equal(t, "raw", p.Container)
	})

	t.Run("empty name returns default", func(t *testing.T) {
		p, err := newFile().GetProfile("")
		require.NoError(t, err)
		assert.Equal(t, "prod", p.Name)
	})

	t.Run("first profile when none is default", func(t *testing.T) {
		cfg := &clientcli.ConfigFile{Profiles: []clientcli.Profile{{Name: "a"}, {Name: "b"}}}
		p, err := cfg.GetDefaultProfile()
		require.NoError(t, err)
		assert.Equal(t, "a", p.Name)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := newFile().GetProfile("staging")
		assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
	})

	t.Run("no profiles", func(t *testing.T) {
		_, err := (&clientcli.ConfigFile{}).GetProfile("")
		assert.ErrorIs(t, err, clientcli.ErrNoProfiles)
	})

	t.Run("add duplicate", func(t *testing.T) {
		err := newFile().AddProfile(clientcli.Profile{Name: "dev"})
		assert.ErrorIs(t, err, clientcli.ErrProfileExists)
	})

	t.Run("update", func(t *testing.T) {
		cfg := newFile()
		require.NoError(t, cfg.UpdateProfile(clientcli.Profile{Name: "dev", Endpoint: "http://other:7071"}))
		p, err := cfg.GetProfile("dev")
		require.NoError(t, err)
		assert.Equal(t, "http://other:7071", p.Endpoint)
		assert.ErrorIs(t, cfg.UpdateProfile(clientcli.Profile{Name: "missing"}), clientcli.ErrProfileNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		cfg := newFile()
		require.NoError(t, cfg.RemoveProfile("dev"))
		assert.Equal(t, []string{"prod"}, cfg.ProfileNames())
		assert.ErrorIs(t, cfg.RemoveProfile("dev"), clientcli.ErrProfileNotFound)
	})

	t.Run("set default clears others", func(t *testing.T) {
		cfg := newFile()
		require.NoError(t, cfg.SetDefault("dev"))
		assert.True(t, cfg.Profiles[0].Default)
		assert.False(t, cfg.Profiles[1].Default)
		assert.ErrorIs(t, cfg.SetDefault("missing"), clientcli.ErrProfileNotFound)
	})
}

func TestConfigFile_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
		{Name: "dev", Endpoint: "http://localhost:7071", APIKey: "key-123", Account: "lakeacct", Container: "raw", Default: true},
	}}
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_key: key-123")
	assert.Contains(t, string(data), "container: raw")

	loaded, err := clientcli.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := clientcli.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("profiles: [name: dev"), 0o600))
		_, err := clientcli.LoadConfigFile(path)
		assert.Error(t, err)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/lake")
	assert.Equal(t, filepath.Join("/home/lake", ".lakepath", "config.yaml"), clientcli.DefaultConfigPath())
}

func TestMergeConfig(t *testing.T) {
	tests := []struct {
		name     string
		configs  []*clientcli.Config
		expected *clientcli.Config
	}{
		{
			name:     "empty configs",
			configs:  []*clientcli.Config{},
			expected: &clientcli.Config{},
		},
		{
			name: "later config overrides",
			configs: []*clientcli.Config{
				{Endpoint: "http://a.com", APIKey: "key1", Container: "raw"},
				{Endpoint: "http://b.com", Container: "curated"},
			},
			expected: &clientcli.Config{Endpoint: "http://b.com", APIKey: "key1", Container: "curated"},
		},
		{
			name: "empty strings do not override",
			configs: []*clientcli.Config{
				{Endpoint: "http://a.com", APIKey: "key1", Account: "acct"},
				{},
			},
			expected: &clientcli.Config{Endpoint: "http://a.com", APIKey: "key1", Account: "acct"},
		},
		{
			name: "nil config is skipped",
			configs: []*clientcli.Config{
				{Endpoint: "http://a.com"},
				nil,
				{APIKey: "key2"},
			},
			expected: &clientcli.Config{Endpoint: "http://a.com", APIKey: "key2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clientcli.MergeConfig(tt.configs...))
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LAKEPATH_ENDPOINT", "http://test.example.com")
	t.Setenv("LAKEPATH_API_KEY", "env-key")
	t.Setenv("LAKEPATH_ACCOUNT", "env-account")
	t.Setenv("LAKEPATH_CONTAINER", "env-container")
	t.Setenv("LAKEPATH_PROFILE", "prod")
	t.Setenv("LAKEPATH_CLI_CONFIG", "/tmp/lakepath.yaml")

	cfg := clientcli.ConfigFromEnv()

	assert.Equal(t, &clientcli.Config{
		Endpoint:  "http://test.example.com",
		APIKey:    "env-key",
		Account:   "env-account",
		Container: "env-container",
	}, cfg)
	assert.Equal(t, "prod", clientcli.ProfileFromEnv())
	assert.Equal(t, "/tmp/lakepath.yaml", clientcli.ConfigPathFromEnv())
}

func TestConfigFromProfile(t *testing.T) {
	assert.Equal(t, &clientcli.Config{}, clientcli.ConfigFromProfile(nil))
	assert.Equal(t,
		&clientcli.Config{Endpoint: "http://x", APIKey: "k", Account: "a", Container: "c"},
		clientcli.ConfigFromProfile(&clientcli.Profile{Name: "n", Endpoint: "http://x", APIKey: "k", Account: "a", Container: "c"}),
	)
}
